package model

import "time"

// LogEntry is one append-only audit record. Entries are never updated or
// deleted.
type LogEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"size:512;not null"`
	TargetID  *uint     `json:"target_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"created"`
}

// LogData is the read shape of an audit entry with actor and target
// resolved to SmallUser projections at read time.
type LogData struct {
	User    SmallUser  `json:"user"`
	Text    string     `json:"text"`
	Target  *SmallUser `json:"target,omitempty"`
	Created time.Time  `json:"created"`
}
