package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VerificationToken is an emailed single-use code authorizing signup or
// password reset for one address within its expiry window.
type VerificationToken struct {
	ID         uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email      string     `json:"email" gorm:"size:255;not null;index"`
	Token      string     `json:"-" gorm:"uniqueIndex;size:64;not null"`
	ExpiresAt  time.Time  `json:"expires_at"`
	ConsumedAt *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *VerificationToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Usable reports whether the token can still authorize an action at now.
func (t *VerificationToken) Usable(now time.Time) bool {
	return t.ConsumedAt == nil && now.Before(t.ExpiresAt)
}
