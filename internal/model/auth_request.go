package model

import "time"

// AuthRequest is the per-email login attempt counter behind the login
// guard. Count only ever grows; it is not reset on successful login.
type AuthRequest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Count     int16     `json:"count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created"`
}
