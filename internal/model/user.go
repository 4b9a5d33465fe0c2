package model

import "time"

// User represents an account on the platform. Privilege lives entirely in
// Role; users are never hard-deleted, blocking is a role state.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"size:255;not null"`
	LastName     string    `json:"last_name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        *string   `json:"phone,omitempty" gorm:"size:32"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"perm" gorm:"type:smallint;not null;default:1;index"`
	Image        *string   `json:"image,omitempty" gorm:"size:512"`
	SessionToken string    `json:"-" gorm:"uniqueIndex;size:64;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SmallUser is the denormalized projection joined into audit log entries.
type SmallUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Small returns the audit-log projection of u.
func (u *User) Small() SmallUser {
	return SmallUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// AuthUser is the API shape for user listings and profile responses,
// carrying the user's wallets and whitelist grants.
type AuthUser struct {
	ID        uint             `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Email     string           `json:"email"`
	Role      Role             `json:"perm"`
	Image     *string          `json:"image,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Wallets   []Wallet         `json:"wallets"`
	Whitelist []WhitelistEntry `json:"white_list"`
}
