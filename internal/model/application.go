package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplicationStatus represents the lifecycle state of a purchase application.
type ApplicationStatus int16

const (
	ApplicationStatusPending  ApplicationStatus = 0
	ApplicationStatusApproved ApplicationStatus = 1
	ApplicationStatusRejected ApplicationStatus = 2
)

// Terminal reports whether the status admits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// Application is a token-purchase request. The applicant's identity fields
// are snapshotted at submission time and are not kept in sync with later
// profile edits.
type Application struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	FirstName  string            `json:"first_name" gorm:"size:255;not null"`
	MiddleName string            `json:"middle_name" gorm:"size:255;not null;default:''"`
	LastName   string            `json:"last_name" gorm:"size:255;not null"`
	Email      string            `json:"email" gorm:"size:255;not null;index"`
	Phone      string            `json:"phone" gorm:"size:32;not null"`
	Mobile     string            `json:"mobile" gorm:"size:32;not null"`
	IsAgree    bool              `json:"is_agree" gorm:"not null;default:false"`
	Address    string            `json:"address" gorm:"size:255;not null"`
	Tokens     decimal.Decimal   `json:"tokens" gorm:"type:decimal(30,8);not null;default:0"`
	TokenType  int16             `json:"token_type" gorm:"not null;default:0"`
	Status     ApplicationStatus `json:"status" gorm:"type:smallint;not null;default:0;index"`
	CreatedAt  time.Time         `json:"created"`
}
