package model

// Holder is one row of the token-holder registry, reconciled from an
// external snapshot keyed by address.
type Holder struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Address string `json:"address" gorm:"uniqueIndex;size:255;not null"`
	Count   int16  `json:"count" gorm:"not null;default:0"`
	Stage   string `json:"stage" gorm:"size:64;not null"`
	Tokens  string `json:"tokens" gorm:"size:64;not null"`
}
