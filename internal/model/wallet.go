package model

// Wallet links a user to a blockchain address.
type Wallet struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"user_id" gorm:"not null;index"`
	Link   string `json:"link" gorm:"size:255;not null"`
}

// Token sale stages used as whitelist token types.
const (
	TokenTypeStrategic   int16 = 1
	TokenTypeSeed        int16 = 2
	TokenTypePrivateSale int16 = 3
	TokenTypeIDO         int16 = 4
	TokenTypePublicSale  int16 = 5
	TokenTypeAdvisors    int16 = 6
	TokenTypeTeam        int16 = 7
	TokenTypeFutureTeam  int16 = 8
	TokenTypeIncentives  int16 = 9
	TokenTypeLiquidity   int16 = 10
	TokenTypeEcosystem   int16 = 11
	TokenTypeLoyalty     int16 = 12
)

// WhitelistEntry permits a user to receive one token category. The
// (user_id, token_type) pair is unique; creating a duplicate is a no-op.
type WhitelistEntry struct {
	ID        uint  `json:"id" gorm:"primaryKey"`
	UserID    uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_whitelist_user_token"`
	TokenType int16 `json:"token_type" gorm:"not null;uniqueIndex:idx_whitelist_user_token"`
}
