package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bjustcoin/internal/model"
)

// WalletRepository defines wallet and whitelist persistence operations.
type WalletRepository interface {
	CreateWallet(ctx context.Context, wallet *model.Wallet) error
	DeleteWallet(ctx context.Context, id uint) error
	ListWalletsByUser(ctx context.Context, userID uint) ([]model.Wallet, error)
	// CreateWhitelistEntry is idempotent: inserting an existing
	// (user, token_type) pair is a no-op, not an error.
	CreateWhitelistEntry(ctx context.Context, userID uint, tokenType int16) error
	DeleteWhitelistEntry(ctx context.Context, id uint) error
	// DeleteWhitelistEntriesForUser revokes all grants for a user, or only
	// one token type when tokenType is non-nil.
	DeleteWhitelistEntriesForUser(ctx context.Context, userID uint, tokenType *int16) error
	ListWhitelistByUser(ctx context.Context, userID uint) ([]model.WhitelistEntry, error)
}

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) CreateWallet(ctx context.Context, wallet *model.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *walletRepository) DeleteWallet(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Wallet{}, id).Error
}

func (r *walletRepository) ListWalletsByUser(ctx context.Context, userID uint) ([]model.Wallet, error) {
	var wallets []model.Wallet
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

func (r *walletRepository) CreateWhitelistEntry(ctx context.Context, userID uint, tokenType int16) error {
	entry := model.WhitelistEntry{UserID: userID, TokenType: tokenType}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

func (r *walletRepository) DeleteWhitelistEntry(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.WhitelistEntry{}, id).Error
}

func (r *walletRepository) DeleteWhitelistEntriesForUser(ctx context.Context, userID uint, tokenType *int16) error {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if tokenType != nil {
		q = q.Where("token_type = ?", *tokenType)
	}
	return q.Delete(&model.WhitelistEntry{}).Error
}

func (r *walletRepository) ListWhitelistByUser(ctx context.Context, userID uint) ([]model.WhitelistEntry, error) {
	var entries []model.WhitelistEntry
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
