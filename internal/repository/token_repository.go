package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"bjustcoin/internal/model"
)

// VerificationTokenRepository defines email verification token persistence.
type VerificationTokenRepository interface {
	Create(ctx context.Context, token *model.VerificationToken) error
	FindByToken(ctx context.Context, value string) (*model.VerificationToken, error)
	// Consume claims a token in a single conditional update. It reports
	// false when the token was already consumed, which makes replay within
	// the expiry window impossible.
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

// NewVerificationTokenRepository creates a new verification token repository.
func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(ctx context.Context, token *model.VerificationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *verificationTokenRepository) FindByToken(ctx context.Context, value string) (*model.VerificationToken, error) {
	var token model.VerificationToken
	if err := r.db.WithContext(ctx).Where("token = ?", value).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *verificationTokenRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.VerificationToken{}).
		Where("id = ? AND consumed_at IS NULL", id).
		Update("consumed_at", gorm.Expr("NOW()"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
