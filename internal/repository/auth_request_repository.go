package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"bjustcoin/internal/model"
)

// AuthRequestRepository defines the login-guard counter persistence.
type AuthRequestRepository interface {
	// GetOrCreate lazily creates the counter row for an email.
	GetOrCreate(ctx context.Context, email string) (*model.AuthRequest, error)
	// Increment bumps the counter by one and returns the new value.
	Increment(ctx context.Context, email string) (int16, error)
	// Reset zeroes the counter. Nothing in the login flow calls it; the
	// counter persists across successful logins.
	Reset(ctx context.Context, email string) error
}

type authRequestRepository struct {
	db *gorm.DB
}

// NewAuthRequestRepository creates a new auth request repository.
func NewAuthRequestRepository(db *gorm.DB) AuthRequestRepository {
	return &authRequestRepository{db: db}
}

func (r *authRequestRepository) GetOrCreate(ctx context.Context, email string) (*model.AuthRequest, error) {
	var req model.AuthRequest
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&req).Error
	if err == nil {
		return &req, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	req = model.AuthRequest{Email: email, Count: 0}
	if err := r.db.WithContext(ctx).Create(&req).Error; err != nil {
		// lost a create race, read the winner
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := r.db.WithContext(ctx).Where("email = ?", email).First(&req).Error; err != nil {
				return nil, err
			}
			return &req, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *authRequestRepository) Increment(ctx context.Context, email string) (int16, error) {
	if err := r.db.WithContext(ctx).Model(&model.AuthRequest{}).
		Where("email = ?", email).
		Update("count", gorm.Expr("count + 1")).Error; err != nil {
		return 0, err
	}
	var req model.AuthRequest
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&req).Error; err != nil {
		return 0, err
	}
	return req.Count, nil
}

func (r *authRequestRepository) Reset(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&model.AuthRequest{}).
		Where("email = ?", email).
		Update("count", 0).Error
}
