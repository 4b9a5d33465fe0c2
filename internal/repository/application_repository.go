package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bjustcoin/internal/model"
)

// ApplicationRepository defines purchase-application persistence operations.
type ApplicationRepository interface {
	Create(ctx context.Context, app *model.Application) error
	FindByID(ctx context.Context, id uint) (*model.Application, error)
	// UpdateStatusIfPending transitions a pending application to a terminal
	// status and stores the grant. It reports whether a row was updated, so
	// a lost race against a concurrent reviewer is visible to the caller.
	UpdateStatusIfPending(ctx context.Context, id uint, status model.ApplicationStatus, tokens decimal.Decimal, tokenType int16) (bool, error)
	ListByStatus(ctx context.Context, status model.ApplicationStatus, limit, offset int) ([]model.Application, error)
	ExistsByStatusAtOffset(ctx context.Context, status model.ApplicationStatus, offset int) (bool, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	var app model.Application
	if err := r.db.WithContext(ctx).First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) UpdateStatusIfPending(ctx context.Context, id uint, status model.ApplicationStatus, tokens decimal.Decimal, tokenType int16) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ? AND status = ?", id, model.ApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"tokens":     tokens,
			"token_type": tokenType,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status model.ApplicationStatus, limit, offset int) ([]model.Application, error) {
	var apps []model.Application
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ExistsByStatusAtOffset(ctx context.Context, status model.ApplicationStatus, offset int) (bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(1).
		Offset(offset).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
