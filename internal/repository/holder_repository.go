package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bjustcoin/internal/model"
)

// HolderRepository defines holder-registry persistence operations.
type HolderRepository interface {
	// UpsertByAddress reconciles incoming rows into the registry inside one
	// transaction. Each row is a single atomic upsert keyed on address, so
	// concurrent readers never observe an address as absent mid-sync.
	UpsertByAddress(ctx context.Context, holders []model.Holder) error
	Update(ctx context.Context, id uint, tokens, stage string) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]model.Holder, error)
	ExistsAtOffset(ctx context.Context, offset int) (bool, error)
}

type holderRepository struct {
	db *gorm.DB
}

// NewHolderRepository creates a new holder repository.
func NewHolderRepository(db *gorm.DB) HolderRepository {
	return &holderRepository{db: db}
}

func (r *holderRepository) UpsertByAddress(ctx context.Context, holders []model.Holder) error {
	if len(holders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range holders {
			h := model.Holder{
				Address: holders[i].Address,
				Count:   holders[i].Count,
				Stage:   holders[i].Stage,
				Tokens:  holders[i].Tokens,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "address"}},
				DoUpdates: clause.AssignmentColumns([]string{"count", "stage", "tokens"}),
			}).Create(&h).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *holderRepository) Update(ctx context.Context, id uint, tokens, stage string) error {
	return r.db.WithContext(ctx).Model(&model.Holder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"tokens": tokens, "stage": stage}).Error
}

func (r *holderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Holder{}, id).Error
}

func (r *holderRepository) List(ctx context.Context, limit, offset int) ([]model.Holder, error) {
	var holders []model.Holder
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&holders).Error; err != nil {
		return nil, err
	}
	return holders, nil
}

func (r *holderRepository) ExistsAtOffset(ctx context.Context, offset int) (bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Holder{}).
		Order("id ASC").
		Limit(1).
		Offset(offset).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}
