package repository

import (
	"context"

	"gorm.io/gorm"

	"bjustcoin/internal/model"
)

// LogRepository defines audit-log persistence. Entries are append-only:
// there are no update or delete operations by design.
type LogRepository interface {
	Append(ctx context.Context, entry *model.LogEntry) error
	List(ctx context.Context, limit, offset int) ([]model.LogEntry, error)
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]model.LogEntry, error)
	ExistsAtOffset(ctx context.Context, userID *uint, offset int) (bool, error)
	// FindSmallUsers batch-loads the denormalized projections joined into
	// log entries at read time.
	FindSmallUsers(ctx context.Context, ids []uint) (map[uint]model.SmallUser, error)
}

type logRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new log repository.
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{db: db}
}

func (r *logRepository) Append(ctx context.Context, entry *model.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *logRepository) List(ctx context.Context, limit, offset int) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *logRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]model.LogEntry, error) {
	var entries []model.LogEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *logRepository) ExistsAtOffset(ctx context.Context, userID *uint, offset int) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.LogEntry{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}
	var ids []uint
	if err := q.Order("created_at DESC").
		Limit(1).
		Offset(offset).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *logRepository) FindSmallUsers(ctx context.Context, ids []uint) (map[uint]model.SmallUser, error) {
	if len(ids) == 0 {
		return map[uint]model.SmallUser{}, nil
	}
	var users []model.SmallUser
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("id", "first_name", "last_name", "email").
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]model.SmallUser, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}
