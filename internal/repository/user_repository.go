package repository

import (
	"context"

	"gorm.io/gorm"

	"bjustcoin/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindBySessionToken(ctx context.Context, token string) (*model.User, error)
	UpdateRole(ctx context.Context, id uint, role model.Role) error
	UpdateSessionToken(ctx context.Context, id uint, token string) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	SuperuserExists(ctx context.Context) (bool, error)
	ListByRoles(ctx context.Context, roles []model.Role, limit, offset int) ([]model.User, error)
	ExistsByRolesAtOffset(ctx context.Context, roles []model.Role, offset int) (bool, error)
	// WithTransaction runs fn against a transaction-scoped repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindBySessionToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("session_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRole sets the role in a single statement keyed by primary key.
// Concurrent transitions on one user are last-writer-wins at the store.
func (r *userRepository) UpdateRole(ctx context.Context, id uint, role model.Role) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (r *userRepository) UpdateSessionToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("session_token", token).Error
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *userRepository) SuperuserExists(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role = ?", model.RoleSuperuser).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByRoles lists users in any of the given roles, newest first.
func (r *userRepository) ListByRoles(ctx context.Context, roles []model.Role, limit, offset int) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsByRolesAtOffset is the next-page existence probe: LIMIT 1 at the
// given offset, no counting.
func (r *userRepository) ExistsByRolesAtOffset(ctx context.Context, roles []model.Role, offset int) (bool, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("role IN ?", roles).
		Order("created_at DESC").
		Limit(1).
		Offset(offset).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// WithTransaction executes fn within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &userRepository{db: tx})
	})
}
