package service

import (
	"context"
	"fmt"

	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/repository"
)

// PermissionService is the sole writer of User.Role. Every transition is a
// single role update keyed by primary key, followed by an audit entry on
// success. Transitions are idempotent at the data level but not
// commutative: unblocking a user restores exactly RoleUser, discarding any
// prior can-buy grant.
type PermissionService interface {
	BlockUser(ctx context.Context, actor *model.User, targetID uint) error
	UnblockUser(ctx context.Context, actor *model.User, targetID uint) error
	BlockAdmin(ctx context.Context, actor *model.User, targetID uint) error
	UnblockAdmin(ctx context.Context, actor *model.User, targetID uint) error
	PromoteAdmin(ctx context.Context, actor *model.User, targetID uint) error
	DemoteAdmin(ctx context.Context, actor *model.User, targetID uint) error
	GrantCanBuy(ctx context.Context, actor *model.User, targetID uint) error
	RevokeCanBuy(ctx context.Context, actor *model.User, targetID uint) error
	PromoteSuperuser(ctx context.Context, actor *model.User, targetID uint) error
}

type permissionService struct {
	userRepo   repository.UserRepository
	walletRepo repository.WalletRepository
	audit      AuditService
}

// NewPermissionService creates a new permission service.
func NewPermissionService(userRepo repository.UserRepository, walletRepo repository.WalletRepository, audit AuditService) PermissionService {
	return &permissionService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		audit:      audit,
	}
}

// setRole applies the transition and appends the audit entry. The audit
// write happens only after the role update committed.
func (s *permissionService) setRole(ctx context.Context, actor *model.User, targetID uint, role model.Role, action string) error {
	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	return s.audit.Append(ctx, actor.ID, action, &targetID)
}

// BlockUser sets the target to RoleUserBlocked and revokes every whitelist
// grant the target holds.
func (s *permissionService) BlockUser(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.setRole(ctx, actor, targetID, model.RoleUserBlocked, "blocked a user"); err != nil {
		return err
	}
	if err := s.walletRepo.DeleteWhitelistEntriesForUser(ctx, targetID, nil); err != nil {
		return fmt.Errorf("revoke whitelist: %w", err)
	}
	return nil
}

// UnblockUser restores the target to RoleUser. A can-buy grant held before
// blocking is not restored.
func (s *permissionService) UnblockUser(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleUser, "unblocked a user")
}

func (s *permissionService) BlockAdmin(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleAdminBlocked, "blocked an admin")
}

func (s *permissionService) UnblockAdmin(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleAdmin, "unblocked an admin")
}

func (s *permissionService) PromoteAdmin(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleAdmin, "granted admin rights")
}

func (s *permissionService) DemoteAdmin(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleUser, "revoked admin rights")
}

func (s *permissionService) GrantCanBuy(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleUserCanBuy, "granted token purchase rights")
}

func (s *permissionService) RevokeCanBuy(ctx context.Context, actor *model.User, targetID uint) error {
	if !actor.Role.IsSuperuser() {
		return apperrors.ErrForbidden
	}
	return s.setRole(ctx, actor, targetID, model.RoleUser, "revoked token purchase rights")
}

// PromoteSuperuser requires a superuser actor, except as a bootstrap when
// no superuser exists yet. The existence check and the promotion run in
// one transaction so two concurrent bootstraps cannot both succeed.
func (s *permissionService) PromoteSuperuser(ctx context.Context, actor *model.User, targetID uint) error {
	if actor.Role.IsSuperuser() {
		return s.setRole(ctx, actor, targetID, model.RoleSuperuser, "granted superuser rights")
	}

	err := s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		exists, err := repo.SuperuserExists(ctx)
		if err != nil {
			return fmt.Errorf("check superuser: %w", err)
		}
		if exists {
			return apperrors.ErrForbidden
		}
		return repo.UpdateRole(ctx, targetID, model.RoleSuperuser)
	})
	if err != nil {
		return err
	}
	return s.audit.Append(ctx, actor.ID, "granted superuser rights", &targetID)
}
