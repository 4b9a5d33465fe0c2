package service

import (
	"context"
	"fmt"

	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/pagination"
	"bjustcoin/internal/repository"
)

// UserPage is one page of users with their wallets and whitelist grants.
type UserPage struct {
	Data []model.AuthUser `json:"data"`
	Next int              `json:"next"`
}

// UserService exposes the role-filtered user listings, profile reads and
// wallet/whitelist administration.
type UserService interface {
	ListUsers(ctx context.Context, page int, limit *int) (*UserPage, error)
	ListAdmins(ctx context.Context, page int, limit *int) (*UserPage, error)
	ListBlockedUsers(ctx context.Context, page int, limit *int) (*UserPage, error)
	ListBlockedAdmins(ctx context.Context, page int, limit *int) (*UserPage, error)
	Profile(ctx context.Context, user *model.User) (*model.AuthUser, error)

	CreateWallet(ctx context.Context, actor *model.User, userID uint, link string) (*model.Wallet, error)
	DeleteWallet(ctx context.Context, actor *model.User, id uint) error
	GrantWhitelist(ctx context.Context, actor *model.User, userID uint, tokenType int16) error
	RevokeWhitelist(ctx context.Context, actor *model.User, id uint) error
}

type userService struct {
	userRepo   repository.UserRepository
	walletRepo repository.WalletRepository
	audit      AuditService
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, walletRepo repository.WalletRepository, audit AuditService) UserService {
	return &userService{
		userRepo:   userRepo,
		walletRepo: walletRepo,
		audit:      audit,
	}
}

func (s *userService) listByRoles(ctx context.Context, roles []model.Role, page int, limit *int) (*UserPage, error) {
	lim := pagination.Limit(limit)
	users, err := s.userRepo.ListByRoles(ctx, roles, lim, pagination.Offset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", apperrors.ErrInternal, err)
	}
	hasMore, err := s.userRepo.ExistsByRolesAtOffset(ctx, roles, pagination.ProbeOffset(page, lim))
	if err != nil {
		return nil, fmt.Errorf("%w: probe users: %v", apperrors.ErrInternal, err)
	}

	data := make([]model.AuthUser, 0, len(users))
	for i := range users {
		au, err := s.attach(ctx, &users[i])
		if err != nil {
			return nil, err
		}
		data = append(data, *au)
	}
	return &UserPage{Data: data, Next: pagination.Next(page, hasMore)}, nil
}

// attach loads the wallets and whitelist grants onto the API shape.
func (s *userService) attach(ctx context.Context, user *model.User) (*model.AuthUser, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list wallets: %v", apperrors.ErrInternal, err)
	}
	whitelist, err := s.walletRepo.ListWhitelistByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: list whitelist: %v", apperrors.ErrInternal, err)
	}
	return &model.AuthUser{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Image:     user.Image,
		Phone:     user.Phone,
		Wallets:   wallets,
		Whitelist: whitelist,
	}, nil
}

func (s *userService) ListUsers(ctx context.Context, page int, limit *int) (*UserPage, error) {
	return s.listByRoles(ctx, []model.Role{model.RoleUser, model.RoleUserCanBuy}, page, limit)
}

func (s *userService) ListAdmins(ctx context.Context, page int, limit *int) (*UserPage, error) {
	return s.listByRoles(ctx, []model.Role{model.RoleAdmin}, page, limit)
}

func (s *userService) ListBlockedUsers(ctx context.Context, page int, limit *int) (*UserPage, error) {
	return s.listByRoles(ctx, []model.Role{model.RoleUserBlocked}, page, limit)
}

func (s *userService) ListBlockedAdmins(ctx context.Context, page int, limit *int) (*UserPage, error) {
	return s.listByRoles(ctx, []model.Role{model.RoleAdminBlocked}, page, limit)
}

func (s *userService) Profile(ctx context.Context, user *model.User) (*model.AuthUser, error) {
	return s.attach(ctx, user)
}

func (s *userService) CreateWallet(ctx context.Context, actor *model.User, userID uint, link string) (*model.Wallet, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	wallet := &model.Wallet{UserID: userID, Link: link}
	if err := s.walletRepo.CreateWallet(ctx, wallet); err != nil {
		return nil, fmt.Errorf("%w: create wallet: %v", apperrors.ErrInternal, err)
	}
	if err := s.audit.Append(ctx, actor.ID, "attached a wallet", &userID); err != nil {
		return nil, err
	}
	return wallet, nil
}

func (s *userService) DeleteWallet(ctx context.Context, actor *model.User, id uint) error {
	if !actor.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.walletRepo.DeleteWallet(ctx, id); err != nil {
		return fmt.Errorf("%w: delete wallet: %v", apperrors.ErrInternal, err)
	}
	return nil
}

func (s *userService) GrantWhitelist(ctx context.Context, actor *model.User, userID uint, tokenType int16) error {
	if !actor.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.walletRepo.CreateWhitelistEntry(ctx, userID, tokenType); err != nil {
		return fmt.Errorf("%w: create whitelist entry: %v", apperrors.ErrInternal, err)
	}
	return s.audit.Append(ctx, actor.ID, "whitelisted a user for a token stage", &userID)
}

func (s *userService) RevokeWhitelist(ctx context.Context, actor *model.User, id uint) error {
	if !actor.Role.IsAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.walletRepo.DeleteWhitelistEntry(ctx, id); err != nil {
		return fmt.Errorf("%w: delete whitelist entry: %v", apperrors.ErrInternal, err)
	}
	return nil
}
