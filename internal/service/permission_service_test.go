package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
)

func expectAudit(m *MockLogRepository, actorID uint, text string) {
	m.On("Append", mock.Anything, mock.MatchedBy(func(e *model.LogEntry) bool {
		return e.UserID == actorID && e.Text == text
	})).Return(nil)
}

func TestPermissionService_Transitions(t *testing.T) {
	admin := &model.User{ID: 1, Role: model.RoleAdmin}
	superuser := &model.User{ID: 2, Role: model.RoleSuperuser}
	regular := &model.User{ID: 3, Role: model.RoleUser}

	tests := []struct {
		name          string
		actor         *model.User
		call          func(s PermissionService, actor *model.User) error
		setupMock     func(*MockUserRepository, *MockWalletRepository, *MockLogRepository)
		expectedError error
	}{
		{
			name:  "admin blocks a user and whitelist is revoked",
			actor: admin,
			call: func(s PermissionService, actor *model.User) error {
				return s.BlockUser(context.Background(), actor, 10)
			},
			setupMock: func(mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mUser.On("UpdateRole", mock.Anything, uint(10), model.RoleUserBlocked).Return(nil)
				expectAudit(mLog, 1, "blocked a user")
				mWallet.On("DeleteWhitelistEntriesForUser", mock.Anything, uint(10), (*int16)(nil)).Return(nil)
			},
		},
		{
			name:  "regular user cannot block",
			actor: regular,
			call: func(s PermissionService, actor *model.User) error {
				return s.BlockUser(context.Background(), actor, 10)
			},
			setupMock:     func(*MockUserRepository, *MockWalletRepository, *MockLogRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "unblock restores plain user role",
			actor: admin,
			call: func(s PermissionService, actor *model.User) error {
				return s.UnblockUser(context.Background(), actor, 10)
			},
			setupMock: func(mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mUser.On("UpdateRole", mock.Anything, uint(10), model.RoleUser).Return(nil)
				expectAudit(mLog, 1, "unblocked a user")
			},
		},
		{
			name:  "admin cannot block an admin",
			actor: admin,
			call: func(s PermissionService, actor *model.User) error {
				return s.BlockAdmin(context.Background(), actor, 11)
			},
			setupMock:     func(*MockUserRepository, *MockWalletRepository, *MockLogRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "superuser blocks an admin",
			actor: superuser,
			call: func(s PermissionService, actor *model.User) error {
				return s.BlockAdmin(context.Background(), actor, 11)
			},
			setupMock: func(mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mUser.On("UpdateRole", mock.Anything, uint(11), model.RoleAdminBlocked).Return(nil)
				expectAudit(mLog, 2, "blocked an admin")
			},
		},
		{
			name:  "superuser grants admin rights",
			actor: superuser,
			call: func(s PermissionService, actor *model.User) error {
				return s.PromoteAdmin(context.Background(), actor, 12)
			},
			setupMock: func(mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mUser.On("UpdateRole", mock.Anything, uint(12), model.RoleAdmin).Return(nil)
				expectAudit(mLog, 2, "granted admin rights")
			},
		},
		{
			name:  "admin cannot grant admin rights",
			actor: admin,
			call: func(s PermissionService, actor *model.User) error {
				return s.PromoteAdmin(context.Background(), actor, 12)
			},
			setupMock:     func(*MockUserRepository, *MockWalletRepository, *MockLogRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "superuser grants can-buy",
			actor: superuser,
			call: func(s PermissionService, actor *model.User) error {
				return s.GrantCanBuy(context.Background(), actor, 13)
			},
			setupMock: func(mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mUser.On("UpdateRole", mock.Anything, uint(13), model.RoleUserCanBuy).Return(nil)
				expectAudit(mLog, 2, "granted token purchase rights")
			},
		},
		{
			name:  "superuser revokes can-buy",
			actor: superuser,
			call: func(s PermissionService, actor *model.User) error {
				return s.RevokeCanBuy(context.Background(), actor, 13)
			},
			setupMock: func(mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mUser.On("UpdateRole", mock.Anything, uint(13), model.RoleUser).Return(nil)
				expectAudit(mLog, 2, "revoked token purchase rights")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockWalletRepo := new(MockWalletRepository)
			mockLogRepo := new(MockLogRepository)
			tt.setupMock(mockUserRepo, mockWalletRepo, mockLogRepo)

			service := NewPermissionService(mockUserRepo, mockWalletRepo, NewAuditService(mockLogRepo))
			err := tt.call(service, tt.actor)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockUserRepo.AssertExpectations(t)
			mockWalletRepo.AssertExpectations(t)
			mockLogRepo.AssertExpectations(t)
		})
	}
}

func TestPermissionService_PromoteSuperuser(t *testing.T) {
	t.Run("superuser promotes directly", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockWalletRepo := new(MockWalletRepository)
		mockLogRepo := new(MockLogRepository)

		mockUserRepo.On("UpdateRole", mock.Anything, uint(20), model.RoleSuperuser).Return(nil)
		expectAudit(mockLogRepo, 2, "granted superuser rights")

		service := NewPermissionService(mockUserRepo, mockWalletRepo, NewAuditService(mockLogRepo))
		err := service.PromoteSuperuser(context.Background(), &model.User{ID: 2, Role: model.RoleSuperuser}, 20)

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("bootstrap succeeds when no superuser exists", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockWalletRepo := new(MockWalletRepository)
		mockLogRepo := new(MockLogRepository)

		mockUserRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockUserRepo.On("SuperuserExists", mock.Anything).Return(false, nil)
		mockUserRepo.On("UpdateRole", mock.Anything, uint(20), model.RoleSuperuser).Return(nil)
		expectAudit(mockLogRepo, 3, "granted superuser rights")

		service := NewPermissionService(mockUserRepo, mockWalletRepo, NewAuditService(mockLogRepo))
		err := service.PromoteSuperuser(context.Background(), &model.User{ID: 3, Role: model.RoleAdmin}, 20)

		assert.NoError(t, err)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("bootstrap refused once a superuser exists", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockWalletRepo := new(MockWalletRepository)
		mockLogRepo := new(MockLogRepository)

		mockUserRepo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		mockUserRepo.On("SuperuserExists", mock.Anything).Return(true, nil)

		service := NewPermissionService(mockUserRepo, mockWalletRepo, NewAuditService(mockLogRepo))
		err := service.PromoteSuperuser(context.Background(), &model.User{ID: 3, Role: model.RoleAdmin}, 20)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockUserRepo.AssertExpectations(t)
		mockLogRepo.AssertExpectations(t)
	})
}
