package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/notifier"
)

func newApplicationServiceForTest(appRepo *MockApplicationRepository, userRepo *MockUserRepository, walletRepo *MockWalletRepository, holderRepo *MockHolderRepository, logRepo *MockLogRepository) ApplicationService {
	return NewApplicationService(appRepo, userRepo, walletRepo, holderRepo, NewAuditService(logRepo), notifier.Noop{}, "ops@example.com", "https://example.com")
}

func TestApplicationService_Submit(t *testing.T) {
	mockAppRepo := new(MockApplicationRepository)
	mockUserRepo := new(MockUserRepository)
	mockWalletRepo := new(MockWalletRepository)
	mockHolderRepo := new(MockHolderRepository)
	mockLogRepo := new(MockLogRepository)

	applicant := &model.User{ID: 8, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: model.RoleUserCanBuy}

	mockAppRepo.On("Create", mock.Anything, mock.MatchedBy(func(app *model.Application) bool {
		return app.Status == model.ApplicationStatusPending &&
			app.Email == "ada@example.com" &&
			app.FirstName == "Ada"
	})).Return(nil)
	expectAudit(mockLogRepo, 8, "submitted an application for the purchase of tokens")

	service := newApplicationServiceForTest(mockAppRepo, mockUserRepo, mockWalletRepo, mockHolderRepo, mockLogRepo)
	app, err := service.Submit(context.Background(), applicant, SubmitApplicationInput{
		Phone:   "+100000000",
		IsAgree: true,
		Address: "0xabc",
		Tokens:  decimal.RequireFromString("1500"),
	})

	assert.NoError(t, err)
	assert.NotNil(t, app)
	assert.Equal(t, model.ApplicationStatusPending, app.Status)
	mockAppRepo.AssertExpectations(t)
	mockLogRepo.AssertExpectations(t)
}

func TestApplicationService_Approve(t *testing.T) {
	superuser := &model.User{ID: 2, Role: model.RoleSuperuser}
	grant := decimal.RequireFromString("1000")

	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockApplicationRepository, *MockUserRepository, *MockWalletRepository, *MockLogRepository)
		expectedError error
	}{
		{
			name:  "successful approval provisions whitelist",
			actor: superuser,
			setupMock: func(mApp *MockApplicationRepository, mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mApp.On("FindByID", mock.Anything, uint(30)).Return(&model.Application{
					ID: 30, Email: "ada@example.com", Status: model.ApplicationStatusPending,
				}, nil)
				mApp.On("UpdateStatusIfPending", mock.Anything, uint(30), model.ApplicationStatusApproved, grant, int16(model.TokenTypeSeed)).
					Return(true, nil)
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").
					Return(&model.User{ID: 8, Email: "ada@example.com"}, nil)
				mWallet.On("CreateWhitelistEntry", mock.Anything, uint(8), int16(model.TokenTypeSeed)).Return(nil)
				expectAudit(mLog, 2, "approved a token purchase application")
			},
		},
		{
			name:  "applicant without account still approves",
			actor: superuser,
			setupMock: func(mApp *MockApplicationRepository, mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mApp.On("FindByID", mock.Anything, uint(30)).Return(&model.Application{
					ID: 30, Email: "ghost@example.com", Status: model.ApplicationStatusPending,
				}, nil)
				mApp.On("UpdateStatusIfPending", mock.Anything, uint(30), model.ApplicationStatusApproved, grant, int16(model.TokenTypeSeed)).
					Return(true, nil)
				mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
				expectAudit(mLog, 2, "approved a token purchase application")
			},
		},
		{
			name:          "non-superuser is refused",
			actor:         &model.User{ID: 1, Role: model.RoleAdmin},
			setupMock:     func(*MockApplicationRepository, *MockUserRepository, *MockWalletRepository, *MockLogRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:  "missing application",
			actor: superuser,
			setupMock: func(mApp *MockApplicationRepository, mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mApp.On("FindByID", mock.Anything, uint(30)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:  "already approved",
			actor: superuser,
			setupMock: func(mApp *MockApplicationRepository, mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mApp.On("FindByID", mock.Anything, uint(30)).Return(&model.Application{
					ID: 30, Status: model.ApplicationStatusApproved,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidState,
		},
		{
			name:  "lost race against concurrent reviewer",
			actor: superuser,
			setupMock: func(mApp *MockApplicationRepository, mUser *MockUserRepository, mWallet *MockWalletRepository, mLog *MockLogRepository) {
				mApp.On("FindByID", mock.Anything, uint(30)).Return(&model.Application{
					ID: 30, Email: "ada@example.com", Status: model.ApplicationStatusPending,
				}, nil)
				mApp.On("UpdateStatusIfPending", mock.Anything, uint(30), model.ApplicationStatusApproved, grant, int16(model.TokenTypeSeed)).
					Return(false, nil)
			},
			expectedError: apperrors.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAppRepo := new(MockApplicationRepository)
			mockUserRepo := new(MockUserRepository)
			mockWalletRepo := new(MockWalletRepository)
			mockHolderRepo := new(MockHolderRepository)
			mockLogRepo := new(MockLogRepository)
			tt.setupMock(mockAppRepo, mockUserRepo, mockWalletRepo, mockLogRepo)

			service := newApplicationServiceForTest(mockAppRepo, mockUserRepo, mockWalletRepo, mockHolderRepo, mockLogRepo)
			err := service.Approve(context.Background(), tt.actor, 30, grant, int16(model.TokenTypeSeed))

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockAppRepo.AssertExpectations(t)
			mockWalletRepo.AssertExpectations(t)
			mockLogRepo.AssertExpectations(t)
		})
	}
}

func TestApplicationService_Reject(t *testing.T) {
	mockAppRepo := new(MockApplicationRepository)
	mockUserRepo := new(MockUserRepository)
	mockWalletRepo := new(MockWalletRepository)
	mockHolderRepo := new(MockHolderRepository)
	mockLogRepo := new(MockLogRepository)

	app := &model.Application{ID: 31, Email: "ada@example.com", Status: model.ApplicationStatusPending}
	mockAppRepo.On("FindByID", mock.Anything, uint(31)).Return(app, nil)
	mockAppRepo.On("UpdateStatusIfPending", mock.Anything, uint(31), model.ApplicationStatusRejected, app.Tokens, app.TokenType).
		Return(true, nil)
	expectAudit(mockLogRepo, 2, "rejected a token purchase application")

	service := newApplicationServiceForTest(mockAppRepo, mockUserRepo, mockWalletRepo, mockHolderRepo, mockLogRepo)
	err := service.Reject(context.Background(), &model.User{ID: 2, Role: model.RoleSuperuser}, 31)

	assert.NoError(t, err)
	mockAppRepo.AssertExpectations(t)
	mockLogRepo.AssertExpectations(t)
}

func TestApplicationService_ListPending(t *testing.T) {
	t.Run("default limit and next page probe", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepository)
		mockLogRepo := new(MockLogRepository)

		apps := []model.Application{{ID: 1}, {ID: 2}}
		mockAppRepo.On("ListByStatus", mock.Anything, model.ApplicationStatusPending, 20, 0).Return(apps, nil)
		mockAppRepo.On("ExistsByStatusAtOffset", mock.Anything, model.ApplicationStatusPending, 20).Return(true, nil)

		service := newApplicationServiceForTest(mockAppRepo, new(MockUserRepository), new(MockWalletRepository), new(MockHolderRepository), mockLogRepo)
		page, err := service.ListPending(context.Background(), 1, nil)

		assert.NoError(t, err)
		assert.Len(t, page.Data, 2)
		assert.Equal(t, 2, page.Next)
		mockAppRepo.AssertExpectations(t)
	})

	t.Run("oversized limit falls back to default", func(t *testing.T) {
		mockAppRepo := new(MockApplicationRepository)
		mockLogRepo := new(MockLogRepository)

		mockAppRepo.On("ListByStatus", mock.Anything, model.ApplicationStatusPending, 20, 20).Return([]model.Application{}, nil)
		mockAppRepo.On("ExistsByStatusAtOffset", mock.Anything, model.ApplicationStatusPending, 40).Return(false, nil)

		limit := 500
		service := newApplicationServiceForTest(mockAppRepo, new(MockUserRepository), new(MockWalletRepository), new(MockHolderRepository), mockLogRepo)
		page, err := service.ListPending(context.Background(), 2, &limit)

		assert.NoError(t, err)
		assert.Equal(t, 0, page.Next)
		mockAppRepo.AssertExpectations(t)
	})
}

func TestApplicationService_Holders(t *testing.T) {
	superuser := &model.User{ID: 2, Role: model.RoleSuperuser}

	t.Run("sync requires superuser", func(t *testing.T) {
		service := newApplicationServiceForTest(new(MockApplicationRepository), new(MockUserRepository), new(MockWalletRepository), new(MockHolderRepository), new(MockLogRepository))
		err := service.SyncHolders(context.Background(), &model.User{ID: 1, Role: model.RoleAdmin}, nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("sync upserts and audits", func(t *testing.T) {
		mockHolderRepo := new(MockHolderRepository)
		mockLogRepo := new(MockLogRepository)

		holders := []model.Holder{{Address: "0xabc", Stage: "Seed", Tokens: "100"}}
		mockHolderRepo.On("UpsertByAddress", mock.Anything, holders).Return(nil)
		expectAudit(mockLogRepo, 2, "synchronized the holder registry")

		service := newApplicationServiceForTest(new(MockApplicationRepository), new(MockUserRepository), new(MockWalletRepository), mockHolderRepo, mockLogRepo)
		err := service.SyncHolders(context.Background(), superuser, holders)

		assert.NoError(t, err)
		mockHolderRepo.AssertExpectations(t)
		mockLogRepo.AssertExpectations(t)
	})

	t.Run("edit and delete are superuser gated", func(t *testing.T) {
		service := newApplicationServiceForTest(new(MockApplicationRepository), new(MockUserRepository), new(MockWalletRepository), new(MockHolderRepository), new(MockLogRepository))
		admin := &model.User{ID: 1, Role: model.RoleAdmin}

		assert.ErrorIs(t, service.EditHolder(context.Background(), admin, 1, "10", "Seed"), apperrors.ErrForbidden)
		assert.ErrorIs(t, service.DeleteHolder(context.Background(), admin, 1), apperrors.ErrForbidden)
	})
}
