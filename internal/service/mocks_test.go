package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"bjustcoin/internal/model"
	"bjustcoin/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindBySessionToken(ctx context.Context, token string) (*model.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSessionToken(ctx context.Context, id uint, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockUserRepository) SuperuserExists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListByRoles(ctx context.Context, roles []model.Role, limit, offset int) ([]model.User, error) {
	args := m.Called(ctx, roles, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByRolesAtOffset(ctx context.Context, roles []model.Role, offset int) (bool, error) {
	args := m.Called(ctx, roles, offset)
	return args.Bool(0), args.Error(1)
}

// WithTransaction runs fn against the mock itself so transactional flows can
// be exercised end to end in tests.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx, m)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, wallet *model.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWalletRepository) ListWalletsByUser(ctx context.Context, userID uint) ([]model.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreateWhitelistEntry(ctx context.Context, userID uint, tokenType int16) error {
	args := m.Called(ctx, userID, tokenType)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWhitelistEntry(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWhitelistEntriesForUser(ctx context.Context, userID uint, tokenType *int16) error {
	args := m.Called(ctx, userID, tokenType)
	return args.Error(0)
}

func (m *MockWalletRepository) ListWhitelistByUser(ctx context.Context, userID uint) ([]model.WhitelistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WhitelistEntry), args.Error(1)
}

// MockApplicationRepository is a mock implementation of repository.ApplicationRepository.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, app *model.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uint) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationRepository) UpdateStatusIfPending(ctx context.Context, id uint, status model.ApplicationStatus, tokens decimal.Decimal, tokenType int16) (bool, error) {
	args := m.Called(ctx, id, status, tokens, tokenType)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicationRepository) ListByStatus(ctx context.Context, status model.ApplicationStatus, limit, offset int) ([]model.Application, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationRepository) ExistsByStatusAtOffset(ctx context.Context, status model.ApplicationStatus, offset int) (bool, error) {
	args := m.Called(ctx, status, offset)
	return args.Bool(0), args.Error(1)
}

// MockHolderRepository is a mock implementation of repository.HolderRepository.
type MockHolderRepository struct {
	mock.Mock
}

func (m *MockHolderRepository) UpsertByAddress(ctx context.Context, holders []model.Holder) error {
	args := m.Called(ctx, holders)
	return args.Error(0)
}

func (m *MockHolderRepository) Update(ctx context.Context, id uint, tokens, stage string) error {
	args := m.Called(ctx, id, tokens, stage)
	return args.Error(0)
}

func (m *MockHolderRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHolderRepository) List(ctx context.Context, limit, offset int) ([]model.Holder, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Holder), args.Error(1)
}

func (m *MockHolderRepository) ExistsAtOffset(ctx context.Context, offset int) (bool, error) {
	args := m.Called(ctx, offset)
	return args.Bool(0), args.Error(1)
}

// MockLogRepository is a mock implementation of repository.LogRepository.
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Append(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogRepository) List(ctx context.Context, limit, offset int) ([]model.LogEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLogRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]model.LogEntry, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LogEntry), args.Error(1)
}

func (m *MockLogRepository) ExistsAtOffset(ctx context.Context, userID *uint, offset int) (bool, error) {
	args := m.Called(ctx, userID, offset)
	return args.Bool(0), args.Error(1)
}

func (m *MockLogRepository) FindSmallUsers(ctx context.Context, ids []uint) (map[uint]model.SmallUser, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]model.SmallUser), args.Error(1)
}

// MockAuthRequestRepository is a mock implementation of repository.AuthRequestRepository.
type MockAuthRequestRepository struct {
	mock.Mock
}

func (m *MockAuthRequestRepository) GetOrCreate(ctx context.Context, email string) (*model.AuthRequest, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthRequest), args.Error(1)
}

func (m *MockAuthRequestRepository) Increment(ctx context.Context, email string) (int16, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int16), args.Error(1)
}

func (m *MockAuthRequestRepository) Reset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockVerificationTokenRepository is a mock implementation of repository.VerificationTokenRepository.
type MockVerificationTokenRepository struct {
	mock.Mock
}

func (m *MockVerificationTokenRepository) Create(ctx context.Context, token *model.VerificationToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockVerificationTokenRepository) FindByToken(ctx context.Context, value string) (*model.VerificationToken, error) {
	args := m.Called(ctx, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VerificationToken), args.Error(1)
}

func (m *MockVerificationTokenRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockSessionStore is a mock implementation of auth.SessionStoreInterface.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Put(ctx context.Context, token string, userID uint) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

func (m *MockSessionStore) Lookup(ctx context.Context, token string) (uint, bool) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint), args.Bool(1)
}

func (m *MockSessionStore) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
