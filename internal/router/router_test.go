package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"bjustcoin/internal/config"
	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/handler"
	"bjustcoin/internal/model"
	"bjustcoin/internal/service"
)

// The stubs embed the service interfaces so only the methods a routed
// request actually reaches need an implementation.

type stubAuthService struct {
	service.AuthService
	users map[string]*model.User
}

func (s *stubAuthService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if user, ok := s.users[token]; ok {
		return user, nil
	}
	return nil, apperrors.ErrUnauthorized
}

type stubUserService struct {
	service.UserService
}

func (stubUserService) ListUsers(ctx context.Context, page int, limit *int) (*service.UserPage, error) {
	return &service.UserPage{Data: []model.AuthUser{}}, nil
}

type stubApplicationService struct {
	service.ApplicationService
}

func (stubApplicationService) ListPending(ctx context.Context, page int, limit *int) (*service.ApplicationPage, error) {
	return &service.ApplicationPage{Data: []model.Application{}}, nil
}

func (stubApplicationService) ListApproved(ctx context.Context, page int, limit *int) (*service.ApplicationPage, error) {
	return &service.ApplicationPage{Data: []model.Application{}}, nil
}

func (stubApplicationService) ListRejected(ctx context.Context, page int, limit *int) (*service.ApplicationPage, error) {
	return &service.ApplicationPage{Data: []model.Application{}}, nil
}

type stubAuditService struct {
	service.AuditService
}

func (stubAuditService) List(ctx context.Context, page int, limit *int) (*service.LogPage, error) {
	return &service.LogPage{Data: []model.LogData{}}, nil
}

func (stubAuditService) ListForUser(ctx context.Context, userID uint, page int, limit *int) (*service.LogPage, error) {
	return &service.LogPage{Data: []model.LogData{}}, nil
}

type stubPermissionService struct {
	service.PermissionService
}

func newTestServer() *echo.Echo {
	e := echo.New()
	authSvc := &stubAuthService{users: map[string]*model.User{
		"user-token":    {ID: 8, Role: model.RoleUser, SessionToken: "user-token"},
		"admin-token":   {ID: 1, Role: model.RoleAdmin, SessionToken: "admin-token"},
		"blocked-token": {ID: 9, Role: model.RoleUserBlocked, SessionToken: "blocked-token"},
	}}

	Register(
		e,
		&config.Config{},
		authSvc,
		handler.NewAuthHandler(authSvc, stubUserService{}),
		handler.NewAdminHandler(stubPermissionService{}, stubUserService{}),
		handler.NewApplicationHandler(stubApplicationService{}),
		handler.NewHolderHandler(stubApplicationService{}),
		handler.NewAuditHandler(stubAuditService{}),
		handler.NewWalletHandler(stubUserService{}),
	)
	return e
}

func TestRegister_RouteAccess(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		expected int
	}{
		{"pending applications readable by any signed-in user", http.MethodGet, "/api/applications/pending", "user-token", http.StatusOK},
		{"approved applications readable by any signed-in user", http.MethodGet, "/api/applications/approved", "user-token", http.StatusOK},
		{"rejected applications readable by any signed-in user", http.MethodGet, "/api/applications/rejected", "user-token", http.StatusOK},
		{"audit log readable by any signed-in user", http.MethodGet, "/api/logs", "user-token", http.StatusOK},
		{"per-user audit log readable by any signed-in user", http.MethodGet, "/api/logs/users/8", "user-token", http.StatusOK},
		{"user listing refused for regular users", http.MethodGet, "/api/admin/users", "user-token", http.StatusForbidden},
		{"user listing allowed for admins", http.MethodGet, "/api/admin/users", "admin-token", http.StatusOK},
		{"holder registry refused below superuser", http.MethodGet, "/api/holders", "admin-token", http.StatusForbidden},
		{"missing token is unauthorized", http.MethodGet, "/api/applications/pending", "", http.StatusUnauthorized},
		{"blocked account is rejected", http.MethodGet, "/api/logs", "blocked-token", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(echo.HeaderAuthorization, "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}
