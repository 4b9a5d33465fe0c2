package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"bjustcoin/internal/errors"
	"bjustcoin/internal/middleware"
	"bjustcoin/internal/model"
	"bjustcoin/internal/service"
)

// AdminHandler handles role administration and the user listings.
type AdminHandler struct {
	permissionService service.PermissionService
	userService       service.UserService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(permissionService service.PermissionService, userService service.UserService) *AdminHandler {
	return &AdminHandler{permissionService: permissionService, userService: userService}
}

// roleAction runs one role transition against the :id target.
func roleAction(c echo.Context, fn func(ctx context.Context, actor *model.User, targetID uint) error) error {
	targetID, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := fn(c.Request().Context(), middleware.CurrentUser(c), targetID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "ok",
	})
}

// BlockUser godoc
// @Summary Block a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/users/{id}/block [post]
func (h *AdminHandler) BlockUser(c echo.Context) error {
	return roleAction(c, h.permissionService.BlockUser)
}

// UnblockUser godoc
// @Summary Unblock a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/unblock [post]
func (h *AdminHandler) UnblockUser(c echo.Context) error {
	return roleAction(c, h.permissionService.UnblockUser)
}

// BlockAdmin godoc
// @Summary Block an admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/admins/{id}/block [post]
func (h *AdminHandler) BlockAdmin(c echo.Context) error {
	return roleAction(c, h.permissionService.BlockAdmin)
}

// UnblockAdmin godoc
// @Summary Unblock an admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/admins/{id}/unblock [post]
func (h *AdminHandler) UnblockAdmin(c echo.Context) error {
	return roleAction(c, h.permissionService.UnblockAdmin)
}

// PromoteAdmin godoc
// @Summary Grant admin rights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/promote [post]
func (h *AdminHandler) PromoteAdmin(c echo.Context) error {
	return roleAction(c, h.permissionService.PromoteAdmin)
}

// DemoteAdmin godoc
// @Summary Revoke admin rights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/admins/{id}/demote [post]
func (h *AdminHandler) DemoteAdmin(c echo.Context) error {
	return roleAction(c, h.permissionService.DemoteAdmin)
}

// GrantCanBuy godoc
// @Summary Grant token purchase rights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/can-buy [post]
func (h *AdminHandler) GrantCanBuy(c echo.Context) error {
	return roleAction(c, h.permissionService.GrantCanBuy)
}

// RevokeCanBuy godoc
// @Summary Revoke token purchase rights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/can-buy [delete]
func (h *AdminHandler) RevokeCanBuy(c echo.Context) error {
	return roleAction(c, h.permissionService.RevokeCanBuy)
}

// PromoteSuperuser godoc
// @Summary Grant superuser rights
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/{id}/superuser [post]
func (h *AdminHandler) PromoteSuperuser(c echo.Context) error {
	return roleAction(c, h.permissionService.PromoteSuperuser)
}

func (h *AdminHandler) listUsers(c echo.Context, fn func(ctx context.Context, page int, limit *int) (*service.UserPage, error)) error {
	page, err := fn(c.Request().Context(), pageParam(c), limitParam(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// ListUsers godoc
// @Summary List regular users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	return h.listUsers(c, h.userService.ListUsers)
}

// ListAdmins godoc
// @Summary List admins
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/admins [get]
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	return h.listUsers(c, h.userService.ListAdmins)
}

// ListBlockedUsers godoc
// @Summary List blocked users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users/blocked [get]
func (h *AdminHandler) ListBlockedUsers(c echo.Context) error {
	return h.listUsers(c, h.userService.ListBlockedUsers)
}

// ListBlockedAdmins godoc
// @Summary List blocked admins
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.UserPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/admins/blocked [get]
func (h *AdminHandler) ListBlockedAdmins(c echo.Context) error {
	return h.listUsers(c, h.userService.ListBlockedAdmins)
}
