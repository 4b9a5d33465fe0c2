package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bjustcoin/internal/errors"
	"bjustcoin/internal/service"
)

// AuditHandler handles audit log reads.
type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// List godoc
// @Summary List audit log entries
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.LogPage
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	page, err := h.auditService.List(c.Request().Context(), pageParam(c), limitParam(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// ListForUser godoc
// @Summary List audit log entries recorded by a user
// @Tags audit
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.LogPage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logs/users/{id} [get]
func (h *AuditHandler) ListForUser(c echo.Context) error {
	userID, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid user id",
			Code:  "INVALID_REQUEST",
		})
	}

	page, err := h.auditService.ListForUser(c.Request().Context(), userID, pageParam(c), limitParam(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}
