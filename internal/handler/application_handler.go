package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"bjustcoin/internal/errors"
	"bjustcoin/internal/middleware"
	"bjustcoin/internal/service"
)

// ApplicationHandler handles the token purchase application workflow.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// SubmitApplicationRequest represents a new purchase application.
type SubmitApplicationRequest struct {
	Phone   string `json:"phone" validate:"required"`
	Mobile  string `json:"mobile"`
	IsAgree bool   `json:"is_agree" validate:"required"`
	Address string `json:"address" validate:"required"`
	Tokens  string `json:"tokens" validate:"required"`
}

// ApproveApplicationRequest carries the final grant for an approval.
type ApproveApplicationRequest struct {
	Tokens    string `json:"tokens" validate:"required"`
	TokenType int16  `json:"token_type" validate:"required,min=1,max=12"`
}

// Submit godoc
// @Summary Submit a token purchase application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitApplicationRequest true "Application data"
// @Success 201 {object} model.Application
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req SubmitApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	tokens, err := decimal.NewFromString(req.Tokens)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid tokens amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	app, err := h.applicationService.Submit(c.Request().Context(), middleware.CurrentUser(c), service.SubmitApplicationInput{
		Phone:   req.Phone,
		Mobile:  req.Mobile,
		IsAgree: req.IsAgree,
		Address: req.Address,
		Tokens:  tokens,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, app)
}

// Approve godoc
// @Summary Approve a pending application
// @Tags applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body ApproveApplicationRequest true "Grant data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications/{id}/approve [post]
func (h *ApplicationHandler) Approve(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid application id",
			Code:  "INVALID_REQUEST",
		})
	}

	var req ApproveApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	tokens, err := decimal.NewFromString(req.Tokens)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid tokens amount",
			Code:  "INVALID_AMOUNT",
		})
	}

	if err := h.applicationService.Approve(c.Request().Context(), middleware.CurrentUser(c), id, tokens, req.TokenType); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "application approved",
	})
}

// Reject godoc
// @Summary Reject a pending application
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /applications/{id}/reject [post]
func (h *ApplicationHandler) Reject(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid application id",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.applicationService.Reject(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "application rejected",
	})
}

func (h *ApplicationHandler) list(c echo.Context, fn func(ctx context.Context, page int, limit *int) (*service.ApplicationPage, error)) error {
	page, err := fn(c.Request().Context(), pageParam(c), limitParam(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// ListPending godoc
// @Summary List pending applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.ApplicationPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /applications/pending [get]
func (h *ApplicationHandler) ListPending(c echo.Context) error {
	return h.list(c, h.applicationService.ListPending)
}

// ListApproved godoc
// @Summary List approved applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.ApplicationPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /applications/approved [get]
func (h *ApplicationHandler) ListApproved(c echo.Context) error {
	return h.list(c, h.applicationService.ListApproved)
}

// ListRejected godoc
// @Summary List rejected applications
// @Tags applications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.ApplicationPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /applications/rejected [get]
func (h *ApplicationHandler) ListRejected(c echo.Context) error {
	return h.list(c, h.applicationService.ListRejected)
}
