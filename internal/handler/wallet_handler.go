package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bjustcoin/internal/errors"
	"bjustcoin/internal/middleware"
	"bjustcoin/internal/service"
)

// WalletHandler handles wallet and whitelist administration.
type WalletHandler struct {
	userService service.UserService
}

// NewWalletHandler creates a new wallet handler.
func NewWalletHandler(userService service.UserService) *WalletHandler {
	return &WalletHandler{userService: userService}
}

// CreateWalletRequest attaches a wallet address to a user.
type CreateWalletRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Link   string `json:"link" validate:"required"`
}

// WhitelistRequest grants a user access to one token stage.
type WhitelistRequest struct {
	UserID    uint  `json:"user_id" validate:"required"`
	TokenType int16 `json:"token_type" validate:"required,min=1,max=12"`
}

// CreateWallet godoc
// @Summary Attach a wallet to a user
// @Tags wallets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWalletRequest true "Wallet data"
// @Success 201 {object} model.Wallet
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /wallets [post]
func (h *WalletHandler) CreateWallet(c echo.Context) error {
	var req CreateWalletRequest
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

	wallet, err := h.userService.CreateWallet(c.Request().Context(), middleware.CurrentUser(c), req.UserID, req.Link)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, wallet)
}

// DeleteWallet godoc
// @Summary Detach a wallet
// @Tags wallets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wallet ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /wallets/{id} [delete]
func (h *WalletHandler) DeleteWallet(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid wallet id",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.userService.DeleteWallet(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "wallet deleted",
	})
}

// GrantWhitelist godoc
// @Summary Whitelist a user for a token stage
// @Tags wallets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WhitelistRequest true "Whitelist data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /whitelist [post]
func (h *WalletHandler) GrantWhitelist(c echo.Context) error {
	var req WhitelistRequest
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

	if err := h.userService.GrantWhitelist(c.Request().Context(), middleware.CurrentUser(c), req.UserID, req.TokenType); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "whitelist entry created",
	})
}

// RevokeWhitelist godoc
// @Summary Remove a whitelist entry
// @Tags wallets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Whitelist entry ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /whitelist/{id} [delete]
func (h *WalletHandler) RevokeWhitelist(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid whitelist entry id",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.userService.RevokeWhitelist(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "whitelist entry removed",
	})
}
