package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"bjustcoin/internal/errors"
	"bjustcoin/internal/middleware"
	"bjustcoin/internal/model"
	"bjustcoin/internal/service"
)

// HolderHandler handles the token holder registry.
type HolderHandler struct {
	applicationService service.ApplicationService
}

// NewHolderHandler creates a new holder handler.
func NewHolderHandler(applicationService service.ApplicationService) *HolderHandler {
	return &HolderHandler{applicationService: applicationService}
}

// HolderRow is one entry of a registry snapshot.
type HolderRow struct {
	Address string `json:"address" validate:"required"`
	Count   int16  `json:"count"`
	Stage   string `json:"stage" validate:"required"`
	Tokens  string `json:"tokens" validate:"required"`
}

// SyncHoldersRequest carries a registry snapshot.
type SyncHoldersRequest struct {
	Holders []HolderRow `json:"holders" validate:"required,dive"`
}

// EditHolderRequest updates one holder row.
type EditHolderRequest struct {
	Tokens string `json:"tokens" validate:"required"`
	Stage  string `json:"stage" validate:"required"`
}

// Sync godoc
// @Summary Reconcile the holder registry from a snapshot
// @Tags holders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SyncHoldersRequest true "Registry snapshot"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /holders/sync [post]
func (h *HolderHandler) Sync(c echo.Context) error {
	var req SyncHoldersRequest
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

	holders := make([]model.Holder, 0, len(req.Holders))
	for _, row := range req.Holders {
		holders = append(holders, model.Holder{
			Address: row.Address,
			Count:   row.Count,
			Stage:   row.Stage,
			Tokens:  row.Tokens,
		})
	}

	if err := h.applicationService.SyncHolders(c.Request().Context(), middleware.CurrentUser(c), holders); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "holders synchronized",
	})
}

// Edit godoc
// @Summary Edit a holder entry
// @Tags holders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Holder ID"
// @Param request body EditHolderRequest true "Holder data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /holders/{id} [put]
func (h *HolderHandler) Edit(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid holder id",
			Code:  "INVALID_REQUEST",
		})
	}

	var req EditHolderRequest
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

	if err := h.applicationService.EditHolder(c.Request().Context(), middleware.CurrentUser(c), id, req.Tokens, req.Stage); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "holder updated",
	})
}

// Delete godoc
// @Summary Delete a holder entry
// @Tags holders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Holder ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /holders/{id} [delete]
func (h *HolderHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid holder id",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.applicationService.DeleteHolder(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "holder deleted",
	})
}

// List godoc
// @Summary List the holder registry
// @Tags holders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} service.HolderPage
// @Failure 403 {object} errors.ErrorResponse
// @Router /holders [get]
func (h *HolderHandler) List(c echo.Context) error {
	page, err := h.applicationService.ListHolders(c.Request().Context(), pageParam(c), limitParam(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}
