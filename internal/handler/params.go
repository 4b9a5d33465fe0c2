package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// pageParam reads ?page=, defaulting to the first page.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// limitParam reads ?limit=; nil means the caller did not ask for one and the
// service picks the default.
func limitParam(c echo.Context) *int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &limit
}

// idParam reads a numeric :id path segment.
func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
