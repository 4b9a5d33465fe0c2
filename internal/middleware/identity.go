package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/service"
)

// userContextKey is where the resolved user lives on the echo context.
const userContextKey = "currentUser"

// CurrentUser returns the user resolved by Identity, or nil on public routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

// Identity resolves the bearer token into the live user row and stores it on
// the context. Requests without a valid session are rejected; so are
// sessions whose account has been blocked since the token was issued.
func Identity(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			user, err := authService.ResolveSession(c.Request().Context(), token)
			if err != nil {
				httpErr := errors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if user.Role.IsBlocked() {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "account is blocked",
					Code:  "FORBIDDEN",
				})
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin allows admins and superusers through.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.Role.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "forbidden",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// RequireSuperuser allows only superusers through.
func RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.Role.IsSuperuser() {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "forbidden",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
