package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bjustcoin/docs"
	"bjustcoin/internal/config"
	"bjustcoin/internal/handler"
	"bjustcoin/internal/middleware"
	"bjustcoin/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	applicationHandler *handler.ApplicationHandler,
	holderHandler *handler.HolderHandler,
	auditHandler *handler.AuditHandler,
	walletHandler *handler.WalletHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/reset", authHandler.Reset)
	api.POST("/auth/invite", authHandler.Invite)

	// Signed-in routes. Application listings and audit reads are plain
	// signed-in surfaces, not admin ones.
	signed := api.Group("", middleware.Identity(authService))
	signed.POST("/auth/logout", authHandler.Logout)
	signed.GET("/me", authHandler.Me)
	signed.POST("/applications", applicationHandler.Submit)
	signed.GET("/applications/pending", applicationHandler.ListPending)
	signed.GET("/applications/approved", applicationHandler.ListApproved)
	signed.GET("/applications/rejected", applicationHandler.ListRejected)
	signed.GET("/logs", auditHandler.List)
	signed.GET("/logs/users/:id", auditHandler.ListForUser)

	// PromoteSuperuser stays outside the superuser group: the service
	// allows a one-time bootstrap when no superuser exists yet.
	signed.POST("/admin/users/:id/superuser", adminHandler.PromoteSuperuser)

	// Admin routes
	admin := signed.Group("", middleware.RequireAdmin)
	admin.GET("/admin/users", adminHandler.ListUsers)
	admin.GET("/admin/users/blocked", adminHandler.ListBlockedUsers)
	admin.POST("/admin/users/:id/block", adminHandler.BlockUser)
	admin.POST("/admin/users/:id/unblock", adminHandler.UnblockUser)
	admin.POST("/wallets", walletHandler.CreateWallet)
	admin.DELETE("/wallets/:id", walletHandler.DeleteWallet)
	admin.POST("/whitelist", walletHandler.GrantWhitelist)
	admin.DELETE("/whitelist/:id", walletHandler.RevokeWhitelist)

	// Superuser routes
	super := signed.Group("", middleware.RequireSuperuser)
	super.GET("/admin/admins", adminHandler.ListAdmins)
	super.GET("/admin/admins/blocked", adminHandler.ListBlockedAdmins)
	super.POST("/admin/admins/:id/block", adminHandler.BlockAdmin)
	super.POST("/admin/admins/:id/unblock", adminHandler.UnblockAdmin)
	super.POST("/admin/users/:id/promote", adminHandler.PromoteAdmin)
	super.POST("/admin/admins/:id/demote", adminHandler.DemoteAdmin)
	super.POST("/admin/users/:id/can-buy", adminHandler.GrantCanBuy)
	super.DELETE("/admin/users/:id/can-buy", adminHandler.RevokeCanBuy)
	super.POST("/applications/:id/approve", applicationHandler.Approve)
	super.POST("/applications/:id/reject", applicationHandler.Reject)
	super.POST("/holders/sync", holderHandler.Sync)
	super.GET("/holders", holderHandler.List)
	super.PUT("/holders/:id", holderHandler.Edit)
	super.DELETE("/holders/:id", holderHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
