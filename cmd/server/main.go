package main

import (
	"log"
	"net/http"

	_ "bjustcoin/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"bjustcoin/internal/auth"
	"bjustcoin/internal/cache"
	"bjustcoin/internal/config"
	"bjustcoin/internal/db"
	"bjustcoin/internal/handler"
	"bjustcoin/internal/model"
	"bjustcoin/internal/notifier"
	"bjustcoin/internal/repository"
	"bjustcoin/internal/router"
	"bjustcoin/internal/service"
)

// @title Bjustcoin Admin API
// @version 1.0
// @description Token sale administration API with role management, purchase applications and audit logging.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Wallet{},
		&model.WhitelistEntry{},
		&model.Application{},
		&model.Holder{},
		&model.AuthRequest{},
		&model.LogEntry{},
		&model.VerificationToken{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	walletRepo := repository.NewWalletRepository(gormDB)
	appRepo := repository.NewApplicationRepository(gormDB)
	holderRepo := repository.NewHolderRepository(gormDB)
	logRepo := repository.NewLogRepository(gormDB)
	authRequestRepo := repository.NewAuthRequestRepository(gormDB)
	tokenRepo := repository.NewVerificationTokenRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewHasher(cfg.PasswordPepper)
	sessions := auth.NewSessionStore(cacheClient)

	var mail notifier.Notifier = notifier.Noop{}
	if cfg.SMTPHost != "" {
		mail = notifier.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	}

	// Initialize services
	auditService := service.NewAuditService(logRepo)
	authService := service.NewAuthService(userRepo, authRequestRepo, tokenRepo, hasher, sessions, mail)
	permissionService := service.NewPermissionService(userRepo, walletRepo, auditService)
	userService := service.NewUserService(userRepo, walletRepo, auditService)
	applicationService := service.NewApplicationService(appRepo, userRepo, walletRepo, holderRepo, auditService, mail, cfg.OpsEmail, cfg.BaseURL)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	adminHandler := handler.NewAdminHandler(permissionService, userService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	holderHandler := handler.NewHolderHandler(applicationService)
	auditHandler := handler.NewAuditHandler(auditService)
	walletHandler := handler.NewWalletHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		adminHandler,
		applicationHandler,
		holderHandler,
		auditHandler,
		walletHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
