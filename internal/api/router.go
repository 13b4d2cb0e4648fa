package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/edison/video-portal/internal/api/handler"
	"github.com/edison/video-portal/internal/api/middleware"
	"github.com/edison/video-portal/internal/core/service"
	mongodb "github.com/edison/video-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/edison/video-portal/internal/infrastructure/db/redis"
	"github.com/edison/video-portal/internal/infrastructure/http/handlers"
	"github.com/edison/video-portal/internal/infrastructure/queue"
	"github.com/edison/video-portal/internal/pkg/config"
)

// NewRouter builds the Echo instance with all routes registered and starts
// the audit dispatcher workers. Workers stop when ctx is cancelled.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	videoRepo := mongodb.NewVideoRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn)
	settingsService := service.NewSettingsService(settingsRepo)
	auditService := service.NewAuditService(auditRepo, log)
	loginGuard := redisdb.NewLoginGuard(rdb)
	authService := service.NewAuthService(userRepo, tokenService, settingsService, loginGuard, cfg.BcryptCost, log)
	userService := service.NewUserService(userRepo, cfg.BcryptCost)
	videoService := service.NewVideoService(videoRepo)
	systemService := service.NewSystemService(userRepo, videoRepo, auditRepo)

	// Audit records persist off the request path; the dispatcher owns the
	// worker goroutines.
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	videoHandler := handler.NewVideoHandler(videoService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	auditHandler := handler.NewAuditHandler(auditService)
	systemHandler := handler.NewSystemHandler(systemService)

	authMW := middleware.Auth(tokenService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authMW)
	auth.PUT("/profile", authHandler.UpdateProfile, authMW)
	auth.PUT("/password", authHandler.ChangePassword, authMW)

	// --- User management (admin only, audited) ---
	users := e.Group("/api/users", authMW, middleware.IsAdmin(), middleware.Audit("users", dispatcher))
	users.GET("", userHandler.List)
	users.GET("/count", userHandler.Count)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.PUT("/:id/roles", userHandler.UpdateRoles)

	// --- Video catalogue (reads for any authenticated user, mutations for
	// editors and above, audited) ---
	videos := e.Group("/api/videos", authMW, middleware.Audit("videos", dispatcher))
	videos.GET("", videoHandler.List, middleware.IsUser())
	videos.GET("/:id", videoHandler.Get, middleware.IsUser())
	videos.POST("", videoHandler.Create, middleware.IsEditor())
	videos.PUT("/:id", videoHandler.Update, middleware.IsEditor())
	videos.DELETE("/:id", videoHandler.Delete, middleware.IsEditor())

	// --- Settings (admin only, audited) ---
	settings := e.Group("/api/settings", authMW, middleware.IsAdmin(), middleware.Audit("settings", dispatcher))
	settings.GET("", settingsHandler.GetAll)
	settings.PUT("", settingsHandler.UpdateAll)
	settings.POST("/initialize", settingsHandler.Initialize)
	settings.GET("/:category", settingsHandler.GetCategory)
	settings.PUT("/:category", settingsHandler.UpdateCategory)

	// --- Audit trail (admin only) ---
	audit := e.Group("/api/audit", authMW, middleware.IsAdmin())
	audit.GET("", auditHandler.List)
	audit.DELETE("", auditHandler.Purge)

	// --- System status ---
	e.GET("/api/system/status", systemHandler.Status, authMW)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
