// File: app/app.go
package app

import (
	"context"
	"database/sql"
	"go-session-api/config"
	"go-session-api/db"
	"go-session-api/handler"
	"go-session-api/logger"
	"go-session-api/repository"
	"go-session-api/router"
	"go-session-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	// The login limiter degrades gracefully: a missing redis disables
	// throttling instead of taking the service down.
	var limiter *service.LoginLimiter
	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.WithError(err).Warn("Redis unavailable, login throttling disabled")
	} else {
		defer redisClient.Close()
		limiter = service.NewLoginLimiter(redisClient)
	}

	// --- Wiring All Layers Together ---
	userRepo := repository.NewUserRepository(database)
	sessionRepo := repository.NewSessionRepository(database)

	codec := service.NewTokenCodec(config.AppConfig.JWT.SecretKey)
	sessionManager := service.NewSessionManager(
		sessionRepo,
		codec,
		config.AppConfig.Environment == "production",
		config.AppConfig.Session.RotateRefresh,
	)
	authService := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authService, sessionManager, limiter)

	r := router.NewRouter(authHandler, handler.NewAuthMiddleware(codec))

	// Optional sweep of expired refresh records.
	reapCtx, stopReaper := context.WithCancel(context.Background())
	defer stopReaper()
	if minutes := config.AppConfig.Session.ReapIntervalMinutes; minutes > 0 {
		reaper := service.NewSessionReaper(sessionRepo, time.Duration(minutes)*time.Minute)
		go reaper.Run(reapCtx)
		logger.Log.WithField("interval_minutes", minutes).Info("Session reaper started")
	}

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")
	stopReaper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// TestApp bundles the wired router with its backing connections so
// integration tests can drive the full HTTP surface.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

// NewTestApp wires the application against the given connections, with
// test-friendly cookie settings (no Secure flag, no rotation).
func NewTestApp(database *sql.DB, redisClient *redis.Client) *TestApp {
	userRepo := repository.NewUserRepository(database)
	sessionRepo := repository.NewSessionRepository(database)

	codec := service.NewTokenCodec(config.AppConfig.JWT.SecretKey)
	sessionManager := service.NewSessionManager(sessionRepo, codec, false, false)
	authService := service.NewAuthService(userRepo)

	var limiter *service.LoginLimiter
	if redisClient != nil {
		limiter = service.NewLoginLimiter(redisClient)
	}
	authHandler := handler.NewAuthHandler(authService, sessionManager, limiter)

	return &TestApp{
		DB:     database,
		Router: router.NewRouter(authHandler, handler.NewAuthMiddleware(codec)),
	}
}
