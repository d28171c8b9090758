package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wavegram/wavegram/internal/api"
	"github.com/wavegram/wavegram/internal/auth"
	"github.com/wavegram/wavegram/internal/cache"
	"github.com/wavegram/wavegram/internal/db"
	"github.com/wavegram/wavegram/internal/service"
	"github.com/wavegram/wavegram/internal/upload"
	"github.com/wavegram/wavegram/pkg/config"
	"github.com/wavegram/wavegram/pkg/logging"
	"github.com/wavegram/wavegram/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Wavegram API Server")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	// Connect to the database and run migrations
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis cache is optional; a nil cache disables read-model caching
	var redisCache *cache.Cache
	if cfg.Redis.Enabled {
		redisCache, err = cache.New(&cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache", zap.Error(err))
			redisCache = nil
		}
	}
	defer redisCache.Close()

	// Upload storage
	uploads, err := upload.NewSaver(cfg.Upload)
	if err != nil {
		logger.Fatal("Failed to prepare upload directories", zap.Error(err))
	}

	// Repositories
	repo := db.NewRepository(database.DB)
	userRepo := db.NewUserRepository(repo)
	postRepo := db.NewPostRepository(repo)
	commentRepo := db.NewCommentRepository(repo)

	// Services
	tokens := auth.NewTokenService(cfg.Auth)
	passwords := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	projections := service.NewProjectionBuilder(commentRepo)

	userService := service.NewUserService(userRepo, tokens, passwords)
	postService := service.NewPostService(postRepo, projections, redisCache)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, redisCache)

	// HTTP engine
	if cfg.Logging.Level == "DEBUG" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(api.Trace())
	engine.Use(api.RateLimit(cfg.Server.RateLimitPerMinute, cfg.Server.RateLimitBurst))
	engine.Use(api.ErrorHandler())
	engine.Static("/uploads", cfg.Upload.Dir)

	router := api.NewRouter(userService, postService, commentService, tokens, userRepo, uploads, database)
	router.SetupRoutes(engine)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Server starting", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
