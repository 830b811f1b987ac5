package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/widescope/api/internal/api"
	"github.com/widescope/api/internal/api/handlers"
	"github.com/widescope/api/internal/cache"
	"github.com/widescope/api/internal/chat"
	"github.com/widescope/api/internal/repository"
	"github.com/widescope/api/internal/services"
	"github.com/widescope/api/internal/storage/objectstore"
	"github.com/widescope/api/internal/uploads"
	"github.com/widescope/api/pkg/config"
	"github.com/widescope/api/pkg/database"
	"github.com/widescope/api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting Widescope API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to the document store
	ctx := context.Background()
	client, err := database.OpenMongo(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	db := client.Database(cfg.MongoDB)
	log.Info("Database connected successfully")

	if err := repository.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal("Failed to ensure user indexes", zap.Error(err))
	}
	if err := repository.EnsureProjectIndexes(ctx, db); err != nil {
		log.Fatal("Failed to ensure project indexes", zap.Error(err))
	}

	// Remote object store for project logos
	store, err := objectstore.NewS3(ctx, objectstore.Config{
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		PublicURL: cfg.StoragePublicURL,
	})
	if err != nil {
		log.Fatal("Failed to build object store client", zap.Error(err))
	}

	// Optional listing cache
	var listCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		listCache = redisCache
		log.Info("Redis cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// JWT secret
	jwtSecret := []byte(cfg.AuthSecret)
	if len(jwtSecret) == 0 {
		log.Warn("AUTH_SECRET not set, using default (INSECURE for production)")
		jwtSecret = []byte("change-me-in-production-please")
	}

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	authService := services.NewAuthService(userRepo, jwtSecret)
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, listCache)

	// Image pipeline
	receiver := uploads.NewReceiver(cfg.UploadDir, cfg.MaxUploadBytes)
	compressor := uploads.NewCompressor(cfg.UploadDir)
	uploader := uploads.NewRemoteUploader(cfg.UploadDir, store)

	// Handlers
	usersHandler := handlers.NewUsersHandler(authService, userService)
	projectsHandler := handlers.NewProjectsHandler(
		projectService, userService, receiver, compressor, uploader, cfg.UploadDir)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		HMACSecret:      jwtSecret,
		ClientOrigin:    cfg.ClientOrigin,
		UsersHandler:    usersHandler,
		ProjectsHandler: projectsHandler,
		ChatHub:         chat.NewHub(),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Warn("database disconnect error", zap.Error(err))
	}
}
