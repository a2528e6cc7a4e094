package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/learnsphere/backend/docs"
	"github.com/learnsphere/backend/internal/config"
	"github.com/learnsphere/backend/internal/handlers"
	"github.com/learnsphere/backend/internal/logger"
	appMiddleware "github.com/learnsphere/backend/internal/middleware"
	"github.com/learnsphere/backend/internal/remote"
	"github.com/learnsphere/backend/internal/repositories"
	"github.com/learnsphere/backend/internal/services"
	_ "github.com/mattn/go-sqlite3"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title LearnSphere Offline API
// @version 1.0
// @description Offline cache and sync queue for the LearnSphere learning platform

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting LearnSphere Offline Service")

	// Open the local store
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open local store", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	coursesRepo := repositories.NewCoursesRepository(db, logger.Logger)
	usersRepo := repositories.NewUsersRepository(db, logger.Logger)
	queueRepo := repositories.NewSyncQueueRepository(db, logger.Logger)
	metadataRepo := repositories.NewMetadataRepository(db, logger.Logger)

	// Initialize remote document store client
	remoteClient := remote.NewClient(cfg.Remote.BaseURL, cfg.Remote.APIKey, cfg.Remote.Timeout, logger.Logger)

	// Initialize services
	cacheService := services.NewCacheService(
		coursesRepo,
		usersRepo,
		metadataRepo,
		queueRepo,
		remoteClient,
		cfg.Cache.RecommendedCount,
		cfg.Cache.MaxAge,
		logger.Logger,
	)
	syncService := services.NewSyncService(queueRepo, remoteClient, cfg.Sync.MaxAttempts, cfg.Sync.BaseBackoff, logger.Logger)
	networkMonitor := services.NewNetworkMonitor(syncService, logger.Logger)

	// Initialize handlers
	cacheHandler := handlers.NewCacheHandler(cacheService, logger.Logger)
	syncHandler := handlers.NewSyncHandler(syncService, logger.Logger)
	networkHandler := handlers.NewNetworkHandler(networkMonitor, logger.Logger)

	// Schedule periodic cache eviction
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Cache.CleanupSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := cacheService.CleanupCache(ctx, cfg.Cache.MaxAge); err != nil {
			logger.Logger.Error("scheduled cache cleanup failed", zap.Error(err))
		}
	}); err != nil {
		logger.Logger.Fatal("Failed to schedule cache cleanup", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(appMiddleware.RequestIDMiddleware)
	r.Use(appMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(appMiddleware.RecoveryMiddleware(logger.Logger))
	r.Use(appMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(appMiddleware.RequestSizeLimitMiddleware(10 * 1024 * 1024)) // 10MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		cacheHandler.RegisterRoutes(r)
		syncHandler.RegisterRoutes(r)
		networkHandler.RegisterRoutes(r)
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info("Server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server shutdown failed", zap.Error(err))
	}
}

// connectDB opens the local store and verifies the connection
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations applies pending schema migrations to the local store
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
