package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/marcochiappo/Crimcuts/config"
	"github.com/marcochiappo/Crimcuts/internal/app/controller"
	"github.com/marcochiappo/Crimcuts/internal/app/repository"
	"github.com/marcochiappo/Crimcuts/internal/app/service"
	"github.com/marcochiappo/Crimcuts/internal/db"
	"github.com/marcochiappo/Crimcuts/internal/middleware"
	"github.com/marcochiappo/Crimcuts/internal/router"
	"github.com/marcochiappo/Crimcuts/internal/scheduler"
	"github.com/marcochiappo/Crimcuts/internal/storage"
	"github.com/marcochiappo/Crimcuts/pkg/logger"
	"github.com/marcochiappo/Crimcuts/pkg/redis"
	"github.com/marcochiappo/Crimcuts/pkg/util"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Server.LogFormat,
		EnableColor: !cfg.IsProduction(),
	})

	logger.Info("Starting Crimcuts server", logger.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"db_driver":   cfg.Database.Driver,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (optional)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize photo storage
	photos, err := storage.New(context.Background(), cfg.Storage, cfg.S3)
	if err != nil {
		logger.Fatal("Failed to initialize photo storage", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	catalogRepo := repository.NewCatalogRepository(db.GetDB())
	ratingRepo := repository.NewRatingRepository(db.GetDB())
	haircutRepo := repository.NewHaircutPhotoRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, util.PasswordPolicy(cfg.PasswordPolicy))
	catalogService := service.NewCatalogService(catalogRepo)
	ratingService := service.NewRatingService(ratingRepo, catalogRepo, photos)
	haircutService := service.NewHaircutService(catalogService, haircutRepo, photos)

	// Initialize controllers
	sessions := middleware.NewSessionManager(cfg.Session)
	barberController := controller.NewBarberController(catalogService, ratingService, haircutService)

	// Setup router
	r := router.NewRouter(
		controller.NewAuthController(authService, sessions),
		controller.NewPageController(db.GetDB()),
		barberController,
		controller.NewRatingController(ratingService, barberController),
		controller.NewCatalogController(catalogService),
		controller.NewHaircutController(haircutService),
		sessions,
		cfg,
	)
	engine, err := r.Setup()
	if err != nil {
		logger.Fatal("Failed to set up router", err)
	}

	// Start photo sweeper (optional)
	if cfg.Scheduler.PhotoSweepSchedule != "" {
		if local, ok := photos.(*storage.LocalStorage); ok {
			sweeper := scheduler.NewPhotoSweepScheduler(cfg.Scheduler.PhotoSweepSchedule, local, ratingRepo, haircutRepo)
			if err := sweeper.Start(); err != nil {
				logger.Fatal("Failed to start photo sweeper", err)
			}
			defer sweeper.Stop()
		} else {
			logger.Warn("Photo sweeper only supports local storage, not starting", logger.Fields{
				"storage": cfg.Storage.Driver,
			})
		}
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", logger.Fields{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", err)
		return
	}

	logger.Info("Server stopped successfully")
}
