package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/catalog-backend/config"
	"github.com/ikkim/catalog-backend/internal/app/controller"
	"github.com/ikkim/catalog-backend/internal/app/query"
	"github.com/ikkim/catalog-backend/internal/app/repository"
	"github.com/ikkim/catalog-backend/internal/app/service"
	"github.com/ikkim/catalog-backend/internal/db"
	"github.com/ikkim/catalog-backend/internal/middleware"
	"github.com/ikkim/catalog-backend/internal/router"
	"github.com/ikkim/catalog-backend/internal/scheduler"
	"github.com/ikkim/catalog-backend/pkg/logger"
	"github.com/ikkim/catalog-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Server.LogLevel,
		Format:      cfg.Server.LogFormat,
		EnableColor: cfg.Server.LogFormat == "console",
	})

	logger.Info("Starting catalog backend server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"api_prefix":  cfg.Server.APIPrefix,
		"log_level":   cfg.Server.LogLevel,
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

	// Revoked-token lookups are optional
	var isRevoked middleware.RevocationChecker
	if cfg.Redis.Enabled() {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			isRevoked = redis.IsTokenRevoked
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Relationship registry and query composer
	registry, err := repository.NewRegistry(db.GetDB().NamingStrategy)
	if err != nil {
		logger.Fatal("Invalid relationship registry", err)
	}
	composer := query.NewComposer(db.GetDB(), registry, query.Options{
		Timeout:      cfg.Query.Timeout,
		DefaultLimit: cfg.Query.DefaultLimit,
		MaxLimit:     cfg.Query.MaxLimit,
	})

	// Initialize repositories
	courseRepo, err := repository.NewCourseRepository(composer)
	if err != nil {
		logger.Fatal("Invalid course queries", err)
	}
	productRepo, err := repository.NewProductRepository(composer)
	if err != nil {
		logger.Fatal("Invalid product queries", err)
	}
	courseOrderRepo, err := repository.NewCourseOrderRepository(composer)
	if err != nil {
		logger.Fatal("Invalid course order queries", err)
	}

	// Initialize services
	courseService := service.NewCourseService(courseRepo)
	productService := service.NewProductService(productRepo)
	courseOrderService := service.NewCourseOrderService(courseOrderRepo)

	// Initialize controllers
	courseController := controller.NewCourseController(courseService)
	productController := controller.NewProductController(productService)
	courseOrderController := controller.NewCourseOrderController(courseOrderService)
	healthController := controller.NewHealthController(db.Ping)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, isRevoked)

	// Setup router
	r := router.NewRouter(
		courseController,
		productController,
		courseOrderController,
		healthController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Pool monitor
	if cfg.Monitor.Schedule != "" {
		sqlDB, err := db.GetDB().DB()
		if err != nil {
			logger.Fatal("Failed to get database instance", err)
		}
		monitor := scheduler.NewPoolMonitor(cfg.Monitor.Schedule, sqlDB)
		if err := monitor.Start(); err != nil {
			logger.Fatal("Failed to start pool monitor", err)
		}
		defer monitor.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
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

	logger.Info("Shutting down server gracefully...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
		return
	}

	logger.Info("Server stopped successfully", nil)
}
