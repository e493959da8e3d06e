// Package main is the entry point for the dialdesk HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/dialdesk/dialdesk/internal/config"
	"github.com/dialdesk/dialdesk/internal/gateway"
	"github.com/dialdesk/dialdesk/internal/handler"
	"github.com/dialdesk/dialdesk/internal/repository"
	"github.com/dialdesk/dialdesk/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	var repo repository.Repository
	var redisClient *redis.Client

	if cfg.DemoMode {
		// No database configured. Reads serve sample data, writes answer
		// NOT_CONFIGURED, and the process still comes up for demos.
		logger.Warn("No database configured, starting in demo mode")
	} else {
		db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}()

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		repo = repository.NewRepository(db)

		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
	}

	gw := gateway.NewTwilioGateway(&cfg.Gateway, logger)
	if !gw.Enabled() {
		logger.Warn("SMS provider credentials missing, sends will report NOT_CONFIGURED")
	}

	svc := service.NewService(cfg, repo, gw, redisClient, logger)
	h := handler.NewHandler(svc, gw, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      setupRouter(cfg, h, logger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// The campaign dispatcher only makes sense with a database behind it.
	if !cfg.DemoMode {
		if err := svc.Scheduler.Start(); err != nil {
			logger.Error("Failed to start scheduler on startup", zap.Error(err))
		} else {
			logger.Info("Campaign scheduler started")
		}
	}

	go func() {
		logger.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if svc.Scheduler.IsRunning() {
		if err := svc.Scheduler.Stop(); err != nil {
			logger.Error("Failed to stop scheduler", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
