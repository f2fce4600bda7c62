package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/sultan-admin/internal/activity"
	"github.com/jwebster45206/sultan-admin/internal/config"
	"github.com/jwebster45206/sultan-admin/internal/handlers"
	"github.com/jwebster45206/sultan-admin/internal/logger"
	"github.com/jwebster45206/sultan-admin/internal/middleware"
	"github.com/jwebster45206/sultan-admin/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Sultan admin API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"database_path", cfg.DatabasePath,
		"version", cfg.Version)

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer storageCancel()

	store, err := storage.Open(storageCtx, cfg.DatabasePath, log)
	if err != nil {
		log.Error("Failed to open database", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	log.Info("Database ready", "path", cfg.DatabasePath)

	var feed activity.Feed
	if cfg.RedisURL != "" {
		redisFeed, err := activity.NewRedisFeed(storageCtx, cfg.RedisURL, cfg.ActivityLimit, log)
		if err != nil {
			log.Error("Failed to connect to activity feed", "error", err)
			os.Exit(1)
		}
		feed = redisFeed
	} else {
		feed = activity.NewMemoryFeed(cfg.ActivityLimit)
		log.Info("Using in-memory activity feed", "limit", cfg.ActivityLimit)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Storage: store,
		Feed:    feed,
		Logger:  log,
		Version: cfg.Version,
	})

	// CORS sits outside the router so preflight requests to any path are answered.
	handler := middleware.Logger(middleware.Recover(log)(middleware.CORS(cfg.CORSAllowedOrigins)(router)))
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := feed.Close(); err != nil {
		log.Error("Error closing activity feed", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing database", "error", err)
	}

	log.Info("Server exited")
}
