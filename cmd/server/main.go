package main

import (
	// Standard library
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	// External dependencies
	"github.com/gin-gonic/gin"

	// Internal packages
	"github.com/meetscribe/export-server/cmd/server/internal/api"
	"github.com/meetscribe/export-server/cmd/server/internal/config"
	"github.com/meetscribe/export-server/cmd/server/internal/export"
	"github.com/meetscribe/export-server/cmd/server/internal/history"
	"github.com/meetscribe/export-server/cmd/server/internal/meetings"
	"github.com/meetscribe/export-server/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	logInstance, err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		WithSource:  !strings.EqualFold(cfg.Server.Env, "production"),
		File:        cfg.Log.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	appLogger := logInstance.With("component", "export-server")

	// Validate configuration
	if err := config.ValidateConfig(cfg); err != nil {
		appLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	appLogger.Info("configuration loaded", "env", cfg.Server.Env, "port", cfg.Server.Port)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load meeting registry from disk
	meetings.InitPaths()
	meetingsReg := meetings.NewRegistry()
	if err := meetings.LoadMeetings(meetingsReg); err != nil {
		appLogger.Warn("failed to load meetings", "error", err)
	}
	appLogger.Info("meeting registry loaded", "meetings", len(meetingsReg.List()))

	// Open export history store
	historyStore, err := history.Open(cfg.Data.HistoryDB)
	if err != nil {
		appLogger.Error("history store init failed", "error", err, "path", cfg.Data.HistoryDB)
		os.Exit(1)
	}
	defer historyStore.Close()
	appLogger.Info("export history store ready", "path", cfg.Data.HistoryDB)

	// Assemble the export pipeline
	bus := export.NewBus(logInstance.With("component", "progress-bus"))
	formatRegistry := export.NewRegistry()
	coordinator := export.NewCoordinator(export.CoordinatorConfig{
		Source:        meetingsReg,
		Registry:      formatRegistry,
		Bus:           bus,
		History:       historyStore,
		Download:      export.NewFileSink(cfg.Data.DownloadsDir),
		Logger:        logInstance.With("component", "export-coordinator"),
		MaxConcurrent: cfg.Export.MaxConcurrent,
	})
	appLogger.Info("export pipeline ready",
		"formats", len(formatRegistry.ListFormats()),
		"max_concurrent", cfg.Export.MaxConcurrent,
	)

	r := api.NewRouter(api.Deps{
		Coordinator: coordinator,
		Registry:    formatRegistry,
		Meetings:    meetingsReg,
		History:     historyStore,
		Config:      cfg,
	})

	// Create HTTP server with graceful shutdown
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("server starting", "addr", serverAddr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit
	appLogger.Info("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server shutdown complete")
}
