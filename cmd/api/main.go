package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"moving-progress/config"
	_ "moving-progress/docs" // Swagger docs
	"moving-progress/internal/app"
	"moving-progress/internal/dashboard"
	"moving-progress/internal/httpserver"
	"moving-progress/internal/middleware"
	"moving-progress/pkg/log"
)

// @title       Moving Progress API
// @description Moving checklist progress, priority list and custom tasks on top of the Moovey backend.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Moving Progress...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Moovey URL: %s", cfg.Upstream.BaseURL)
	if cfg.Upstream.CSRFToken == "" {
		logger.Warn(ctx, "upstream.csrf_token is empty, mutations will be rejected by the backend")
	}

	// 3. Dashboard components
	components, err := app.New(cfg, logger)
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize dashboard: %v", err)
		return
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Warnf(context.Background(), "Failed to close resources: %v", err)
		}
	}()
	if components.Journal != nil {
		logger.Infof(ctx, "Mutation journal: %s", components.Journal.Path())
	}

	go components.Cache.Run(ctx, cfg.Cache.SweepInterval)

	// 4. Initial load. A failure is not fatal: the first snapshot request retries.
	if out, err := components.UseCase.Load(ctx, dashboard.LoadInput{}); err != nil {
		logger.Warnf(ctx, "Initial dashboard load failed: %v", err)
	} else {
		for _, s := range out.Stages {
			logger.Infof(ctx, "Loaded %s: %d records (cached=%t)", s.Name, s.Count, s.FromCache)
		}
	}

	// 5. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		Middleware:      middleware.Config{RateLimitPerMin: cfg.RateLimit.PerMin},
		DashboardUC:     components.UseCase,
		Readiness:       []httpserver.Pinger{components},
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "Failed to run server: %v", err)
		return
	}

	logger.Info(context.Background(), "Server stopped")
}
