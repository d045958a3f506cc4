// Package main is the entry point for the toolshop server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toolshop/internal/cache"
	"toolshop/internal/config"
	"toolshop/internal/database"
	"toolshop/internal/handlers"
	"toolshop/internal/middleware"
	"toolshop/internal/router"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, nil)
	if cfg.IsDev() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(logHandler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"catalog_cache_ttl", cfg.CatalogCacheTTL.String(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey for the public page cache. The server still works
	// without it, rendering the catalog on every request.
	var (
		pages       handlers.PageCache
		invalidator handlers.CatalogInvalidator
	)
	valkeyClient, err := cache.ConnectValkey(context.Background(), cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, page cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		pageCache := cache.NewPageCache(valkeyClient, cfg.CatalogCacheTTL)
		pages, invalidator = pageCache, pageCache
	}

	// Create handler groups with their dependencies.
	stores := handlers.NewStores(db)
	adminHandlers := handlers.NewAdmin(stores, invalidator)
	publicHandlers, err := handlers.NewPublic(stores.Products, pages, cfg.CatalogCacheTTL)
	if err != nil {
		slog.Error("failed to initialize public handlers", "error", err)
		os.Exit(1)
	}

	var limiter *middleware.RateLimiter
	if cfg.AdminWriteLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.AdminWriteLimit, time.Minute)
		defer limiter.Stop()
	}

	// Set up the Chi router with all middleware and routes.
	r := router.New(adminHandlers, publicHandlers, limiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
