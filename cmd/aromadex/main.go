// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/aromadex/aromadex/internal/cache"
	"github.com/aromadex/aromadex/internal/catalog"
	"github.com/aromadex/aromadex/internal/config"
	"github.com/aromadex/aromadex/internal/handler/api"
	"github.com/aromadex/aromadex/internal/middleware"
	"github.com/aromadex/aromadex/internal/model"
	"github.com/aromadex/aromadex/internal/scheduler"
	"github.com/aromadex/aromadex/internal/search"
	"github.com/aromadex/aromadex/internal/session"
	"github.com/aromadex/aromadex/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "aromadex - terpene catalog service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_DATA_DIR           Catalog data directory (default: ./data)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_DEFAULT_LANGUAGE   Default catalog language (default: en)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_REDIS_URL          Redis URL for a shared merge cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_SESSIONS_DB_PATH   SQLite file for session storage (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ADX_RELOAD_SCHEDULE    Catalog reload cron spec (default: @every 10m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load the catalog
	slog.Info("loading catalog", "dir", cfg.DataDir)
	cat, err := catalog.Open(cfg.DataDir, logger)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}

	// Build the cross-language search index
	index := search.New(logger)
	index.Build(cat.Records(), cat.AllOverlays())
	slog.Info("search index built", "records", index.Len())

	// Merge cache backend (memory, or Redis when configured)
	cacheBackend, err := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("merge cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("merge cache initialized", "backend", "memory")
	}

	// Session store: SQLite when configured, in-memory otherwise
	var sessionsDB *sql.DB
	if cfg.UseSQLiteSessions() {
		sessionsDB, err = session.OpenStore(cfg.SessionsDBPath)
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer func() {
			if err := sessionsDB.Close(); err != nil {
				slog.Error("error closing sessions database", "error", err)
			}
		}()
		slog.Info("session store initialized", "backend", "sqlite", "path", cfg.SessionsDBPath)
	} else {
		slog.Info("session store initialized", "backend", "memory")
	}
	sessionManager := session.New(sessionsDB, cfg.IsDevelopment())

	// API handler
	categories := model.DefaultCategoryIndex()
	apiHandler := api.NewHandler(api.Options{
		Catalog:    cat,
		Index:      index,
		Categories: categories,
		CacheBase:  cacheBackend,
		CacheTTL:   time.Duration(cfg.CacheTTL) * time.Second,
		Sessions:   sessionManager,
		Logger:     logger,
	})

	// Periodic catalog reload
	sched := scheduler.New(cat, index, apiHandler.MergeCache(), logger)
	if err := sched.Start(cfg.ReloadSchedule); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Router
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(logger))
	r.Use(limiter.Middleware())
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.Language(cat, cfg.DefaultLanguage))

	r.Mount("/api/v1", apiHandler.Routes())

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
