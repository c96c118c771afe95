// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/config"
	"github.com/crabnorway/crabsite/internal/content"
	"github.com/crabnorway/crabsite/internal/handler"
	"github.com/crabnorway/crabsite/internal/handler/api"
	"github.com/crabnorway/crabsite/internal/i18n"
	"github.com/crabnorway/crabsite/internal/logging"
	"github.com/crabnorway/crabsite/internal/middleware"
	"github.com/crabnorway/crabsite/internal/scheduler"
	"github.com/crabnorway/crabsite/internal/seo"
	"github.com/crabnorway/crabsite/internal/service"
	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = ""
	appGitCommit = ""
	appBuildTime = ""
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "crabsite - Crab Norway content server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAB_SECRET            CSRF key material (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAB_DB_PATH           SQLite database path (default: ./data/crabsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAB_SITE_URL          Public site URL used in sitemap and robots\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAB_REDIS_URL         Redis URL for a shared content cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAB_ADMIN_PASSWORD    Password of the seeded admin account\n")
	}
	flag.Parse()

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}.FromBuildInfo()
	if *showVersion {
		_, _ = fmt.Printf("crabsite %s\n", info)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if !cfg.CMSConfigured() {
		return errors.New("CRAB_DB_PATH must be set")
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	logger := slog.New(textHandler)
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	st := store.NewStore(db)

	// Persist WARN and ERROR records into the event log from here on
	logger = slog.New(logging.NewEventLogHandler(textHandler, st))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, st.Queries, store.SeedOptions{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	backend, backendName := cache.NewBackend(cfg.CacheConfig())
	contentCache := cache.NewContentCache(backend, logger)
	defer func() { _ = contentCache.Close() }()
	slog.Info("content cache initialized", "backend", backendName)

	catalog, err := i18n.New(logger)
	if err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	siteURL := seo.ResolveSiteBaseURL(cfg.SiteURL, cfg.ServerURL)
	site := content.NewSite(
		content.NewBuilder(st, siteURL.String(), logger),
		contentCache,
		cache.NewPolicies(cfg.Revalidation()),
	)

	services := api.Services{
		Posts:    service.NewPostService(st, site, logger),
		Library:  service.NewLibraryService(st, site, logger),
		Globals:  service.NewGlobalService(st, site, logger),
		Contacts: service.NewContactService(st, logger),
		Events:   service.NewEventService(st.Queries),
	}

	sched, err := scheduler.New(scheduler.Config{
		WarmSchedule:   cfg.WarmSchedule,
		PruneSchedule:  cfg.PruneSchedule,
		EventRetention: cfg.EventRetention,
		Warmer:         site,
		Events:         st,
		Overrides:      st,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing scheduler: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Locale)
	r.Use(middleware.RequestMemo)

	healthHandler := handler.NewHealthHandler(st, info)
	seoHandler := handler.NewSEOHandler(siteURL, st, logger)
	contentHandler := handler.NewContentHandler(site, catalog, logger)
	contactHandler := handler.NewContactHandler(services.Contacts, logger)
	contactLimiter := middleware.NewRateLimiter(cfg.ContactRPS, cfg.ContactBurst, logger)

	r.Get("/health", healthHandler.Health)
	r.Get("/sitemap.xml", seoHandler.Sitemap)
	r.Get("/robots.txt", seoHandler.Robots)

	r.Route("/api", func(r chi.Router) {
		r.With(contactLimiter.Middleware).Post("/contact-requests", contactHandler.Create)
		r.Get("/messages", contentHandler.Messages)

		r.Route("/content", func(r chi.Router) {
			r.Use(middleware.CacheControl(time.Minute))
			r.Get("/home", contentHandler.Home)
			r.Get("/about", contentHandler.About)
			r.Get("/contact", contentHandler.Contact)
			r.Get("/faq", contentHandler.FAQ)
			r.Get("/popup", contentHandler.Popup)
			r.Get("/blog", contentHandler.Blog)
			r.Get("/blog/{slug}", contentHandler.BlogPost)
		})
	})

	adminAPI := api.NewHandler(services, site, contentCache, sched.Registry(), logger)
	lockout := middleware.NewLockout(5, 15*time.Minute, 15*time.Minute)
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.Secret)[:config.MinSecretLength], siteURL, cfg.IsDevelopment())

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.BasicAuth(st, lockout, logger))
		r.Use(middleware.CSRF(csrfConfig, logger))
		r.Mount("/", adminAPI.Routes())
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handler.WriteJSONError(w, http.StatusNotFound, "Not found.")
	})

	// Fill the cache before taking traffic
	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := site.Warm(warmCtx); err != nil {
			slog.Warn("initial cache warm failed", "category", "cache", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", info.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
