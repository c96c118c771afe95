// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command crabtranslate maintains the translated site content: it
// translates the landing page into Russian, seeds the about page and prints
// the English landing page.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/config"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/translate"
)

// translationCacheSize bounds the per-run translation memo.
const translationCacheSize = 2048

func main() {
	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Commands:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  home-ru        Translate the landing page into Russian\n")
		_, _ = fmt.Fprintf(os.Stderr, "  seed-about     Write the English about page and its Russian translation\n")
		_, _ = fmt.Fprintf(os.Stderr, "  inspect-home   Print the English landing page as JSON\n")
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), flag.Arg(0), os.Stdout, logger); err != nil {
		slog.Error("crabtranslate failed", "category", "translate", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, out io.Writer, logger *slog.Logger) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	st := store.NewStore(db)

	switch command {
	case "inspect-home":
		return inspectHome(ctx, st.Queries, out)
	case "home-ru", "seed-about":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	base, err := newTranslator(cfg, logger)
	if err != nil {
		return err
	}
	memo := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: 24 * time.Hour, MaxSize: translationCacheSize})
	defer func() { _ = memo.Close() }()
	tr := translate.NewCachingTranslator(base, memo)

	if command == "home-ru" {
		if err := translateHome(ctx, st.Queries, tr, logger); err != nil {
			return err
		}
		return invalidate(ctx, cfg, cache.TagHome, logger)
	}
	if err := seedAbout(ctx, st.Queries, tr, logger); err != nil {
		return err
	}
	return invalidate(ctx, cfg, cache.TagAbout, logger)
}

// newTranslator builds the configured machine translation backend.
// newTranslator builds the configured machine translation backend.
func newTranslator(cfg *config.Config, logger *slog.Logger) (translate.Translator, error) {
	switch cfg.TranslateProvider {
	case translate.ProviderOpenAI:
		return translate.NewOpenAITranslator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.TranslateTimeout)
	case translate.ProviderGoogle, "":
		return translate.NewGoogleTranslator(translate.GoogleOptions{
			Endpoint: cfg.TranslateEndpoint,
			Timeout:  cfg.TranslateTimeout,
			Attempts: cfg.TranslateAttempts,
			Logger:   logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown translate provider %q", cfg.TranslateProvider)
	}
}

func translateHome(ctx context.Context, q *store.Queries, tr translate.Translator, logger *slog.Logger) error {
	var home cms.HomeGlobal
	if err := q.FindGlobal(ctx, cms.GlobalHome, &home, 0); err != nil {
		return err
	}
	n, err := translate.Document(ctx, tr, &home, locale.RU)
	if err != nil {
		return err
	}
	if err := q.SaveGlobal(ctx, cms.GlobalHome, &home, time.Now()); err != nil {
		return fmt.Errorf("saving home: %w", err)
	}
	logger.Info("home translated from en to ru", "category", "translate", "fields", n)
	return nil
}

func seedAbout(ctx context.Context, q *store.Queries, tr translate.Translator, logger *slog.Logger) error {
	ogImage, err := resolveOpenGraphImage(ctx, q)
	if err != nil {
		return err
	}
	heroImage, err := resolveHeroImage(ctx, q, heroImageSource, ogImage)
	if err != nil {
		return err
	}

	about := aboutSource()
	about.SEO.OpenGraphImage = cms.UnresolvedInt[cms.Media](ogImage)
	about.Hero.InlineImage = cms.UnresolvedInt[cms.Media](heroImage)
	about.AssignIDs()

	n, err := translate.Document(ctx, tr, about, locale.RU)
	if err != nil {
		return err
	}
	if err := q.SaveGlobal(ctx, cms.GlobalAbout, about, time.Now()); err != nil {
		return fmt.Errorf("saving about: %w", err)
	}
	logger.Info("about seeded for en and translated to ru", "category", "translate", "fields", n)
	return nil
}

func inspectHome(ctx context.Context, q *store.Queries, out io.Writer) error {
	var home cms.HomeGlobal
	if err := q.FindGlobal(ctx, cms.GlobalHome, &home, 1); err != nil {
		return err
	}
	translate.Only(&home, locale.EN)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"realExperience": home.RealExperience,
		"pricing":        home.Pricing,
		"hero":           home.Hero,
		"whatYouFind":    home.WhatYouFind,
		"whoWeAre":       home.WhoWeAre,
	})
}

// invalidate drops tag from a shared Redis cache so the running site picks
// up the change. A process-local cache belongs to the server and is skipped.
func invalidate(ctx context.Context, cfg *config.Config, tag string, logger *slog.Logger) error {
	if !cfg.UseRedisCache() {
		return nil
	}
	backend, name := cache.NewBackend(cfg.CacheConfig())
	c := cache.NewContentCache(backend, logger)
	defer func() { _ = c.Close() }()
	if name != cache.BackendRedis {
		logger.Warn("redis unavailable, cached content not invalidated", "category", "translate", "tag", tag)
		return nil
	}
	if err := c.Invalidate(ctx, tag); err != nil {
		return fmt.Errorf("invalidating %s: %w", tag, err)
	}
	logger.Info("cache invalidated", "category", "cache", "tag", tag)
	return nil
}
