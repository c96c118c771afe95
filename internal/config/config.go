// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/crabnorway/crabsite/internal/cache"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CRAB_DB_PATH" envDefault:"./data/crabsite.db"`
	Secret     string `env:"CRAB_SECRET,required"`
	ServerHost string `env:"CRAB_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CRAB_SERVER_PORT" envDefault:"3000"`
	Env        string `env:"CRAB_ENV" envDefault:"development"`
	LogLevel   string `env:"CRAB_LOG_LEVEL" envDefault:"info"`

	// Public base URLs. SiteURL wins when both are set.
	SiteURL   string `env:"CRAB_SITE_URL"`
	ServerURL string `env:"CRAB_SERVER_URL"`

	// Seeded admin account (skipped when the password is empty)
	AdminEmail    string `env:"CRAB_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"CRAB_ADMIN_PASSWORD"`

	// Cache configuration
	RedisURL     string `env:"CRAB_REDIS_URL"`                         // Optional Redis URL for a shared cache
	CachePrefix  string `env:"CRAB_CACHE_PREFIX" envDefault:"crab:"`   // Redis key prefix
	CacheMaxSize int    `env:"CRAB_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Revalidation windows in seconds
	RevalidateGlobals  int `env:"CRAB_REVALIDATE_GLOBALS" envDefault:"300"`
	RevalidateFAQ      int `env:"CRAB_REVALIDATE_FAQ" envDefault:"300"`
	RevalidatePopup    int `env:"CRAB_REVALIDATE_POPUP" envDefault:"300"`
	RevalidateBlog     int `env:"CRAB_REVALIDATE_BLOG" envDefault:"60"`
	RevalidateBlogPost int `env:"CRAB_REVALIDATE_BLOG_POST" envDefault:"60"`

	// Cron specs for maintenance jobs; empty disables a job
	WarmSchedule   string        `env:"CRAB_WARM_SCHEDULE" envDefault:"@every 10m"`
	PruneSchedule  string        `env:"CRAB_PRUNE_SCHEDULE" envDefault:"@daily"`
	EventRetention time.Duration `env:"CRAB_EVENT_RETENTION" envDefault:"720h"`

	// Per-IP contact form rate limit
	ContactRPS   float64 `env:"CRAB_CONTACT_RPS" envDefault:"0.2"`
	ContactBurst int     `env:"CRAB_CONTACT_BURST" envDefault:"5"`

	// Machine translation for the content tooling
	TranslateProvider string        `env:"CRAB_TRANSLATE_PROVIDER" envDefault:"google"`
	TranslateEndpoint string        `env:"CRAB_TRANSLATE_ENDPOINT" envDefault:"https://translate.googleapis.com/translate_a/single"`
	TranslateTimeout  time.Duration `env:"CRAB_TRANSLATE_TIMEOUT" envDefault:"20s"`
	TranslateAttempts int           `env:"CRAB_TRANSLATE_ATTEMPTS" envDefault:"3"`
	OpenAIAPIKey      string        `env:"CRAB_OPENAI_API_KEY"`
	OpenAIModel       string        `env:"CRAB_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CMSConfigured reports whether the content store can be used.
func (c Config) CMSConfigured() bool {
	return strings.TrimSpace(c.DBPath) != ""
}

// Revalidation returns the cache revalidation windows.
func (c Config) Revalidation() cache.Revalidation {
	return cache.Revalidation{
		Globals:  seconds(c.RevalidateGlobals),
		FAQ:      seconds(c.RevalidateFAQ),
		Popup:    seconds(c.RevalidatePopup),
		Blog:     seconds(c.RevalidateBlog),
		BlogPost: seconds(c.RevalidateBlogPost),
	}
}

// CacheConfig returns the content cache backend configuration.
func (c Config) CacheConfig() cache.Config {
	return cache.Config{
		RedisURL:   c.RedisURL,
		Prefix:     c.CachePrefix,
		DefaultTTL: time.Hour,
		MaxSize:    c.CacheMaxSize,
	}
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// MinSecretLength is the minimum required length for the secret.
// The CSRF middleware requires a 32-byte key.
const MinSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("CRAB_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretLength, len(cfg.Secret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.Secret == weak {
			return nil, fmt.Errorf("CRAB_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.Secret) {
		slog.Warn("CRAB_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch cfg.TranslateProvider {
	case "google", "openai":
	default:
		return nil, fmt.Errorf("CRAB_TRANSLATE_PROVIDER must be google or openai, got %q", cfg.TranslateProvider)
	}
	if cfg.TranslateAttempts < 1 {
		cfg.TranslateAttempts = 1
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
