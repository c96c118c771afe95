// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"net/url"
	"time"
)

// Backend names reported by NewBackend.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for backend creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	// DefaultTTL is the default TTL for cache entries.
	DefaultTTL time.Duration

	// MaxSize bounds the memory backend (0 = unlimited).
	MaxSize int

	// CleanupInterval is the interval for expired entry cleanup in memory.
	CleanupInterval time.Duration
}

// NewBackend creates the configured backend. If Redis is configured but
// unreachable, it logs a warning and falls back to memory so the site keeps
// serving pages.
func NewBackend(cfg Config) (Cache, string) {
	if cfg.RedisURL != "" {
		rc, err := NewRedisCache(cfg)
		if err == nil {
			slog.Info("content cache backend", "type", BackendRedis, "url", SanitizeRedisURL(cfg.RedisURL))
			return rc, BackendRedis
		}
		slog.Warn("redis unavailable, falling back to memory cache",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	slog.Info("content cache backend", "type", BackendMemory, "max_size", cfg.MaxSize)
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: interval,
	}), BackendMemory
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
