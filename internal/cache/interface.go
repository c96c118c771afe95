// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte-level cache backends and the tag-aware
// content cache used by the site's page builders.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by Get when the key is absent or expired.
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheClosed is returned by every operation after Close.
	ErrCacheClosed = errors.New("cache closed")
)

// Cache is the byte store behind the content and translation caches.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns a copy of the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// GetMulti returns the values of keys in order. Absent or expired keys
	// yield a nil slot instead of an error, so an entry and the invalidation
	// marks of its tags are read in one call.
	GetMulti(ctx context.Context, keys ...string) ([][]byte, error)

	// Set replaces the value of key. A ttl <= 0 selects the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Close() error
}

// StatsProvider is implemented by backends that can describe their contents.
type StatsProvider interface {
	Stats() Stats
}

// Stats describes the content cache. Backend, Sets, Evictions, Items and
// Size come from the backend; the lookup counters are kept by ContentCache.
type Stats struct {
	Backend   string  `json:"backend"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Builds    int64   `json:"builds"`
	Sets      int64   `json:"sets"`
	Evictions int64   `json:"evictions"`
	Items     int     `json:"items"`
	HitRate   float64 `json:"hit_rate"`
	Size      int64   `json:"size_bytes,omitempty"`
}

// hitRate returns hits as a percentage of all lookups.
func hitRate(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}
