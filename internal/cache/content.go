// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"
)

// tagTTL keeps invalidation marks well past the longest revalidation window.
const tagTTL = 24 * time.Hour

// ContentCache stores built page aggregates in a backend and decides
// freshness from the policy's revalidation window and its tags.
type ContentCache struct {
	backend Cache
	logger  *slog.Logger
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
	builds atomic.Int64
}

// entry is the stored envelope of one computed value.
type entry struct {
	Value      json.RawMessage `json:"v"`
	ComputedAt int64           `json:"at"`
}

// NewContentCache wraps backend.
func NewContentCache(backend Cache, logger *slog.Logger) *ContentCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentCache{backend: backend, logger: logger, now: time.Now}
}

// Load returns the value for policy and parts. A request memo in ctx is
// consulted first; then a stored entry younger than the policy's window and
// not invalidated by any of its tags; otherwise build runs and its result is
// stored. Build errors are returned and never stored.
func Load[T any](ctx context.Context, c *ContentCache, p Policy, parts []string, build func(context.Context) (T, error)) (T, error) {
	key := p.EntryKey(parts...)

	load := func() (any, error) {
		return loadThrough(ctx, c, p, key, build)
	}

	var (
		v   any
		err error
	)
	if memo := MemoFrom(ctx); memo != nil {
		v, err = memo.Do(key, load)
	} else {
		v, err = load()
	}

	if err != nil {
		var zero T
		return zero, err
	}
	value, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache %s: unexpected memo value %T", key, v)
	}
	return value, nil
}

func loadThrough[T any](ctx context.Context, c *ContentCache, p Policy, key string, build func(context.Context) (T, error)) (T, error) {
	if value, ok := readEntry[T](ctx, c, p, key); ok {
		c.hits.Add(1)
		return value, nil
	}
	c.misses.Add(1)

	computedAt := c.now()
	value, err := build(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.builds.Add(1)

	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return value, nil
	}
	data, _ := json.Marshal(entry{Value: raw, ComputedAt: computedAt.UnixNano()})
	if err := c.backend.Set(ctx, key, data, p.Revalidate); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
	return value, nil
}

// readEntry fetches the entry and the marks of its tags in one backend call.
func readEntry[T any](ctx context.Context, c *ContentCache, p Policy, key string) (T, bool) {
	var zero T

	keys := make([]string, 0, 1+len(p.Tags))
	keys = append(keys, key)
	for _, tag := range p.Tags {
		keys = append(keys, tagKey(tag))
	}
	vals, err := c.backend.GetMulti(ctx, keys...)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return zero, false
	}
	if len(vals) == 0 || vals[0] == nil {
		return zero, false
	}

	var e entry
	if err := json.Unmarshal(vals[0], &e); err != nil {
		return zero, false
	}
	if c.now().Sub(time.Unix(0, e.ComputedAt)) >= p.Revalidate {
		return zero, false
	}
	for _, mark := range vals[1:] {
		if at, ok := parseMark(mark); ok && at >= e.ComputedAt {
			return zero, false
		}
	}

	var value T
	if err := json.Unmarshal(e.Value, &value); err != nil {
		return zero, false
	}
	return value, true
}

// Invalidate marks every entry carrying one of tags as stale.
func (c *ContentCache) Invalidate(ctx context.Context, tags ...string) error {
	at := strconv.FormatInt(c.now().UnixNano(), 10)
	var errs []error
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if err := c.backend.Set(ctx, tagKey(tag), []byte(at), tagTTL); err != nil {
			errs = append(errs, fmt.Errorf("invalidating tag %s: %w", tag, err))
			continue
		}
		c.logger.Debug("cache tag invalidated", "tag", tag)
	}
	return errors.Join(errs...)
}

// Stats reports the lookup counters together with what the backend knows
// about its contents. ok is false when the backend keeps no statistics.
func (c *ContentCache) Stats() (Stats, bool) {
	sp, ok := c.backend.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	s := sp.Stats()
	s.Hits, s.Misses, s.Builds = c.hits.Load(), c.misses.Load(), c.builds.Load()
	s.HitRate = hitRate(s.Hits, s.Misses)
	return s, true
}

// Close closes the backend.
func (c *ContentCache) Close() error {
	return c.backend.Close()
}

func parseMark(data []byte) (int64, bool) {
	if data == nil {
		return 0, false
	}
	at, err := strconv.ParseInt(string(data), 10, 64)
	return at, err == nil
}

func tagKey(tag string) string {
	return "tag:" + tag
}
