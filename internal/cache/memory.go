// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache is the process-local backend. It holds at most MaxSize
// entries; a full cache drops expired entries first, then the entry closest
// to expiry.
type MemoryCache struct {
	mu         sync.Mutex
	items      map[string]memoryItem
	bytes      int64
	defaultTTL time.Duration
	maxSize    int
	now        func() time.Time

	stop   chan struct{}
	closed atomic.Bool

	sets      atomic.Int64
	evictions atomic.Int64
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures a MemoryCache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration // defaults to one hour
	MaxSize         int           // 0 means unbounded
	CleanupInterval time.Duration // 0 disables the sweeper
}

// NewMemoryCache creates a memory backend. A positive CleanupInterval
// starts a sweeper that runs until Close.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Hour
	}
	c := &MemoryCache{
		items:      make(map[string]memoryItem),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go c.sweep(opts.CleanupInterval)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lookupLocked(key, c.now())
	if !ok {
		return nil, ErrCacheMiss
	}
	return v, nil
}

func (c *MemoryCache) GetMulti(_ context.Context, keys ...string) ([][]byte, error) {
	if c.closed.Load() {
		return nil, ErrCacheClosed
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([][]byte, len(keys))
	for i, key := range keys {
		out[i], _ = c.lookupLocked(key, now)
	}
	return out, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrCacheClosed
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	item := memoryItem{value: append([]byte(nil), value...), expiresAt: c.now().Add(ttl)}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.items[key]; ok {
		c.bytes -= int64(len(old.value))
	} else if c.maxSize > 0 && len(c.items) >= c.maxSize {
		c.evictLocked()
	}
	c.items[key] = item
	c.bytes += int64(len(item.value))
	c.sets.Add(1)
	return nil
}

// Len returns the number of stored entries, expired ones not yet swept included.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close stops the sweeper. Later calls fail with ErrCacheClosed.
func (c *MemoryCache) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		close(c.stop)
	}
	return nil
}

func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	items, size := len(c.items), c.bytes
	c.mu.Unlock()

	return Stats{
		Backend:   BackendMemory,
		Sets:      c.sets.Load(),
		Evictions: c.evictions.Load(),
		Items:     items,
		Size:      size,
	}
}

// lookupLocked returns a copy of a live value, dropping it when expired.
func (c *MemoryCache) lookupLocked(key string, now time.Time) ([]byte, bool) {
	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if now.After(item.expiresAt) {
		c.deleteLocked(key)
		return nil, false
	}
	return append([]byte(nil), item.value...), true
}

func (c *MemoryCache) deleteLocked(key string) {
	if item, ok := c.items[key]; ok {
		c.bytes -= int64(len(item.value))
		delete(c.items, key)
	}
}

// evictLocked frees at least one slot.
func (c *MemoryCache) evictLocked() {
	if c.purgeExpiredLocked() > 0 {
		return
	}
	var (
		victim  string
		soonest time.Time
	)
	for key, item := range c.items {
		if victim == "" || item.expiresAt.Before(soonest) {
			victim, soonest = key, item.expiresAt
		}
	}
	if victim != "" {
		c.deleteLocked(victim)
		c.evictions.Add(1)
	}
}

func (c *MemoryCache) purgeExpiredLocked() int {
	now := c.now()
	n := 0
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			c.deleteLocked(key)
			n++
		}
	}
	return n
}

func (c *MemoryCache) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.mu.Lock()
			c.purgeExpiredLocked()
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

var (
	_ Cache         = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
