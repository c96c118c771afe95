// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestMemoryCache(t *testing.T, maxSize int) (*MemoryCache, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: maxSize})
	c.now = clk.Now
	t.Cleanup(func() { _ = c.Close() })
	return c, clk
}

func TestMemoryCache_GetSet(t *testing.T) {
	c, _ := newTestMemoryCache(t, 0)
	ctx := context.Background()

	if _, err := c.Get(ctx, "home-content:en"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(empty) error = %v, want ErrCacheMiss", err)
	}
	if err := c.Set(ctx, "home-content:en", []byte(`{"hero":"Life at sea"}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "home-content:en")
	if err != nil || string(got) != `{"hero":"Life at sea"}` {
		t.Errorf("Get = %q, %v", got, err)
	}

	if err := c.Set(ctx, "home-content:en", []byte(`{}`), 0); err != nil {
		t.Fatalf("Set(replace): %v", err)
	}
	got, _ = c.Get(ctx, "home-content:en")
	if string(got) != `{}` {
		t.Errorf("Get after replace = %q, want {}", got)
	}
}

func TestMemoryCache_GetMulti(t *testing.T) {
	c, clk := newTestMemoryCache(t, 0)
	ctx := context.Background()

	_ = c.Set(ctx, "faq-items:ru", []byte("entry"), time.Minute)
	_ = c.Set(ctx, "tag:faq", []byte("42"), time.Second)

	vals, err := c.GetMulti(ctx, "faq-items:ru", "tag:blog-posts", "tag:faq")
	if err != nil {
		t.Fatalf("GetMulti: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("GetMulti returned %d values, want 3", len(vals))
	}
	if string(vals[0]) != "entry" || vals[1] != nil || string(vals[2]) != "42" {
		t.Errorf("GetMulti = %q", vals)
	}

	clk.Advance(2 * time.Second)
	vals, _ = c.GetMulti(ctx, "faq-items:ru", "tag:faq")
	if string(vals[0]) != "entry" || vals[1] != nil {
		t.Errorf("GetMulti after mark expiry = %q", vals)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c, clk := newTestMemoryCache(t, 0)
	ctx := context.Background()

	_ = c.Set(ctx, "short", []byte("a"), 10*time.Second)
	_ = c.Set(ctx, "default", []byte("b"), 0)

	clk.Advance(11 * time.Second)
	if _, err := c.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(short) error = %v, want ErrCacheMiss", err)
	}
	if _, err := c.Get(ctx, "default"); err != nil {
		t.Errorf("Get(default) error = %v, want hit within default TTL", err)
	}

	clk.Advance(time.Minute)
	if _, err := c.Get(ctx, "default"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get(default) error = %v, want ErrCacheMiss after default TTL", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want expired entries dropped on read", c.Len())
	}
}

func TestMemoryCache_EvictsSoonestExpiry(t *testing.T) {
	c, _ := newTestMemoryCache(t, 2)
	ctx := context.Background()

	_ = c.Set(ctx, "popup-data", []byte("1"), time.Minute)
	_ = c.Set(ctx, "tag:popup", []byte("2"), 10*time.Second)
	_ = c.Set(ctx, "about-content:en", []byte("3"), time.Minute)

	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	if _, err := c.Get(ctx, "tag:popup"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("entry closest to expiry should be evicted, Get error = %v", err)
	}
	if s := c.Stats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestMemoryCache_EvictsExpiredFirst(t *testing.T) {
	c, clk := newTestMemoryCache(t, 2)
	ctx := context.Background()

	_ = c.Set(ctx, "stale", []byte("1"), time.Second)
	_ = c.Set(ctx, "live", []byte("2"), time.Hour)
	clk.Advance(2 * time.Second)
	_ = c.Set(ctx, "new", []byte("3"), time.Minute)

	if _, err := c.Get(ctx, "live"); err != nil {
		t.Errorf("Get(live) error = %v", err)
	}
	if s := c.Stats(); s.Evictions != 0 {
		t.Errorf("Evictions = %d, want 0 when only expired entries are dropped", s.Evictions)
	}
}

func TestMemoryCache_ReplaceDoesNotEvict(t *testing.T) {
	c, _ := newTestMemoryCache(t, 1)
	ctx := context.Background()

	_ = c.Set(ctx, "k", []byte("first"), 0)
	_ = c.Set(ctx, "k", []byte("second"), 0)

	s := c.Stats()
	if s.Evictions != 0 || s.Items != 1 || s.Size != int64(len("second")) || s.Sets != 2 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	c, _ := newTestMemoryCache(t, 0)
	ctx := context.Background()

	in := []byte("crab")
	_ = c.Set(ctx, "k", in, 0)
	in[0] = 'X'

	out, _ := c.Get(ctx, "k")
	out[1] = 'Y'

	again, _ := c.Get(ctx, "k")
	if string(again) != "crab" {
		t.Errorf("stored value = %q, want crab", again)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c, _ := newTestMemoryCache(t, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("blog-post-by-slug:%d:%d", g, i)
				_ = c.Set(ctx, key, []byte("v"), 0)
				_, _ = c.GetMulti(ctx, key, "tag:blog-posts")
			}
		}(g)
	}
	wg.Wait()

	if n := c.Len(); n > 50 {
		t.Errorf("Len = %d, want at most 50", n)
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{CleanupInterval: time.Millisecond})
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	ctx := context.Background()
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get error = %v, want ErrCacheClosed", err)
	}
	if _, err := c.GetMulti(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("GetMulti error = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set error = %v, want ErrCacheClosed", err)
	}
}
