// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the CMS write operations: collection hooks,
// validation, referential checks and cache invalidation.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/crabnorway/crabsite/internal/store"
)

// Invalidator drops cached content by tag.
type Invalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
}

type base struct {
	store  *store.Store
	cache  Invalidator
	logger *slog.Logger
	now    func() time.Time
}

func newBase(st *store.Store, inv Invalidator, logger *slog.Logger) base {
	return base{store: st, cache: inv, logger: logger, now: time.Now}
}

// invalidate never fails the write that triggered it; stale entries expire on their own.
func (b base) invalidate(ctx context.Context, tags ...string) {
	if b.cache == nil || len(tags) == 0 {
		return
	}
	if err := b.cache.Invalidate(ctx, tags...); err != nil {
		b.logger.Warn("cache invalidation failed", "category", "cache", "tags", tags, "error", err)
	}
}
