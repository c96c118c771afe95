// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/store"
)

var fleetSlots = []string{"firstArticle", "secondArticle", "thirdArticle"}

// GlobalService reads and replaces the singleton documents.
type GlobalService struct {
	base
}

// NewGlobalService creates a GlobalService.
func NewGlobalService(st *store.Store, inv Invalidator, logger *slog.Logger) *GlobalService {
	return &GlobalService{base: newBase(st, inv, logger)}
}

// Get returns a global with its media expanded.
func (s *GlobalService) Get(ctx context.Context, slug string) (cms.Global, error) {
	g, err := cms.NewGlobal(slug)
	if err != nil {
		return nil, err
	}
	if err := s.store.FindGlobal(ctx, slug, g, 1); err != nil {
		return nil, err
	}
	return g, nil
}

// Update validates and stores a global from its JSON form.
func (s *GlobalService) Update(ctx context.Context, slug string, data []byte) (cms.Global, error) {
	g, err := cms.NewGlobal(slug)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, cms.BadRequest("Invalid JSON payload.")
	}
	g.AssignIDs()

	if err := cms.ValidateGlobal(g); err != nil {
		return nil, cms.AsAPIError(err)
	}
	if home, ok := g.(*cms.HomeGlobal); ok {
		if err := s.checkFleet(ctx, home); err != nil {
			return nil, err
		}
	}

	if err := s.store.SaveGlobal(ctx, slug, g, s.now()); err != nil {
		return nil, err
	}

	s.logger.Info("global updated", "category", "cache", "global", slug)
	s.invalidate(ctx, cache.TagForGlobal(slug))
	return g, nil
}

// checkFleet rejects landing page slots that point at missing or draft posts.
func (s *GlobalService) checkFleet(ctx context.Context, home *cms.HomeGlobal) error {
	fields := map[string]string{}
	for i, ref := range home.FromTheFleet.Refs() {
		if ref.State() == cms.RefAbsent {
			continue
		}
		id, ok := ref.Int64()
		if !ok {
			fields[fleetSlots[i]] = "must reference a blog post"
			continue
		}
		published, err := s.store.PostIsPublished(ctx, id)
		if err != nil {
			return err
		}
		if !published {
			fields[fleetSlots[i]] = fmt.Sprintf("blog post %d is not published", id)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	apiErr := cms.BadRequest("From The Fleet can only reference published blog posts.")
	apiErr.Fields = fields
	return apiErr
}
