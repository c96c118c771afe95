// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/locale"
)

// Site serves view models through the content cache. Each aggregate is keyed
// by its policy and parameters and invalidated by the policy's tags.
type Site struct {
	builder  *Builder
	cache    *cache.ContentCache
	policies cache.Policies
}

// NewSite wraps builder with cache using policies.
func NewSite(builder *Builder, c *cache.ContentCache, policies cache.Policies) *Site {
	return &Site{builder: builder, cache: c, policies: policies}
}

// Policies returns the policy table in use.
func (s *Site) Policies() cache.Policies { return s.policies }

// Invalidate marks every aggregate carrying one of tags as stale.
func (s *Site) Invalidate(ctx context.Context, tags ...string) error {
	return s.cache.Invalidate(ctx, tags...)
}

func (s *Site) Home(ctx context.Context, l locale.Locale) (HomeContent, error) {
	return cache.Load(ctx, s.cache, s.policies.Home, []string{string(l)}, func(ctx context.Context) (HomeContent, error) {
		return s.builder.Home(ctx, l)
	})
}

func (s *Site) About(ctx context.Context, l locale.Locale) (AboutContent, error) {
	return cache.Load(ctx, s.cache, s.policies.About, []string{string(l)}, func(ctx context.Context) (AboutContent, error) {
		return s.builder.About(ctx, l)
	})
}

func (s *Site) Contact(ctx context.Context, l locale.Locale) (ContactContent, error) {
	return cache.Load(ctx, s.cache, s.policies.Contact, []string{string(l)}, func(ctx context.Context) (ContactContent, error) {
		return s.builder.Contact(ctx, l)
	})
}

func (s *Site) FAQ(ctx context.Context, l locale.Locale) ([]FAQItem, error) {
	return cache.Load(ctx, s.cache, s.policies.FAQ, []string{string(l)}, func(ctx context.Context) ([]FAQItem, error) {
		return s.builder.FAQ(ctx, l)
	})
}

func (s *Site) Popup(ctx context.Context) (PopupData, error) {
	return cache.Load(ctx, s.cache, s.policies.Popup, nil, s.builder.Popup)
}

func (s *Site) BlogPage(ctx context.Context, l locale.Locale) (BlogPageData, error) {
	return cache.Load(ctx, s.cache, s.policies.BlogPage, []string{string(l)}, func(ctx context.Context) (BlogPageData, error) {
		return s.builder.BlogPage(ctx, l)
	})
}

// BlogPost returns nil when no published post has slug. Misses are cached too.
func (s *Site) BlogPost(ctx context.Context, l locale.Locale, slug string) (*BlogPostDetail, error) {
	return cache.Load(ctx, s.cache, s.policies.BlogPost, []string{string(l), slug}, func(ctx context.Context) (*BlogPostDetail, error) {
		return s.builder.BlogPost(ctx, l, slug)
	})
}

func (s *Site) Featured(ctx context.Context, l locale.Locale, excludeID int64) ([]FeaturedPost, error) {
	parts := []string{string(l), strconv.FormatInt(excludeID, 10)}
	return cache.Load(ctx, s.cache, s.policies.Featured, parts, func(ctx context.Context) ([]FeaturedPost, error) {
		return s.builder.Featured(ctx, l, excludeID)
	})
}

func (s *Site) Fleet(ctx context.Context, l locale.Locale, ids []int64) ([]BlogCard, error) {
	parts := []string{string(l), joinIDs(ids)}
	return cache.Load(ctx, s.cache, s.policies.FleetArticle, parts, func(ctx context.Context) ([]BlogCard, error) {
		return s.builder.Fleet(ctx, l, ids)
	})
}

// HomePage loads the landing page, its FAQ and the fleet posts it selects.
func (s *Site) HomePage(ctx context.Context, l locale.Locale) (HomePage, error) {
	var page HomePage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Home, err = s.Home(gctx, l)
		return err
	})
	g.Go(func() error {
		var err error
		page.FAQ, err = s.FAQ(gctx, l)
		return err
	})
	if err := g.Wait(); err != nil {
		return HomePage{}, err
	}

	fleet, err := s.Fleet(ctx, l, page.Home.FromTheFleet.ArticleIDs)
	if err != nil {
		return HomePage{}, err
	}
	page.Fleet = fleet
	return page, nil
}

// Warm loads every locale-keyed aggregate so the next visitor hits the cache.
func (s *Site) Warm(ctx context.Context) error {
	if _, err := s.Popup(ctx); err != nil {
		return err
	}
	for _, l := range locale.Supported {
		if _, err := s.HomePage(ctx, l); err != nil {
			return err
		}
		if _, err := s.About(ctx, l); err != nil {
			return err
		}
		if _, err := s.Contact(ctx, l); err != nil {
			return err
		}
		if _, err := s.BlogPage(ctx, l); err != nil {
			return err
		}
	}
	return nil
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return "latest"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
