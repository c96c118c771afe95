// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/util"
)

const maxSlugSuffix = 100

// PostService manages blog posts.
type PostService struct {
	base
}

// NewPostService creates a PostService.
func NewPostService(st *store.Store, inv Invalidator, logger *slog.Logger) *PostService {
	return &PostService{base: newBase(st, inv, logger)}
}

// List returns posts of any status resolved for loc.
func (s *PostService) List(ctx context.Context, loc locale.Locale, limit, offset int) ([]cms.BlogPost, error) {
	return s.store.ListPosts(ctx, loc, limit, offset)
}

// Get returns the write model of a post with every locale.
func (s *PostService) Get(ctx context.Context, id int64) (cms.BlogPostInput, error) {
	return s.store.GetPostInput(ctx, id)
}

// Create applies the post hooks, validates and stores a new post.
func (s *PostService) Create(ctx context.Context, in cms.BlogPostInput) (int64, error) {
	var id int64
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		if err := s.prepare(ctx, q, &in, 0); err != nil {
			return err
		}
		var err error
		id, err = q.CreatePost(ctx, in, s.now())
		return err
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("blog post created", "category", "blog", "post_id", id, "slug", in.Slug)
	s.invalidate(ctx, cache.TagBlogPosts)
	return id, nil
}

// Update replaces a post. A publishedAt missing from in keeps the stored one.
func (s *PostService) Update(ctx context.Context, id int64, in cms.BlogPostInput) error {
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		current, err := q.GetPostInput(ctx, id)
		if err != nil {
			return err
		}
		if in.PublishedAt == nil {
			in.PublishedAt = current.PublishedAt
		}
		if err := s.prepare(ctx, q, &in, id); err != nil {
			return err
		}
		return q.UpdatePost(ctx, id, in, s.now())
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, cache.TagBlogPosts)
	return nil
}

// Delete removes a post unless the landing page features it.
func (s *PostService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(q *store.Queries) error {
		var home cms.HomeGlobal
		if err := q.FindGlobal(ctx, cms.GlobalHome, &home, 0); err != nil {
			return err
		}
		if err := cms.GuardBlogPostDelete(&home, id); err != nil {
			return err
		}
		return q.DeletePost(ctx, id)
	})
	if err != nil {
		var apiErr *cms.APIError
		if errors.As(err, &apiErr) {
			s.logger.Warn("blog post deletion refused", "category", "blog", "post_id", id)
		}
		return err
	}

	s.logger.Info("blog post deleted", "category", "blog", "post_id", id)
	s.invalidate(ctx, cache.TagBlogPosts)
	return nil
}

func (s *PostService) prepare(ctx context.Context, q *store.Queries, in *cms.BlogPostInput, id int64) error {
	cms.ApplyPostDefaults(in, s.now())
	if err := cms.ValidateBlogPost(in); err != nil {
		return cms.AsAPIError(err)
	}
	slug, err := uniqueSlug(ctx, q, in.Slug, id)
	if err != nil {
		return err
	}
	in.Slug = slug
	return nil
}

// uniqueSlug returns slug, or the first free "slug-N" when another post holds it.
func uniqueSlug(ctx context.Context, q *store.Queries, slug string, exceptID int64) (string, error) {
	candidate := slug
	for n := 2; n <= maxSlugSuffix; n++ {
		taken, err := q.PostSlugTaken(ctx, candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = util.WithSuffix(slug, n)
	}
	return "", cms.BadRequest("slug is already taken")
}
