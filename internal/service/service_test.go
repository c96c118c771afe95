// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/testutil"
)

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger { return testutil.TestLoggerSilent() }

func testStore(t *testing.T) *store.Store { return testutil.TestStore(t) }

// recorder collects invalidated tags.
type recorder struct {
	mu   sync.Mutex
	tags []string
	err  error
}

func (r *recorder) Invalidate(_ context.Context, tags ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tags = append(r.tags, tags...)
	return r.err
}

func (r *recorder) has(tag string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.tags, tag)
}

type refs struct {
	media, author, category int64
}

func seedRefs(t *testing.T, s *store.Store) refs {
	t.Helper()
	ctx := context.Background()

	m, err := s.CreateMedia(ctx, store.CreateMediaParams{URL: "/media/boat.jpg", CreatedAt: testNow})
	if err != nil {
		t.Fatalf("CreateMedia: %v", err)
	}
	a, err := s.CreateAuthor(ctx, store.CreateAuthorParams{AuthorName: "Captain", CreatedAt: testNow})
	if err != nil {
		t.Fatalf("CreateAuthor: %v", err)
	}
	c, err := s.CreateCategory(ctx, cms.BlogCategoryInput{
		Name: cms.LocalizedText{locale.EN: "Fleet"},
		Slug: cms.LocalizedText{locale.EN: "fleet"},
	}, testNow)
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	return refs{media: m.ID, author: a.ID, category: c}
}

func postInput(r refs, title string, status cms.PostStatus) cms.BlogPostInput {
	return cms.BlogPostInput{
		Status:          status,
		CategoryID:      r.category,
		AuthorID:        r.author,
		FeaturedImageID: r.media,
		Title:           cms.LocalizedText{locale.EN: title},
		Excerpt:         cms.LocalizedText{locale.EN: "Excerpt"},
		Content: map[locale.Locale][]cms.Block{
			locale.EN: {{BlockType: cms.BlockMarkdown, Text: "Hello"}},
		},
	}
}

func isAPIError(err error, status int) bool {
	var apiErr *cms.APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
