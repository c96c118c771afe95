// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

func newPostService(t *testing.T) (*PostService, *recorder, refs) {
	t.Helper()
	st := testStore(t)
	rec := &recorder{}
	svc := NewPostService(st, rec, testLogger())
	svc.now = func() time.Time { return testNow }
	return svc, rec, seedRefs(t, st)
}

func TestPostService_CreateStampsPublishedAt(t *testing.T) {
	svc, rec, r := newPostService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, postInput(r, "Life on Board", cms.PostPublished))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Slug != "life-on-board" {
		t.Errorf("Slug = %q, want %q", got.Slug, "life-on-board")
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(testNow) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, testNow)
	}
	if !rec.has(cache.TagBlogPosts) {
		t.Errorf("invalidated tags = %v, want %q", rec.tags, cache.TagBlogPosts)
	}
}

func TestPostService_CreateDefaultsToDraft(t *testing.T) {
	svc, _, r := newPostService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, postInput(r, "Draft", ""))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, _ := svc.Get(ctx, id)
	if got.Status != cms.PostDraft {
		t.Errorf("Status = %q, want draft", got.Status)
	}
	if got.PublishedAt != nil {
		t.Errorf("PublishedAt = %v, want nil", got.PublishedAt)
	}
}

func TestPostService_SlugCollisionGetsSuffix(t *testing.T) {
	svc, _, r := newPostService(t)
	ctx := context.Background()

	for i, want := range []string{"king-crab", "king-crab-2", "king-crab-3"} {
		id, err := svc.Create(ctx, postInput(r, "King Crab", cms.PostDraft))
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		got, _ := svc.Get(ctx, id)
		if got.Slug != want {
			t.Errorf("post #%d slug = %q, want %q", i, got.Slug, want)
		}
	}
}

func TestPostService_CyrillicTitleSlug(t *testing.T) {
	svc, _, r := newPostService(t)
	ctx := context.Background()

	in := postInput(r, "", cms.PostDraft)
	in.Title = cms.LocalizedText{locale.RU: "Краб"}
	id, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, _ := svc.Get(ctx, id)
	if got.Slug != "krab" {
		t.Errorf("Slug = %q, want %q", got.Slug, "krab")
	}
}

func TestPostService_CreateRejectsInvalid(t *testing.T) {
	svc, _, r := newPostService(t)

	in := postInput(r, "Video", cms.PostDraft)
	in.Content[locale.EN] = []cms.Block{{BlockType: cms.BlockYouTubeVideo, YouTubeURL: "https://vimeo.com/1"}}
	_, err := svc.Create(context.Background(), in)
	if !isAPIError(err, 400) {
		t.Fatalf("Create = %v, want 400 APIError", err)
	}

	posts, _ := svc.List(context.Background(), locale.EN, 10, 0)
	if len(posts) != 0 {
		t.Errorf("stored %d posts, want 0", len(posts))
	}
}

func TestPostService_UpdateKeepsPublishedAt(t *testing.T) {
	svc, _, r := newPostService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, postInput(r, "Keep", cms.PostPublished))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.now = func() time.Time { return testNow.Add(48 * time.Hour) }
	in := postInput(r, "Keep", cms.PostPublished)
	in.Slug = "keep"
	if err := svc.Update(ctx, id, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := svc.Get(ctx, id)
	if got.PublishedAt == nil || !got.PublishedAt.Equal(testNow) {
		t.Errorf("PublishedAt = %v, want %v", got.PublishedAt, testNow)
	}
}

func TestPostService_UpdateMissing(t *testing.T) {
	svc, _, r := newPostService(t)
	err := svc.Update(context.Background(), 999, postInput(r, "Ghost", cms.PostDraft))
	if !errors.Is(err, cms.ErrNotFound) {
		t.Errorf("Update = %v, want ErrNotFound", err)
	}
}

func TestPostService_DeleteGuardedByHome(t *testing.T) {
	svc, rec, r := newPostService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, postInput(r, "Featured", cms.PostPublished))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	home := &cms.HomeGlobal{}
	home.FromTheFleet.SecondArticle = cms.UnresolvedInt[cms.BlogPost](id)
	if err := svc.store.SaveGlobal(ctx, cms.GlobalHome, home, testNow); err != nil {
		t.Fatalf("SaveGlobal: %v", err)
	}
	rec.tags = nil

	err = svc.Delete(ctx, id)
	var apiErr *cms.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 400 || apiErr.Message != cms.ErrPostInFleetMessage {
		t.Fatalf("Delete = %v, want fleet APIError", err)
	}
	if _, err := svc.Get(ctx, id); err != nil {
		t.Errorf("post should remain after refused delete: %v", err)
	}
	if len(rec.tags) != 0 {
		t.Errorf("refused delete invalidated %v", rec.tags)
	}

	home.FromTheFleet.SecondArticle = cms.Ref[cms.BlogPost]{}
	if err := svc.store.SaveGlobal(ctx, cms.GlobalHome, home, testNow); err != nil {
		t.Fatalf("SaveGlobal: %v", err)
	}
	if err := svc.Delete(ctx, id); err != nil {
		t.Fatalf("Delete after clearing slot: %v", err)
	}
	if _, err := svc.Get(ctx, id); !errors.Is(err, cms.ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}
