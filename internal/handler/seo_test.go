// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/crabnorway/crabsite/internal/store"
)

type fakePosts struct {
	entries []store.PostEntry
	err     error
}

func (f fakePosts) ListPublishedPostEntries(context.Context) ([]store.PostEntry, error) {
	return f.entries, f.err
}

func TestSitemap(t *testing.T) {
	base, _ := url.Parse("https://crabnorway.com")
	updated := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	h := NewSEOHandler(base, fakePosts{entries: []store.PostEntry{{Slug: "king-crab-season", UpdatedAt: updated}}}, testLogger())

	rr := get(http.HandlerFunc(h.Sitemap), "/sitemap.xml")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rr.Body.String()
	for _, want := range []string{
		"<loc>https://crabnorway.com/</loc>",
		"<loc>https://crabnorway.com/about?locale=en</loc>",
		"<loc>https://crabnorway.com/blog/king-crab-season</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
}

func TestSitemapPostFailureKeepsStaticRoutes(t *testing.T) {
	base, _ := url.Parse("https://crabnorway.com")
	h := NewSEOHandler(base, fakePosts{err: errors.New("no such table: posts")}, testLogger())

	rr := get(http.HandlerFunc(h.Sitemap), "/sitemap.xml")
	if rr.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rr.Code, http.StatusOK)
	}
	if strings.Contains(rr.Body.String(), "/blog/") {
		t.Error("sitemap should not list posts when the post source fails")
	}
}

func TestRobots(t *testing.T) {
	base, _ := url.Parse("https://crabnorway.com")
	rr := get(http.HandlerFunc(NewSEOHandler(base, nil, testLogger()).Robots), "/robots.txt")

	body := rr.Body.String()
	for _, want := range []string{"Disallow: /admin", "Disallow: /api", "Sitemap: https://crabnorway.com/sitemap.xml"} {
		if !strings.Contains(body, want) {
			t.Errorf("robots.txt missing %q", want)
		}
	}
}
