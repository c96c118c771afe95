package seo

import (
	"context"
	"encoding/xml"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/crabnorway/crabsite/internal/store"
)

type postSource struct {
	entries []store.PostEntry
	err     error
}

func (p postSource) ListPublishedPostEntries(context.Context) ([]store.PostEntry, error) {
	return p.entries, p.err
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func parseSitemap(t *testing.T, data []byte) Sitemap {
	t.Helper()
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("sitemap should start with the XML header")
	}
	var s Sitemap
	if err := xml.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal sitemap: %v", err)
	}
	return s
}

func TestGenerateSitemap_StaticRoutes(t *testing.T) {
	base := ResolveSiteBaseURL("https://crabnorway.com")
	data, err := GenerateSitemap(context.Background(), base, nil, testNow, nil)
	if err != nil {
		t.Fatalf("GenerateSitemap() error = %v", err)
	}

	s := parseSitemap(t, data)
	if !strings.Contains(string(data), `xmlns="`+XMLNamespace+`"`) {
		t.Error("sitemap should declare the sitemap namespace")
	}
	if len(s.URLs) != len(StaticRoutes)*2 {
		t.Fatalf("len(URLs) = %d, want %d", len(s.URLs), len(StaticRoutes)*2)
	}

	want := []SitemapURL{
		{Loc: "https://crabnorway.com/?locale=en", ChangeFreq: ChangeFreqDaily, Priority: "1.0"},
		{Loc: "https://crabnorway.com/", ChangeFreq: ChangeFreqDaily, Priority: "1.0"},
		{Loc: "https://crabnorway.com/about?locale=en", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
		{Loc: "https://crabnorway.com/about", ChangeFreq: ChangeFreqWeekly, Priority: "0.8"},
	}
	for i, w := range want {
		got := s.URLs[i]
		if got.Loc != w.Loc || got.ChangeFreq != w.ChangeFreq || got.Priority != w.Priority {
			t.Errorf("URLs[%d] = %+v, want %+v", i, got, w)
		}
		if got.LastMod != testNow.Format(time.RFC3339) {
			t.Errorf("URLs[%d].LastMod = %q", i, got.LastMod)
		}
	}
}

func TestGenerateSitemap_Posts(t *testing.T) {
	updated := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	src := postSource{entries: []store.PostEntry{
		{Slug: "first-trip", UpdatedAt: updated},
		{Slug: "", UpdatedAt: updated},
		{Slug: "краб", UpdatedAt: updated},
	}}

	data, err := GenerateSitemap(context.Background(), ResolveSiteBaseURL("crabnorway.com"), src, testNow, nil)
	if err != nil {
		t.Fatalf("GenerateSitemap() error = %v", err)
	}
	s := parseSitemap(t, data)

	posts := s.URLs[len(StaticRoutes)*2:]
	if len(posts) != 4 {
		t.Fatalf("len(post URLs) = %d, want 4", len(posts))
	}
	wantLocs := []string{
		"https://crabnorway.com/blog/first-trip?locale=en",
		"https://crabnorway.com/blog/%D0%BA%D1%80%D0%B0%D0%B1?locale=en",
		"https://crabnorway.com/blog/first-trip",
		"https://crabnorway.com/blog/%D0%BA%D1%80%D0%B0%D0%B1",
	}
	for i, loc := range wantLocs {
		if posts[i].Loc != loc {
			t.Errorf("posts[%d].Loc = %q, want %q", i, posts[i].Loc, loc)
		}
		if posts[i].Priority != "0.7" || posts[i].ChangeFreq != ChangeFreqWeekly {
			t.Errorf("posts[%d] = %+v, want weekly 0.7", i, posts[i])
		}
		if posts[i].LastMod != updated.Format(time.RFC3339) {
			t.Errorf("posts[%d].LastMod = %q", i, posts[i].LastMod)
		}
	}
}

func TestGenerateSitemap_PostFailureKeepsStatic(t *testing.T) {
	src := postSource{err: errors.New("db locked")}
	data, err := GenerateSitemap(context.Background(), ResolveSiteBaseURL(""), src, testNow, nil)
	if err != nil {
		t.Fatalf("GenerateSitemap() error = %v", err)
	}
	s := parseSitemap(t, data)
	if len(s.URLs) != len(StaticRoutes)*2 {
		t.Errorf("len(URLs) = %d, want static routes only", len(s.URLs))
	}
	if !strings.HasPrefix(s.URLs[0].Loc, DefaultSiteURL+"/") {
		t.Errorf("URLs[0].Loc = %q, want default base", s.URLs[0].Loc)
	}
}
