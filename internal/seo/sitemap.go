// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

const (
	ChangeFreqDaily  ChangeFreq = "daily"
	ChangeFreqWeekly ChangeFreq = "weekly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// StaticRoutes are the pages listed for every locale.
var StaticRoutes = []string{"/", "/about", "/faq", "/blog", "/contact"}

// PostSource lists the published posts for the sitemap.
type PostSource interface {
	ListPublishedPostEntries(ctx context.Context) ([]store.PostEntry, error)
}

// SitemapBuilder collects sitemap entries for one base URL.
type SitemapBuilder struct {
	base *url.URL
	urls []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(base *url.URL) *SitemapBuilder {
	return &SitemapBuilder{base: base, urls: make([]SitemapURL, 0)}
}

// add appends path in locale l. The default locale gets no query parameter.
func (b *SitemapBuilder) add(path string, l locale.Locale, lastMod time.Time, freq ChangeFreq, priority float64) {
	b.urls = append(b.urls, SitemapURL{
		Loc:        absolute(b.base, locale.WithLocale(path, l)),
		LastMod:    lastMod.UTC().Format(time.RFC3339),
		ChangeFreq: freq,
		Priority:   strconv.FormatFloat(priority, 'f', 1, 64),
	})
}

// AddStatic adds every static route in every locale, modified at now.
func (b *SitemapBuilder) AddStatic(now time.Time) {
	for _, route := range StaticRoutes {
		freq, priority := ChangeFreqWeekly, 0.8
		if route == "/" {
			freq, priority = ChangeFreqDaily, 1
		}
		for _, l := range locale.Supported {
			b.add(route, l, now, freq, priority)
		}
	}
}

// AddPosts adds every post in every locale. Posts without a slug are skipped.
func (b *SitemapBuilder) AddPosts(posts []store.PostEntry) {
	for _, l := range locale.Supported {
		for _, p := range posts {
			if p.Slug == "" {
				continue
			}
			b.add("/blog/"+url.PathEscape(p.Slug), l, p.UpdatedAt, ChangeFreqWeekly, 0.7)
		}
	}
}

// URLs returns the collected entries.
func (b *SitemapBuilder) URLs() []SitemapURL { return b.urls }

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the sitemap for base. Blog posts are listed only
// when posts is non-nil; a failing post source is logged and leaves the
// static routes only.
func GenerateSitemap(ctx context.Context, base *url.URL, posts PostSource, now time.Time, logger *slog.Logger) ([]byte, error) {
	b := NewSitemapBuilder(base)
	b.AddStatic(now)

	if posts != nil {
		entries, err := posts.ListPublishedPostEntries(ctx)
		if err != nil {
			if logger != nil {
				logger.Warn("sitemap post fetch failed, returning static routes only", "category", "sitemap", "error", err)
			}
		} else {
			b.AddPosts(entries)
		}
	}
	return b.Build()
}
