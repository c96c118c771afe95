// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/crabnorway/crabsite/internal/seo"
)

// SEOHandler serves sitemap.xml and robots.txt.
type SEOHandler struct {
	base   *url.URL
	posts  seo.PostSource
	logger *slog.Logger
	now    func() time.Time
}

// NewSEOHandler creates a new SEOHandler. A nil posts source limits the
// sitemap to the static routes.
func NewSEOHandler(base *url.URL, posts seo.PostSource, logger *slog.Logger) *SEOHandler {
	return &SEOHandler{base: base, posts: posts, logger: logger, now: time.Now}
}

// Sitemap handles GET /sitemap.xml. It is rebuilt on every request.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	data, err := seo.GenerateSitemap(r.Context(), h.base, h.posts, h.now(), h.logger)
	if err != nil {
		h.logger.Error("failed to generate sitemap", "category", "sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(seo.GenerateRobots(h.base)))
}
