// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crabnorway/crabsite/internal/content"
	"github.com/crabnorway/crabsite/internal/locale"
)

// ContentSource serves the cached view models of the site pages.
type ContentSource interface {
	HomePage(ctx context.Context, l locale.Locale) (content.HomePage, error)
	About(ctx context.Context, l locale.Locale) (content.AboutContent, error)
	Contact(ctx context.Context, l locale.Locale) (content.ContactContent, error)
	FAQ(ctx context.Context, l locale.Locale) ([]content.FAQItem, error)
	Popup(ctx context.Context) (content.PopupData, error)
	BlogPage(ctx context.Context, l locale.Locale) (content.BlogPageData, error)
	BlogPost(ctx context.Context, l locale.Locale, slug string) (*content.BlogPostDetail, error)
	Featured(ctx context.Context, l locale.Locale, excludeID int64) ([]content.FeaturedPost, error)
}

// Messages returns the UI strings of a locale.
type Messages interface {
	Messages(l locale.Locale) map[string]map[string]string
	Match(acceptLang string) locale.Locale
}

// ContentHandler serves page content as JSON. Every route reads the locale
// stored by middleware.Locale.
type ContentHandler struct {
	site     ContentSource
	messages Messages
	logger   *slog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(site ContentSource, messages Messages, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{site: site, messages: messages, logger: logger}
}

// BlogPostResponse is a single post with the teasers shown under it.
type BlogPostResponse struct {
	Post     *content.BlogPostDetail `json:"post"`
	Featured []content.FeaturedPost  `json:"featured"`
}

// serve writes the result of load or a 500 when it fails.
func serve[T any](h *ContentHandler, w http.ResponseWriter, r *http.Request, name string, load func(context.Context, locale.Locale) (T, error)) {
	l := locale.FromContext(r.Context())
	data, err := load(r.Context(), l)
	if err != nil {
		h.logger.Error("failed to load content", "page", name, "locale", l, "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load content.")
		return
	}
	WriteJSON(w, http.StatusOK, data)
}

// Home handles GET /api/content/home.
func (h *ContentHandler) Home(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "home", h.site.HomePage)
}

// About handles GET /api/content/about.
func (h *ContentHandler) About(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "about", h.site.About)
}

// Contact handles GET /api/content/contact.
func (h *ContentHandler) Contact(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "contact", h.site.Contact)
}

// FAQ handles GET /api/content/faq.
func (h *ContentHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "faq", h.site.FAQ)
}

// Popup handles GET /api/content/popup.
func (h *ContentHandler) Popup(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "popup", func(ctx context.Context, _ locale.Locale) (content.PopupData, error) {
		return h.site.Popup(ctx)
	})
}

// Blog handles GET /api/content/blog.
func (h *ContentHandler) Blog(w http.ResponseWriter, r *http.Request) {
	serve(h, w, r, "blog", h.site.BlogPage)
}

// BlogPost handles GET /api/content/blog/{slug}.
func (h *ContentHandler) BlogPost(w http.ResponseWriter, r *http.Request) {
	l := locale.FromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	post, err := h.site.BlogPost(r.Context(), l, slug)
	if err != nil {
		h.logger.Error("failed to load blog post", "category", "blog", "slug", slug, "error", err)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to load content.")
		return
	}
	if post == nil {
		WriteJSONError(w, http.StatusNotFound, "Blog post not found.")
		return
	}

	featured, err := h.site.Featured(r.Context(), l, post.ID)
	if err != nil {
		h.logger.Warn("featured posts unavailable", "category", "blog", "slug", slug, "error", err)
		featured = nil
	}
	if featured == nil {
		featured = []content.FeaturedPost{}
	}

	WriteJSON(w, http.StatusOK, BlogPostResponse{Post: post, Featured: featured})
}

// Messages handles GET /api/messages. Without ?locale= the catalog is
// picked from Accept-Language.
func (h *ContentHandler) Messages(w http.ResponseWriter, r *http.Request) {
	l := locale.FromContext(r.Context())
	if !r.URL.Query().Has("locale") {
		l = h.messages.Match(r.Header.Get("Accept-Language"))
	}
	w.Header().Set("Content-Language", string(l))
	WriteJSON(w, http.StatusOK, h.messages.Messages(l))
}
