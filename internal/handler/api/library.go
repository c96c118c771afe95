// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/handler"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/service"
)

// ListAuthors handles GET /admin/api/authors
func (h *Handler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.svc.Library.ListAuthors(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to list authors.")
		return
	}
	if authors == nil {
		authors = []cms.Author{}
	}
	WriteSuccess(w, authors, nil)
}

// CreateAuthor handles POST /admin/api/authors
func (h *Handler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var in service.AuthorInput
	if !decodeJSON(w, r, &in) {
		return
	}
	author, err := h.svc.Library.CreateAuthor(r.Context(), in)
	if err != nil {
		h.fail(w, err, "Failed to create author.")
		return
	}
	WriteCreated(w, author)
}

// DeleteAuthor handles DELETE /admin/api/authors/{id}
func (h *Handler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "author")
	if !ok {
		return
	}
	if err := h.svc.Library.DeleteAuthor(r.Context(), id); err != nil {
		h.fail(w, err, "Failed to delete author.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /admin/api/categories?locale=
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Library.ListCategories(r.Context(), locale.FromQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, err, "Failed to list categories.")
		return
	}
	if categories == nil {
		categories = []cms.BlogCategory{}
	}
	WriteSuccess(w, categories, nil)
}

// CreateCategory handles POST /admin/api/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in cms.BlogCategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.Library.CreateCategory(r.Context(), in)
	if err != nil {
		h.fail(w, err, "Failed to create category.")
		return
	}
	WriteCreated(w, map[string]int64{"id": id})
}

// DeleteCategory handles DELETE /admin/api/categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "category")
	if !ok {
		return
	}
	if err := h.svc.Library.DeleteCategory(r.Context(), id); err != nil {
		h.fail(w, err, "Failed to delete category.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMedia handles GET /admin/api/media?page=&per_page=
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r, 20, 100)
	media, err := h.svc.Library.ListMedia(r.Context(), page.PerPage, page.Offset())
	if err != nil {
		h.fail(w, err, "Failed to list media.")
		return
	}
	if media == nil {
		media = []cms.Media{}
	}
	WriteSuccess(w, media, &Meta{Page: page.Number, PerPage: page.PerPage})
}

// CreateMedia handles POST /admin/api/media. Files are uploaded elsewhere;
// this registers their public URL and metadata.
func (h *Handler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var in service.MediaInput
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.svc.Library.CreateMedia(r.Context(), in)
	if err != nil {
		h.fail(w, err, "Failed to create media.")
		return
	}
	WriteCreated(w, m)
}

// DeleteMedia handles DELETE /admin/api/media/{id}
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "media")
	if !ok {
		return
	}
	if err := h.svc.Library.DeleteMedia(r.Context(), id); err != nil {
		h.fail(w, err, "Failed to delete media.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
