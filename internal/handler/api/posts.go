// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/handler"
	"github.com/crabnorway/crabsite/internal/locale"
)

// PostResponse is a stored post with every locale.
type PostResponse struct {
	ID int64 `json:"id"`
	cms.BlogPostInput
}

// ListPosts handles GET /admin/api/posts?locale=&page=&per_page=
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r, 20, 100)
	posts, err := h.svc.Posts.List(r.Context(), locale.FromQuery(r.URL.Query()), page.PerPage, page.Offset())
	if err != nil {
		h.fail(w, err, "Failed to list blog posts.")
		return
	}
	if posts == nil {
		posts = []cms.BlogPost{}
	}
	WriteSuccess(w, posts, &Meta{Page: page.Number, PerPage: page.PerPage})
}

// GetPost handles GET /admin/api/posts/{id}
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "blog post")
	if !ok {
		return
	}
	in, err := h.svc.Posts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Failed to load blog post.")
		return
	}
	WriteSuccess(w, PostResponse{ID: id, BlogPostInput: in}, nil)
}

// CreatePost handles POST /admin/api/posts
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in cms.BlogPostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := h.svc.Posts.Create(r.Context(), in)
	if err != nil {
		h.fail(w, err, "Failed to create blog post.")
		return
	}
	stored, err := h.svc.Posts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Failed to load blog post.")
		return
	}
	WriteCreated(w, PostResponse{ID: id, BlogPostInput: stored})
}

// UpdatePost handles PUT /admin/api/posts/{id}
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "blog post")
	if !ok {
		return
	}
	var in cms.BlogPostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := h.svc.Posts.Update(r.Context(), id, in); err != nil {
		h.fail(w, err, "Failed to update blog post.")
		return
	}
	stored, err := h.svc.Posts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Failed to load blog post.")
		return
	}
	WriteSuccess(w, PostResponse{ID: id, BlogPostInput: stored}, nil)
}

// DeletePost handles DELETE /admin/api/posts/{id}. Posts shown on the
// landing page are refused with 400.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "blog post")
	if !ok {
		return
	}
	if err := h.svc.Posts.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "Failed to delete blog post.")
		return
	}
	h.logger.Info("blog post deleted", "category", "content", "id", id, "user", actor(r))
	w.WriteHeader(http.StatusNoContent)
}
