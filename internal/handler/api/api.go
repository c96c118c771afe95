// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the admin REST API of the site.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/handler"
	"github.com/crabnorway/crabsite/internal/middleware"
	"github.com/crabnorway/crabsite/internal/scheduler"
	"github.com/crabnorway/crabsite/internal/service"
)

// maxBodyBytes caps admin request bodies.
const maxBodyBytes = 1 << 20

// Services are the domain services behind the admin API.
type Services struct {
	Posts    *service.PostService
	Library  *service.LibraryService
	Globals  *service.GlobalService
	Contacts *service.ContactService
	Events   *service.EventService
}

// Revalidator invalidates cached content by tag.
type Revalidator interface {
	Invalidate(ctx context.Context, tags ...string) error
	Policies() cache.Policies
}

// StatsSource reports cache backend statistics.
type StatsSource interface {
	Stats() (cache.Stats, bool)
}

// Handler holds shared dependencies for all admin API handlers.
type Handler struct {
	svc    Services
	cache  Revalidator
	stats  StatsSource
	jobs   *scheduler.Registry
	logger *slog.Logger
}

// NewHandler creates a new admin API handler. jobs may be nil when the
// scheduler is disabled.
func NewHandler(svc Services, c Revalidator, stats StatsSource, jobs *scheduler.Registry, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, cache: c, stats: stats, jobs: jobs, logger: logger}
}

// Routes returns the admin API router. Authentication and CSRF protection
// are applied by the caller.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.ListPosts)
		r.Post("/", h.CreatePost)
		r.Get("/{id}", h.GetPost)
		r.Put("/{id}", h.UpdatePost)
		r.Delete("/{id}", h.DeletePost)
	})

	r.Get("/authors", h.ListAuthors)
	r.Post("/authors", h.CreateAuthor)
	r.Delete("/authors/{id}", h.DeleteAuthor)

	r.Get("/categories", h.ListCategories)
	r.Post("/categories", h.CreateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)

	r.Get("/media", h.ListMedia)
	r.Post("/media", h.CreateMedia)
	r.Delete("/media/{id}", h.DeleteMedia)

	r.Get("/globals/{slug}", h.GetGlobal)
	r.Put("/globals/{slug}", h.UpdateGlobal)

	r.Route("/contact-requests", func(r chi.Router) {
		r.Get("/", h.ListContactRequests)
		r.Post("/", h.CreateContactRequest)
		r.Get("/{id}", h.GetContactRequest)
		r.Patch("/{id}", h.UpdateContactRequest)
		r.Delete("/{id}", h.DeleteContactRequest)
	})

	r.Post("/revalidate", h.Revalidate)
	r.Get("/events", h.ListEvents)
	r.Get("/cache/stats", h.CacheStats)

	r.Get("/jobs", h.ListJobs)
	r.Post("/jobs/{name}/run", h.RunJob)
	r.Put("/jobs/{name}/schedule", h.UpdateJobSchedule)

	return r
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination metadata.
type Meta struct {
	Page    int `json:"page,omitempty"`
	PerPage int `json:"per_page,omitempty"`
}

// WriteSuccess writes a 200 response wrapping data.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	handler.WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 response wrapping data.
func WriteCreated(w http.ResponseWriter, data any) {
	handler.WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// decodeJSON decodes a size-limited JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handler.WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return false
		}
		handler.WriteJSONError(w, http.StatusBadRequest, handler.MsgInvalidJSON)
		return false
	}
	return true
}

// requireID parses the {id} parameter, answering 400 when it is not a number.
func requireID(w http.ResponseWriter, r *http.Request, entityName string) (int64, bool) {
	id, err := handler.ParseIDParam(r)
	if err != nil || id <= 0 {
		handler.WriteJSONError(w, http.StatusBadRequest, "Invalid "+entityName+" ID.")
		return 0, false
	}
	return id, true
}

// fail maps err to a response.
func (h *Handler) fail(w http.ResponseWriter, err error, internalMsg string) {
	handler.WriteError(w, h.logger, err, internalMsg)
}

// actor names the admin performing the request in audit logs.
func actor(r *http.Request) string {
	if u, ok := middleware.UserFrom(r.Context()); ok {
		return u.Email
	}
	return "anonymous"
}
