// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/handler"
	"github.com/crabnorway/crabsite/internal/scheduler"
)

// RevalidateRequest lists the cache tags to invalidate.
type RevalidateRequest struct {
	Tags []string `json:"tags"`
}

// Validate requires at least one tag and rejects tags no cache policy uses.
func (req RevalidateRequest) Validate(known func(string) bool) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Tags,
			validation.Required,
			validation.Each(validation.By(func(value any) error {
				if tag, _ := value.(string); !known(tag) {
					return validation.NewError("validation_unknown_tag", "unknown cache tag")
				}
				return nil
			})),
		),
	)
}

// Revalidate handles POST /admin/api/revalidate
func (h *Handler) Revalidate(w http.ResponseWriter, r *http.Request) {
	var req RevalidateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(h.cache.Policies().KnownTag); err != nil {
		h.fail(w, cms.AsAPIError(err), "Invalid revalidate request.")
		return
	}
	if err := h.cache.Invalidate(r.Context(), req.Tags...); err != nil {
		h.logger.Error("revalidation failed", "category", "cache", "tags", req.Tags, "error", err)
		handler.WriteJSONError(w, http.StatusInternalServerError, "Failed to revalidate.")
		return
	}
	h.logger.Info("content revalidated", "category", "cache", "tags", strings.Join(req.Tags, ","), "user", actor(r))
	WriteSuccess(w, map[string]any{"revalidated": req.Tags}, nil)
}

// ListEvents handles GET /admin/api/events?level=&page=&per_page=
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r, 50, 500)
	events, err := h.svc.Events.List(r.Context(), r.URL.Query().Get("level"), page.PerPage, page.Offset())
	if err != nil {
		h.fail(w, err, "Failed to list events.")
		return
	}
	WriteSuccess(w, events, &Meta{Page: page.Number, PerPage: page.PerPage})
}

// CacheStats handles GET /admin/api/cache/stats
func (h *Handler) CacheStats(w http.ResponseWriter, _ *http.Request) {
	if h.stats == nil {
		handler.WriteJSONError(w, http.StatusNotFound, "Cache statistics are not available.")
		return
	}
	stats, ok := h.stats.Stats()
	if !ok {
		handler.WriteJSONError(w, http.StatusNotFound, "Cache statistics are not available.")
		return
	}
	WriteSuccess(w, stats, nil)
}

// ListJobs handles GET /admin/api/jobs
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.jobs == nil {
		WriteSuccess(w, []scheduler.JobInfo{}, nil)
		return
	}
	WriteSuccess(w, h.jobs.List(), nil)
}

// RunJob handles POST /admin/api/jobs/{name}/run. The job runs detached
// from the request so a client disconnect does not cancel it.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	if !h.requireJobs(w) {
		return
	}
	name := chi.URLParam(r, "name")
	if err := h.jobs.TriggerNow(context.WithoutCancel(r.Context()), name); err != nil {
		h.jobError(w, err, name)
		return
	}
	h.logger.Info("job run manually", "category", "system", "job", name, "user", actor(r))
	WriteSuccess(w, map[string]string{"name": name, "status": "completed"}, nil)
}

// UpdateJobSchedule handles PUT /admin/api/jobs/{name}/schedule with
// {"schedule": "@every 5m"}. An empty schedule restores the default.
func (h *Handler) UpdateJobSchedule(w http.ResponseWriter, r *http.Request) {
	if !h.requireJobs(w) {
		return
	}
	var body struct {
		Schedule string `json:"schedule"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	name := chi.URLParam(r, "name")
	schedule := strings.TrimSpace(body.Schedule)
	var err error
	if schedule == "" {
		err = h.jobs.ResetSchedule(r.Context(), name)
	} else {
		err = h.jobs.UpdateSchedule(r.Context(), name, schedule)
	}
	if err != nil {
		h.jobError(w, err, name)
		return
	}
	h.logger.Info("job schedule updated", "category", "system", "job", name, "schedule", schedule, "user", actor(r))

	for _, job := range h.jobs.List() {
		if job.Name == name {
			WriteSuccess(w, job, nil)
			return
		}
	}
	handler.WriteJSONError(w, http.StatusNotFound, "Job not found.")
}

func (h *Handler) requireJobs(w http.ResponseWriter) bool {
	if h.jobs == nil {
		handler.WriteJSONError(w, http.StatusNotFound, "Job not found.")
		return false
	}
	return true
}

func (h *Handler) jobError(w http.ResponseWriter, err error, name string) {
	switch {
	case errors.Is(err, scheduler.ErrJobNotFound):
		handler.WriteJSONError(w, http.StatusNotFound, "Job not found.")
	case errors.Is(err, scheduler.ErrInvalidSchedule):
		handler.WriteJSONError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("job request failed", "category", "system", "job", name, "error", err)
		handler.WriteJSONError(w, http.StatusInternalServerError, "Job failed.")
	}
}
