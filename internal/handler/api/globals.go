// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/crabnorway/crabsite/internal/handler"
)

// GetGlobal handles GET /admin/api/globals/{slug}
func (h *Handler) GetGlobal(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Globals.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.fail(w, err, "Failed to load global.")
		return
	}
	WriteSuccess(w, g, nil)
}

// UpdateGlobal handles PUT /admin/api/globals/{slug}. The body replaces the
// whole document.
func (h *Handler) UpdateGlobal(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handler.WriteJSONError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
			return
		}
		handler.WriteJSONError(w, http.StatusBadRequest, handler.MsgInvalidJSON)
		return
	}

	g, err := h.svc.Globals.Update(r.Context(), chi.URLParam(r, "slug"), data)
	if err != nil {
		h.fail(w, err, "Failed to save global.")
		return
	}
	WriteSuccess(w, g, nil)
}
