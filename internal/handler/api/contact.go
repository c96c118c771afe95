// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/handler"
)

// ListContactRequests handles GET /admin/api/contact-requests?status=&page=&per_page=
func (h *Handler) ListContactRequests(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r, 20, 100)
	status := cms.ContactStatus(r.URL.Query().Get("status"))

	reqs, err := h.svc.Contacts.List(r.Context(), status, page.PerPage, page.Offset())
	if err != nil {
		h.fail(w, err, "Failed to list contact requests.")
		return
	}
	if reqs == nil {
		reqs = []cms.ContactRequest{}
	}
	WriteSuccess(w, reqs, &Meta{Page: page.Number, PerPage: page.PerPage})
}

// CreateContactRequest answers POST /admin/api/contact-requests with 403.
// Requests only come from the public form.
func (h *Handler) CreateContactRequest(w http.ResponseWriter, _ *http.Request) {
	handler.WriteJSONError(w, http.StatusForbidden, "Contact requests are created through the public form only.")
}

// GetContactRequest handles GET /admin/api/contact-requests/{id}
func (h *Handler) GetContactRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "contact request")
	if !ok {
		return
	}
	req, err := h.svc.Contacts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, err, "Failed to load contact request.")
		return
	}
	WriteSuccess(w, req, nil)
}

// UpdateContactRequest handles PATCH /admin/api/contact-requests/{id} with
// {"status": "in_progress"}.
func (h *Handler) UpdateContactRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "contact request")
	if !ok {
		return
	}
	var body struct {
		Status cms.ContactStatus `json:"status"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	req, err := h.svc.Contacts.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		h.fail(w, err, "Failed to update contact request.")
		return
	}
	WriteSuccess(w, req, nil)
}

// DeleteContactRequest handles DELETE /admin/api/contact-requests/{id}
func (h *Handler) DeleteContactRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "contact request")
	if !ok {
		return
	}
	if err := h.svc.Contacts.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "Failed to delete contact request.")
		return
	}
	h.logger.Info("contact request deleted", "category", "contact", "id", id, "user", actor(r))
	w.WriteHeader(http.StatusNoContent)
}
