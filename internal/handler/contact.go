// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/service"
)

// MaxContactBodyBytes caps the size of a contact form submission.
const MaxContactBodyBytes = 64 << 10

// MsgInvalidJSON answers bodies that are not a JSON object.
const MsgInvalidJSON = "Invalid JSON payload."

// ContactSubmitter stores visitor contact requests.
type ContactSubmitter interface {
	Submit(ctx context.Context, in service.ContactInput) (cms.ContactRequest, error)
}

// ContactHandler handles the public contact form endpoint.
type ContactHandler struct {
	contacts ContactSubmitter
	logger   *slog.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contacts ContactSubmitter, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, logger: logger}
}

// Create handles POST /api/contact-requests.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxContactBodyBytes)

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, service.MsgContactTooLong)
			return
		}
		WriteJSONError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	in := service.NewContactInput(body)
	in.Referer = r.Header.Get("Referer")
	in.UserAgent = r.UserAgent()

	if _, err := h.contacts.Submit(r.Context(), in); err != nil {
		var apiErr *cms.APIError
		if errors.As(err, &apiErr) {
			WriteJSON(w, apiErr.Status, ErrorBody{Error: apiErr.Message, Fields: apiErr.Fields})
			return
		}
		h.logger.Error("failed to create contact request", "category", "contact", "error", err)
		WriteJSONError(w, http.StatusInternalServerError, service.MsgContactSaveFailed)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
