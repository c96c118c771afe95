// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the public site endpoints: content, contact
// requests, sitemap, robots and health.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/crabnorway/crabsite/internal/cms"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONError writes {"error": message}.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorBody{Error: message})
}

// WriteError maps err to a response. A *cms.APIError keeps its status,
// message and field details, cms.ErrNotFound becomes 404 and anything else
// is logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error, internalMsg string) {
	var apiErr *cms.APIError
	switch {
	case errors.As(err, &apiErr):
		WriteJSON(w, apiErr.Status, ErrorBody{Error: apiErr.Message, Fields: apiErr.Fields})
	case errors.Is(err, cms.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "Not found.")
	default:
		logger.Error(internalMsg, "error", err)
		WriteJSONError(w, http.StatusInternalServerError, internalMsg)
	}
}

// ParseIDParam parses the {id} URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// Page is a limit/offset window read from ?page= and ?per_page=.
type Page struct {
	Number  int
	PerPage int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int { return (p.Number - 1) * p.PerPage }

// ParsePage reads pagination parameters, falling back to page 1 and
// defaultPerPage. per_page above maxPerPage is ignored.
func ParsePage(r *http.Request, defaultPerPage, maxPerPage int) Page {
	p := Page{Number: 1, PerPage: defaultPerPage}
	q := r.URL.Query()
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Number = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 && n <= maxPerPage {
		p.PerPage = n
	}
	return p
}
