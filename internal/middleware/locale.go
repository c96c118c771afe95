// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/locale"
)

// Locale stores the normalized ?locale= value of the request in its context.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := locale.FromQuery(r.URL.Query())
		w.Header().Set("Content-Language", string(l))
		next.ServeHTTP(w, r.WithContext(locale.NewContext(r.Context(), l)))
	})
}

// RequestMemo gives every request its own memo so repeated content loads
// within one request are built once.
func RequestMemo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(cache.WithMemo(r.Context())))
	})
}
