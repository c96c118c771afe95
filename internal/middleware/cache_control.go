// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// CacheControl marks responses as publicly cacheable for maxAge and lets
// shared caches serve them stale while they refetch.
func CacheControl(maxAge time.Duration) func(http.Handler) http.Handler {
	secs := strconv.Itoa(int(maxAge.Seconds()))
	value := "public, max-age=" + secs + ", stale-while-revalidate=" + secs
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
