// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStripTrailingSlash(t *testing.T) {
	tests := []struct {
		method       string
		target       string
		wantStatus   int
		wantLocation string
		wantPath     string
	}{
		{http.MethodGet, "/", http.StatusOK, "", "/"},
		{http.MethodGet, "/sitemap.xml", http.StatusOK, "", "/sitemap.xml"},
		{http.MethodGet, "/api/content/blog/", http.StatusMovedPermanently, "/api/content/blog", ""},
		{http.MethodGet, "/api/content/blog/?locale=en", http.StatusMovedPermanently, "/api/content/blog?locale=en", ""},
		{http.MethodPost, "/api/contact-requests/", http.StatusOK, "", "/api/contact-requests"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var gotPath string
			handler := StripTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))

			if rr.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if loc := rr.Header().Get("Location"); loc != tt.wantLocation {
				t.Errorf("Location = %q, want %q", loc, tt.wantLocation)
			}
			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
		})
	}
}

func TestCacheControl(t *testing.T) {
	handler := CacheControl(time.Hour)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))

	want := "public, max-age=3600, stale-while-revalidate=3600"
	if got := rr.Header().Get("Cache-Control"); got != want {
		t.Errorf("Cache-Control = %q, want %q", got, want)
	}
}
