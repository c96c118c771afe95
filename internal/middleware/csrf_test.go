// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

var testAuthKey = []byte("12345678901234567890123456789012")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultCSRFConfig(t *testing.T) {
	site, _ := url.Parse("https://crabnorway.com")

	prod := DefaultCSRFConfig(testAuthKey, site, false)
	if len(prod.TrustedOrigins) != 1 || prod.TrustedOrigins[0] != "crabnorway.com" {
		t.Errorf("production TrustedOrigins = %v, want [crabnorway.com]", prod.TrustedOrigins)
	}

	dev := DefaultCSRFConfig(testAuthKey, nil, true)
	for _, origin := range dev.TrustedOrigins {
		if strings.HasPrefix(origin, "http") {
			t.Errorf("TrustedOrigin should be host:port, not full URL: %s", origin)
		}
	}
	if len(dev.TrustedOrigins) != 2 {
		t.Errorf("development TrustedOrigins = %v", dev.TrustedOrigins)
	}
}

func TestCSRF(t *testing.T) {
	handler := CSRF(CSRFConfig{AuthKey: testAuthKey}, discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		method  string
		headers map[string]string
		want    int
	}{
		{"safe method", http.MethodGet, map[string]string{"Sec-Fetch-Site": "cross-site"}, http.StatusNoContent},
		{"non-browser client", http.MethodPost, nil, http.StatusNoContent},
		{"same origin", http.MethodPost, map[string]string{"Sec-Fetch-Site": "same-origin"}, http.StatusNoContent},
		{"cross site", http.MethodPost, map[string]string{"Sec-Fetch-Site": "cross-site"}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/admin/api/posts", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tt.want {
				t.Errorf("Status = %d, want %d", rr.Code, tt.want)
			}
			if tt.want == http.StatusForbidden && !strings.Contains(rr.Body.String(), "CSRF") {
				t.Errorf("Body = %q, want CSRF error", rr.Body.String())
			}
		})
	}
}
