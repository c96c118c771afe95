// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection. filippo.io/csrf checks
// Fetch metadata and Origin headers, so no token cookie is involved.
type CSRFConfig struct {
	// AuthKey is a 32-byte key.
	AuthKey []byte

	// TrustedOrigins are host[:port] values allowed to make cross-origin writes.
	TrustedOrigins []string
}

// DefaultCSRFConfig trusts the public site host, and localhost in development.
func DefaultCSRFConfig(authKey []byte, site *url.URL, isDev bool) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	if site != nil && site.Host != "" {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, site.Host)
	}
	if isDev {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, "localhost:3000", "127.0.0.1:3000")
	}
	return cfg
}

// CSRF returns a middleware that rejects cross-site browser writes.
func CSRF(cfg CSRFConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := "unknown"
			if err := csrf.FailureReason(r); err != nil {
				reason = err.Error()
			}
			logger.Warn("CSRF validation failed",
				"category", "system",
				"reason", reason,
				"method", r.Method,
				"path", r.URL.Path,
				"origin", r.Header.Get("Origin"),
				"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
			)
			writeJSONError(w, http.StatusForbidden, "Forbidden - CSRF validation failed")
		})),
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}
