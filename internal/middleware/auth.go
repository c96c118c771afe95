// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/crabnorway/crabsite/internal/auth"
	"github.com/crabnorway/crabsite/internal/cms"
)

// UserStore looks up admin accounts.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (cms.User, error)
	UpdateUserPassword(ctx context.Context, id int64, hash string, now time.Time) error
}

type contextKey string

const contextKeyUser contextKey = "user"

// BasicAuth requires HTTP Basic credentials of an admin user and stores the
// user in the request context. Repeated failures lock the account.
func BasicAuth(users UserStore, lockout *Lockout, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok {
				challenge(w)
				return
			}

			if locked, remaining := lockout.Locked(email); locked {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.")
				return
			}

			user, err := users.GetUserByEmail(r.Context(), email)
			if err != nil && !errors.Is(err, cms.ErrNotFound) {
				logger.Error("loading admin user", "error", err)
				writeJSONError(w, http.StatusInternalServerError, "Internal server error.")
				return
			}

			valid := false
			if err == nil {
				valid, err = auth.CheckPassword(password, user.PasswordHash)
				if err != nil {
					logger.Error("checking admin password", "email", email, "error", err)
				}
			}
			if !valid {
				if lockout.Fail(email) {
					logger.Warn("admin account locked after failed logins", "category", "system", "email", email, "ip", clientIP(r))
				}
				challenge(w)
				return
			}

			lockout.Succeed(email)
			if auth.NeedsRehash(user.PasswordHash) {
				rehash(r.Context(), users, user, password, logger)
			}
			ctx := context.WithValue(r.Context(), contextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// rehash upgrades a stored hash made with outdated argon2 parameters.
func rehash(ctx context.Context, users UserStore, user cms.User, password string, logger *slog.Logger) {
	hash, err := auth.HashPassword(password)
	if err == nil {
		err = users.UpdateUserPassword(ctx, user.ID, hash, time.Now())
	}
	if err != nil {
		logger.Warn("upgrading admin password hash", "email", user.Email, "error", err)
		return
	}
	logger.Info("admin password hash upgraded", "category", "system", "email", user.Email)
}

// UserFrom returns the authenticated admin of the request.
func UserFrom(ctx context.Context) (cms.User, bool) {
	u, ok := ctx.Value(contextKeyUser).(cms.User)
	return u, ok
}

func challenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="crabsite admin", charset="UTF-8"`)
	writeJSONError(w, http.StatusUnauthorized, "Authentication required.")
}
