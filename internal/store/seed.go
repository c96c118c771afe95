// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crabnorway/crabsite/internal/auth"
)

// DefaultAdminName is the display name of the seeded admin.
const DefaultAdminName = "Administrator"

// SeedOptions configures the initial admin account.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// Seed creates the admin user when the database has none.
func Seed(ctx context.Context, q *Queries, opts SeedOptions) error {
	n, err := q.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting users: %w", err)
	}
	if n > 0 {
		slog.Info("admin user already exists, skipping seed", "users", n)
		return nil
	}

	if opts.AdminPassword == "" {
		slog.Warn("no admin password configured, admin API stays locked", "email", opts.AdminEmail)
		return nil
	}

	passwordHash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        opts.AdminEmail,
		Name:         DefaultAdminName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}
