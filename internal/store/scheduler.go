// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// GetSchedulerOverride returns the stored schedule of job name.
func (q *Queries) GetSchedulerOverride(ctx context.Context, name string) (string, error) {
	var schedule string
	err := q.db.QueryRowContext(ctx,
		`SELECT override_schedule FROM scheduler_overrides WHERE name = ?`, name).Scan(&schedule)
	return schedule, notFound(err)
}

func (q *Queries) UpsertSchedulerOverride(ctx context.Context, name, schedule string, now time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO scheduler_overrides (name, override_schedule, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET override_schedule = excluded.override_schedule, updated_at = excluded.updated_at`,
		name, schedule, now.UTC())
	return err
}

func (q *Queries) DeleteSchedulerOverride(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM scheduler_overrides WHERE name = ?`, name)
	return err
}
