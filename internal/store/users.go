// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
)

// CreateUserParams holds the columns of a new user.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (cms.User, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO users (email, name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		arg.Email, arg.Name, arg.PasswordHash, arg.CreatedAt.UTC(), arg.CreatedAt.UTC())
	if err != nil {
		return cms.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return cms.User{}, err
	}
	return q.GetUser(ctx, id)
}

func (q *Queries) GetUser(ctx context.Context, id int64) (cms.User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	return u, notFound(err)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (cms.User, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at, updated_at
		FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	return u, notFound(err)
}

// UpdateUserPassword replaces the password hash of user id.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, hash string, now time.Time) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, now.UTC(), id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func scanUser(row interface{ Scan(...any) error }) (cms.User, error) {
	var u cms.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
