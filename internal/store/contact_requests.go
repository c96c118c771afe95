// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

const contactColumns = `id, reference, full_name, email, phone_number, message, locale, source_path, status, client, created_at, updated_at`

// CreateContactRequestParams holds the columns of a new contact request.
type CreateContactRequestParams struct {
	Reference   string
	FullName    string
	Email       string
	PhoneNumber string
	Message     string
	Locale      locale.Locale
	SourcePath  string
	Client      string
	CreatedAt   time.Time
}

// CreateContactRequest stores a new request with status "new".
func (q *Queries) CreateContactRequest(ctx context.Context, arg CreateContactRequestParams) (cms.ContactRequest, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO contact_requests (reference, full_name, email, phone_number, message, locale, source_path, status, client, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Reference, arg.FullName, arg.Email, arg.PhoneNumber, arg.Message, string(arg.Locale),
		arg.SourcePath, string(cms.ContactNew), arg.Client, arg.CreatedAt.UTC(), arg.CreatedAt.UTC())
	if err != nil {
		return cms.ContactRequest{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return cms.ContactRequest{}, err
	}
	return q.GetContactRequest(ctx, id)
}

func (q *Queries) GetContactRequest(ctx context.Context, id int64) (cms.ContactRequest, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contact_requests WHERE id = ?`, id)
	c, err := scanContactRequest(row)
	return c, notFound(err)
}

// ListContactRequests returns requests newest first, optionally filtered by status.
func (q *Queries) ListContactRequests(ctx context.Context, status cms.ContactStatus, limit, offset int) ([]cms.ContactRequest, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+contactColumns+` FROM contact_requests
		WHERE (? = '' OR status = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, string(status), string(status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []cms.ContactRequest
	for rows.Next() {
		c, err := scanContactRequest(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (q *Queries) UpdateContactRequestStatus(ctx context.Context, id int64, status cms.ContactStatus, now time.Time) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE contact_requests SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), now.UTC(), id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func (q *Queries) DeleteContactRequest(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM contact_requests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanContactRequest(row interface{ Scan(...any) error }) (cms.ContactRequest, error) {
	var (
		c           cms.ContactRequest
		loc, status string
	)
	err := row.Scan(&c.ID, &c.Reference, &c.FullName, &c.Email, &c.PhoneNumber, &c.Message,
		&loc, &c.SourcePath, &status, &c.Client, &c.CreatedAt, &c.UpdatedAt)
	c.Locale, c.Status = locale.Locale(loc), cms.ContactStatus(status)
	return c, err
}
