// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
)

const mediaColumns = `id, url, filename, mime_type, width, height, alt, created_at, updated_at`

// CreateMediaParams holds the columns of a new media document.
type CreateMediaParams struct {
	URL       string
	Filename  string
	MimeType  string
	Width     int
	Height    int
	Alt       string
	CreatedAt time.Time
}

func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (cms.Media, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO media (url, filename, mime_type, width, height, alt, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.URL, arg.Filename, arg.MimeType, arg.Width, arg.Height, arg.Alt,
		arg.CreatedAt.UTC(), arg.CreatedAt.UTC())
	if err != nil {
		return cms.Media{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return cms.Media{}, err
	}
	return q.GetMedia(ctx, id)
}

func (q *Queries) GetMedia(ctx context.Context, id int64) (cms.Media, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	m, err := scanMedia(row)
	return m, notFound(err)
}

func (q *Queries) ListMedia(ctx context.Context, limit, offset int) ([]cms.Media, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+mediaColumns+` FROM media ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []cms.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetMediaByIDs returns the media documents that exist among ids, keyed by id.
func (q *Queries) GetMediaByIDs(ctx context.Context, ids []int64) (map[int64]cms.Media, error) {
	out := make(map[int64]cms.Media, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := q.db.QueryContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		out[m.ID] = m
	}
	return out, rows.Err()
}

func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanMedia(row interface{ Scan(...any) error }) (cms.Media, error) {
	var m cms.Media
	err := row.Scan(&m.ID, &m.URL, &m.Filename, &m.MimeType, &m.Width, &m.Height, &m.Alt, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}
