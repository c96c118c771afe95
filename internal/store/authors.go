// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
)

const authorSelect = `
	SELECT a.id, a.author_name, a.created_at, a.updated_at,
		m.id, m.url, m.filename, m.mime_type, m.width, m.height, m.alt
	FROM authors a
	LEFT JOIN media m ON m.id = a.avatar_id`

// CreateAuthorParams holds the columns of a new author.
type CreateAuthorParams struct {
	AuthorName string
	AvatarID   int64
	CreatedAt  time.Time
}

func (q *Queries) CreateAuthor(ctx context.Context, arg CreateAuthorParams) (cms.Author, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO authors (author_name, avatar_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		arg.AuthorName, nullInt(arg.AvatarID), arg.CreatedAt.UTC(), arg.CreatedAt.UTC())
	if err != nil {
		return cms.Author{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return cms.Author{}, err
	}
	return q.GetAuthor(ctx, id)
}

// GetAuthor returns an author with the avatar expanded.
func (q *Queries) GetAuthor(ctx context.Context, id int64) (cms.Author, error) {
	row := q.db.QueryRowContext(ctx, authorSelect+` WHERE a.id = ?`, id)
	a, err := scanAuthor(row)
	return a, notFound(err)
}

func (q *Queries) ListAuthors(ctx context.Context) ([]cms.Author, error) {
	rows, err := q.db.QueryContext(ctx, authorSelect+` ORDER BY a.author_name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []cms.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (q *Queries) DeleteAuthor(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM authors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanAuthor(row interface{ Scan(...any) error }) (cms.Author, error) {
	var (
		a  cms.Author
		jm joinedMedia
	)
	err := row.Scan(&a.ID, &a.AuthorName, &a.CreatedAt, &a.UpdatedAt,
		&jm.ID, &jm.URL, &jm.Filename, &jm.MimeType, &jm.Width, &jm.Height, &jm.Alt)
	if err != nil {
		return a, err
	}
	a.Avatar = jm.ref()
	return a, nil
}

// joinedMedia scans the nullable media columns of a LEFT JOIN.
type joinedMedia struct {
	ID       sql.NullInt64
	URL      sql.NullString
	Filename sql.NullString
	MimeType sql.NullString
	Width    sql.NullInt64
	Height   sql.NullInt64
	Alt      sql.NullString
}

func (jm joinedMedia) ref() cms.Ref[cms.Media] {
	if !jm.ID.Valid {
		return cms.Ref[cms.Media]{}
	}
	return cms.Resolved(jm.ID.Int64, &cms.Media{
		ID:       jm.ID.Int64,
		URL:      jm.URL.String,
		Filename: jm.Filename.String,
		MimeType: jm.MimeType.String,
		Width:    int(jm.Width.Int64),
		Height:   int(jm.Height.Int64),
		Alt:      jm.Alt.String,
	})
}
