// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

// CreateCategory inserts a category with one locale row per supported locale that has a value.
func (q *Queries) CreateCategory(ctx context.Context, in cms.BlogCategoryInput, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO blog_categories (created_at, updated_at) VALUES (?, ?)`, now.UTC(), now.UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, l := range locale.Supported {
		if in.Name.In(l) == "" && in.Slug.In(l) == "" {
			continue
		}
		if _, err := q.db.ExecContext(ctx, `
			INSERT INTO blog_categories_locales (category_id, locale, name, slug)
			VALUES (?, ?, ?, ?)`, id, string(l), in.Name.In(l), in.Slug.In(l)); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// ListCategories returns all categories resolved for loc, falling back to the
// fallback locale per field, sorted by the resolved slug.
func (q *Queries) ListCategories(ctx context.Context, loc locale.Locale) ([]cms.BlogCategory, error) {
	fb := string(locale.Fallback)
	rows, err := q.db.QueryContext(ctx, `
		SELECT c.id, c.created_at, c.updated_at,
			COALESCE(NULLIF(l.name, ''), f.name, '') AS name,
			COALESCE(NULLIF(l.slug, ''), f.slug, '') AS slug
		FROM blog_categories c
		LEFT JOIN blog_categories_locales l ON l.category_id = c.id AND l.locale = ?
		LEFT JOIN blog_categories_locales f ON f.category_id = c.id AND f.locale = ?
		ORDER BY slug
		LIMIT 100`, string(loc), fb)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []cms.BlogCategory
	for rows.Next() {
		var c cms.BlogCategory
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
