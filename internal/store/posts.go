// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

// postSelect reads a post for one locale with category, author, avatar and
// featured image expanded. Its four leading placeholders are
// (locale, fallback, locale, fallback).
const postSelect = `
	SELECT p.id, p.slug, p.status, p.published_at, p.created_at, p.updated_at,
		COALESCE(NULLIF(l.title, ''), f.title, ''),
		COALESCE(NULLIF(l.excerpt, ''), f.excerpt, ''),
		COALESCE(l.content, f.content),
		p.category_id, c.id,
		COALESCE(NULLIF(cl.name, ''), cf.name),
		COALESCE(NULLIF(cl.slug, ''), cf.slug),
		p.author_id, a.id, a.author_name,
		am.id, am.url, am.filename, am.mime_type, am.width, am.height, am.alt,
		fm.id, fm.url, fm.filename, fm.mime_type, fm.width, fm.height, fm.alt
	FROM blog_posts p
	LEFT JOIN blog_posts_locales l ON l.post_id = p.id AND l.locale = ?
	LEFT JOIN blog_posts_locales f ON f.post_id = p.id AND f.locale = ?
	LEFT JOIN blog_categories c ON c.id = p.category_id
	LEFT JOIN blog_categories_locales cl ON cl.category_id = c.id AND cl.locale = ?
	LEFT JOIN blog_categories_locales cf ON cf.category_id = c.id AND cf.locale = ?
	LEFT JOIN authors a ON a.id = p.author_id
	LEFT JOIN media am ON am.id = a.avatar_id
	LEFT JOIN media fm ON fm.id = p.featured_image_id`

func localeArgs(loc locale.Locale) []any {
	return []any{string(loc), string(locale.Fallback), string(loc), string(locale.Fallback)}
}

// ListPublishedPosts returns published posts newest first. A zero excludeID excludes nothing.
func (q *Queries) ListPublishedPosts(ctx context.Context, loc locale.Locale, limit int, excludeID int64) ([]cms.BlogPost, error) {
	args := append(localeArgs(loc), excludeID, limit)
	return q.queryPosts(ctx, postSelect+`
		WHERE p.status = 'published' AND p.id <> ?
		ORDER BY p.published_at DESC, p.id DESC
		LIMIT ?`, args...)
}

// ListPosts returns posts of any status for the admin API, most recently updated first.
func (q *Queries) ListPosts(ctx context.Context, loc locale.Locale, limit, offset int) ([]cms.BlogPost, error) {
	args := append(localeArgs(loc), limit, offset)
	return q.queryPosts(ctx, postSelect+`
		ORDER BY p.updated_at DESC, p.id DESC
		LIMIT ? OFFSET ?`, args...)
}

// GetPublishedPostBySlug returns cms.ErrNotFound unless a published post has slug.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, loc locale.Locale, slug string) (cms.BlogPost, error) {
	args := append(localeArgs(loc), slug)
	row := q.db.QueryRowContext(ctx, postSelect+`
		WHERE p.slug = ? AND p.status = 'published'
		LIMIT 1`, args...)
	p, err := scanPost(row)
	return p, notFound(err)
}

// GetPost returns a post of any status.
func (q *Queries) GetPost(ctx context.Context, loc locale.Locale, id int64) (cms.BlogPost, error) {
	args := append(localeArgs(loc), id)
	row := q.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, args...)
	p, err := scanPost(row)
	return p, notFound(err)
}

func (q *Queries) queryPosts(ctx context.Context, query string, args ...any) ([]cms.BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []cms.BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanPost(row interface{ Scan(...any) error }) (cms.BlogPost, error) {
	var (
		p            cms.BlogPost
		status       string
		publishedAt  sql.NullTime
		content      sql.NullString
		categoryID   sql.NullInt64
		catJoinID    sql.NullInt64
		catName      sql.NullString
		catSlug      sql.NullString
		authorID     sql.NullInt64
		authorJoinID sql.NullInt64
		authorName   sql.NullString
		avatar       joinedMedia
		featured     joinedMedia
	)

	err := row.Scan(&p.ID, &p.Slug, &status, &publishedAt, &p.CreatedAt, &p.UpdatedAt,
		&p.Title, &p.Excerpt, &content,
		&categoryID, &catJoinID, &catName, &catSlug,
		&authorID, &authorJoinID, &authorName,
		&avatar.ID, &avatar.URL, &avatar.Filename, &avatar.MimeType, &avatar.Width, &avatar.Height, &avatar.Alt,
		&featured.ID, &featured.URL, &featured.Filename, &featured.MimeType, &featured.Width, &featured.Height, &featured.Alt,
	)
	if err != nil {
		return p, err
	}

	p.Status = cms.PostStatus(status)
	if publishedAt.Valid {
		t := publishedAt.Time
		p.PublishedAt = &t
	}
	if content.Valid && content.String != "" {
		if err := json.Unmarshal([]byte(content.String), &p.Content); err != nil {
			return p, fmt.Errorf("decoding content of post %d: %w", p.ID, err)
		}
	}

	if catJoinID.Valid {
		p.Category = cms.Resolved(catJoinID.Int64, &cms.BlogCategory{
			ID:   catJoinID.Int64,
			Name: catName.String,
			Slug: catSlug.String,
		})
	} else {
		p.Category = cms.UnresolvedInt[cms.BlogCategory](categoryID.Int64)
	}

	if authorJoinID.Valid {
		p.Author = cms.Resolved(authorJoinID.Int64, &cms.Author{
			ID:         authorJoinID.Int64,
			AuthorName: authorName.String,
			Avatar:     avatar.ref(),
		})
	} else {
		p.Author = cms.UnresolvedInt[cms.Author](authorID.Int64)
	}

	p.FeaturedImage = featured.ref()
	return p, nil
}

// GetPostInput loads the write model of a post with every locale.
func (q *Queries) GetPostInput(ctx context.Context, id int64) (cms.BlogPostInput, error) {
	var (
		in          cms.BlogPostInput
		status      string
		publishedAt sql.NullTime
		categoryID  sql.NullInt64
		authorID    sql.NullInt64
		imageID     sql.NullInt64
	)
	err := q.db.QueryRowContext(ctx, `
		SELECT slug, status, published_at, category_id, author_id, featured_image_id
		FROM blog_posts WHERE id = ?`, id).
		Scan(&in.Slug, &status, &publishedAt, &categoryID, &authorID, &imageID)
	if err != nil {
		return in, notFound(err)
	}
	in.Status = cms.PostStatus(status)
	if publishedAt.Valid {
		t := publishedAt.Time
		in.PublishedAt = &t
	}
	in.CategoryID, in.AuthorID, in.FeaturedImageID = categoryID.Int64, authorID.Int64, imageID.Int64

	rows, err := q.db.QueryContext(ctx, `
		SELECT locale, title, excerpt, content FROM blog_posts_locales WHERE post_id = ?`, id)
	if err != nil {
		return in, err
	}
	defer func() { _ = rows.Close() }()

	in.Title, in.Excerpt = cms.LocalizedText{}, cms.LocalizedText{}
	in.Content = map[locale.Locale][]cms.Block{}
	for rows.Next() {
		var (
			l              string
			title, excerpt string
			content        sql.NullString
		)
		if err := rows.Scan(&l, &title, &excerpt, &content); err != nil {
			return in, err
		}
		loc := locale.Locale(l)
		in.Title[loc], in.Excerpt[loc] = title, excerpt
		if content.Valid && content.String != "" {
			var blocks []cms.Block
			if err := json.Unmarshal([]byte(content.String), &blocks); err != nil {
				return in, fmt.Errorf("decoding content of post %d: %w", id, err)
			}
			in.Content[loc] = blocks
		}
	}
	return in, rows.Err()
}

// CreatePost inserts a post and its locale rows.
func (q *Queries) CreatePost(ctx context.Context, in cms.BlogPostInput, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO blog_posts (slug, status, published_at, category_id, author_id, featured_image_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Slug, string(in.Status), nullTime(in.PublishedAt),
		nullInt(in.CategoryID), nullInt(in.AuthorID), nullInt(in.FeaturedImageID),
		now.UTC(), now.UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, q.writePostLocales(ctx, id, in)
}

// UpdatePost replaces a post and its locale rows.
func (q *Queries) UpdatePost(ctx context.Context, id int64, in cms.BlogPostInput, now time.Time) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE blog_posts
		SET slug = ?, status = ?, published_at = ?, category_id = ?, author_id = ?, featured_image_id = ?, updated_at = ?
		WHERE id = ?`,
		in.Slug, string(in.Status), nullTime(in.PublishedAt),
		nullInt(in.CategoryID), nullInt(in.AuthorID), nullInt(in.FeaturedImageID),
		now.UTC(), id)
	if err != nil {
		return err
	}
	if err := expectAffected(res); err != nil {
		return err
	}
	return q.writePostLocales(ctx, id, in)
}

func (q *Queries) writePostLocales(ctx context.Context, id int64, in cms.BlogPostInput) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts_locales WHERE post_id = ?`, id); err != nil {
		return err
	}

	for _, l := range locale.Supported {
		blocks := in.Content[l]
		if in.Title.In(l) == "" && in.Excerpt.In(l) == "" && len(blocks) == 0 {
			continue
		}

		var content sql.NullString
		if len(blocks) > 0 {
			data, err := json.Marshal(blocks)
			if err != nil {
				return fmt.Errorf("encoding content: %w", err)
			}
			content = sql.NullString{String: string(data), Valid: true}
		}

		if _, err := q.db.ExecContext(ctx, `
			INSERT INTO blog_posts_locales (post_id, locale, title, excerpt, content)
			VALUES (?, ?, ?, ?, ?)`, id, string(l), in.Title.In(l), in.Excerpt.In(l), content); err != nil {
			return err
		}
	}
	return nil
}

// PostSlugTaken reports whether another post already uses slug.
func (q *Queries) PostSlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	var n int
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id <> ?`, slug, exceptID).Scan(&n)
	return n > 0, err
}

// PostIsPublished reports whether the post exists and is published.
func (q *Queries) PostIsPublished(ctx context.Context, id int64) (bool, error) {
	var status string
	err := q.db.QueryRowContext(ctx, `SELECT status FROM blog_posts WHERE id = ?`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return cms.PostStatus(status) == cms.PostPublished, nil
}

func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// PostEntry is the sitemap view of a published post.
type PostEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// ListPublishedPostEntries returns slug and modification time of every published post.
func (q *Queries) ListPublishedPostEntries(ctx context.Context) ([]PostEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT slug, updated_at FROM blog_posts
		WHERE status = 'published'
		ORDER BY published_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []PostEntry
	for rows.Next() {
		var e PostEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
