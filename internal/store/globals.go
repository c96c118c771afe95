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
)

// GetGlobalData returns the stored JSON of a global, or "{}" when it was never saved.
func (q *Queries) GetGlobalData(ctx context.Context, slug string) ([]byte, error) {
	var data string
	err := q.db.QueryRowContext(ctx, `SELECT data FROM globals WHERE slug = ?`, slug).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// PutGlobalData replaces the stored JSON of a global.
func (q *Queries) PutGlobalData(ctx context.Context, slug string, data []byte, now time.Time) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO globals (slug, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		slug, string(data), now.UTC())
	return err
}

// FindGlobal decodes a global into dst. With depth above zero its media
// relations are expanded; references to missing media stay unresolved.
func (q *Queries) FindGlobal(ctx context.Context, slug string, dst cms.Global, depth int) error {
	data, err := q.GetGlobalData(ctx, slug)
	if err != nil {
		return fmt.Errorf("loading global %s: %w", slug, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding global %s: %w", slug, err)
	}
	if depth < 1 {
		return nil
	}

	refs := dst.MediaRefs()
	var ids []int64
	for _, r := range refs {
		if id, ok := r.Int64(); ok {
			ids = append(ids, id)
		}
	}

	media, err := q.GetMediaByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("expanding media of global %s: %w", slug, err)
	}
	for _, r := range refs {
		id, ok := r.Int64()
		if !ok {
			continue
		}
		if m, found := media[id]; found {
			*r = cms.Resolved(id, &m)
		}
	}
	return nil
}

// SaveGlobal encodes and stores a global.
func (q *Queries) SaveGlobal(ctx context.Context, slug string, g cms.Global, now time.Time) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding global %s: %w", slug, err)
	}
	return q.PutGlobalData(ctx, slug, data, now)
}
