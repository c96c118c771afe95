// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

// maxConcurrent bounds the provider requests of one document.
const maxConcurrent = 4

// SourceText returns the value a leaf is translated from: English, then
// Russian, then the first non-blank value by locale code.
func SourceText(t cms.LocalizedText) string {
	for _, l := range []locale.Locale{Source, locale.RU} {
		if v := t.In(l); strings.TrimSpace(v) != "" {
			return v
		}
	}
	codes := make([]string, 0, len(t))
	for l := range t {
		codes = append(codes, string(l))
	}
	sort.Strings(codes)
	for _, c := range codes {
		if v := t[locale.Locale(c)]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Document translates every localized leaf of doc into to and stores the
// result under that locale. Blank leaves are left alone. It returns the
// number of leaves written; doc is unchanged when an error is returned.
func Document(ctx context.Context, tr Translator, doc cms.Global, to locale.Locale) (int, error) {
	leaves := doc.Texts()
	results := make([]string, len(leaves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, leaf := range leaves {
		src := SourceText(*leaf.Text)
		if src == "" {
			continue
		}
		g.Go(func() error {
			out, err := tr.Translate(gctx, src, to)
			if err != nil {
				return fmt.Errorf("translating %s: %w", leaf.Path, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	n := 0
	for i, leaf := range leaves {
		if results[i] == "" {
			continue
		}
		leaf.Text.Set(to, results[i])
		n++
	}
	return n, nil
}

// Only drops every locale but l from the localized leaves of doc.
func Only(doc cms.Global, l locale.Locale) {
	for _, leaf := range doc.Texts() {
		if leaf.Text.IsEmpty() {
			continue
		}
		*leaf.Text = cms.Text(l, leaf.Text.In(l))
	}
}
