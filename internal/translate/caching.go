// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"strings"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/locale"
)

// CachingTranslator memoizes translations of another Translator in a cache
// keyed by target locale and trimmed source text.
type CachingTranslator struct {
	next  Translator
	cache cache.Cache
}

// NewCachingTranslator wraps next with c. The caller owns c and closes it.
func NewCachingTranslator(next Translator, c cache.Cache) *CachingTranslator {
	return &CachingTranslator{next: next, cache: c}
}

func (t *CachingTranslator) Translate(ctx context.Context, text string, to locale.Locale) (string, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return text, nil
	}

	key := string(to) + ":" + normalized
	if v, err := t.cache.Get(ctx, key); err == nil && len(v) > 0 {
		return string(v), nil
	}

	out, err := t.next.Translate(ctx, text, to)
	if err != nil {
		return "", err
	}
	_ = t.cache.Set(ctx, key, []byte(out), 0)
	return out, nil
}
