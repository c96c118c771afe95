// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"log/slog"

	"github.com/crabnorway/crabsite/internal/locale"
)

// LocalizedText holds one value per locale.
type LocalizedText map[locale.Locale]string

// Text returns a LocalizedText with a single value.
func Text(l locale.Locale, v string) LocalizedText {
	return LocalizedText{l: v}
}

// In returns the value for l without any fallback.
func (t LocalizedText) In(l locale.Locale) string {
	return t[l]
}

// Set stores v for l, allocating the map when needed.
func (t *LocalizedText) Set(l locale.Locale, v string) {
	if *t == nil {
		*t = LocalizedText{}
	}
	(*t)[l] = v
}

// IsEmpty reports whether no locale has a value.
func (t LocalizedText) IsEmpty() bool {
	for _, v := range t {
		if v != "" {
			return false
		}
	}
	return true
}

// FieldText names a localized leaf of a document.
type FieldText struct {
	Path string
	Text *LocalizedText
}

// Resolver reads localized fields along an ordered locale chain and falls
// back to a hardcoded default when every locale in the chain is blank.
type Resolver struct {
	Chain  []locale.Locale
	Logger *slog.Logger
}

// NewResolver returns a resolver for l, including the fallback locale when withFallback is set.
func NewResolver(l locale.Locale, withFallback bool) Resolver {
	return Resolver{Chain: l.Chain(withFallback)}
}

// Text resolves a localized field. field names the value for debug logging.
func (r Resolver) Text(field string, v LocalizedText, def string) string {
	if s := r.Value(v); s != "" {
		return s
	}
	if r.Logger != nil && def != "" {
		r.Logger.Debug("using default value", "field", field, "chain", r.Chain)
	}
	return def
}

// Value returns the first non-empty value along the chain, or "".
func (r Resolver) Value(v LocalizedText) string {
	for _, l := range r.Chain {
		if s := v[l]; s != "" {
			return s
		}
	}
	return ""
}

// First returns the first non-empty value.
func First(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
