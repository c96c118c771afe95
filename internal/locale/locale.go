// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale defines the site locales and normalizes untrusted locale input.
package locale

import (
	"context"
	"net/url"
	"strings"
)

// Locale is a supported site locale code.
type Locale string

const (
	EN Locale = "en"
	RU Locale = "ru"

	// Default is served when no valid locale is requested.
	Default = RU

	// Fallback is read when a localized field is blank in the requested locale.
	Fallback = EN

	// QueryParam is the query parameter carrying the locale.
	QueryParam = "locale"
)

// Supported lists the site locales in display order.
var Supported = []Locale{EN, RU}

// IsSupported reports whether code names a supported locale exactly.
func IsSupported(code string) bool {
	for _, l := range Supported {
		if string(l) == code {
			return true
		}
	}
	return false
}

// Normalize maps raw locale input to a supported locale. Only the first
// value is considered when several are supplied; anything unknown yields Default.
func Normalize(values ...string) Locale {
	if len(values) == 0 {
		return Default
	}
	if IsSupported(values[0]) {
		return Locale(values[0])
	}
	return Default
}

// FromQuery normalizes the locale query parameter of a request URL.
func FromQuery(q url.Values) Locale {
	return Normalize(q[QueryParam]...)
}

// Chain returns the ordered list of locales to read a localized field from.
func (l Locale) Chain(withFallback bool) []Locale {
	if !withFallback || l == Fallback {
		return []Locale{l}
	}
	return []Locale{l, Fallback}
}

// WithLocale appends the locale query parameter to path unless the locale is the default one.
func WithLocale(path string, l Locale) string {
	if l == Default {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + QueryParam + "=" + url.QueryEscape(string(l))
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l Locale) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the locale stored in ctx, or Default.
func FromContext(ctx context.Context) Locale {
	if l, ok := ctx.Value(contextKey{}).(Locale); ok {
		return l
	}
	return Default
}
