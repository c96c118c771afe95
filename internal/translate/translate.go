// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package translate machine-translates English CMS text into other site locales.
package translate

import (
	"context"
	"errors"

	"github.com/crabnorway/crabsite/internal/locale"
)

// Source locale of every translation.
const Source = locale.EN

// Translator translates text from Source into a target locale.
type Translator interface {
	Translate(ctx context.Context, text string, to locale.Locale) (string, error)
}

// ErrStatus is wrapped by errors caused by a non-2xx provider response.
var ErrStatus = errors.New("translation request failed")

// Provider names.
const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"
)
