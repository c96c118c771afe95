// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crabnorway/crabsite/internal/locale"
)

// DefaultGoogleEndpoint is the public Google Translate endpoint.
const DefaultGoogleEndpoint = "https://translate.googleapis.com/translate_a/single"

// maxResponseSize caps the body read from the provider.
const maxResponseSize = 1 << 20

// GoogleOptions configures a GoogleTranslator.
type GoogleOptions struct {
	// Endpoint defaults to DefaultGoogleEndpoint.
	Endpoint string
	// Timeout bounds each attempt. Defaults to 20s.
	Timeout time.Duration
	// Attempts is the number of tries on transport errors. Defaults to 3.
	Attempts int
	// Client defaults to a plain http.Client.
	Client *http.Client
	Logger *slog.Logger
}

// GoogleTranslator calls the unauthenticated Google Translate endpoint.
type GoogleTranslator struct {
	endpoint string
	timeout  time.Duration
	attempts int
	client   *http.Client
	logger   *slog.Logger
}

// NewGoogleTranslator creates a translator with opts applied over defaults.
func NewGoogleTranslator(opts GoogleOptions) *GoogleTranslator {
	t := &GoogleTranslator{
		endpoint: opts.Endpoint,
		timeout:  opts.Timeout,
		attempts: opts.Attempts,
		client:   opts.Client,
		logger:   opts.Logger,
	}
	if t.endpoint == "" {
		t.endpoint = DefaultGoogleEndpoint
	}
	if t.timeout <= 0 {
		t.timeout = 20 * time.Second
	}
	if t.attempts < 1 {
		t.attempts = 3
	}
	if t.client == nil {
		t.client = &http.Client{}
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Translate returns text translated into to. Blank text is returned as is,
// and an empty translation yields the trimmed input. Only transport errors
// are retried; a non-2xx response fails immediately.
func (g *GoogleTranslator) Translate(ctx context.Context, text string, to locale.Locale) (string, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return text, nil
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", string(Source))
	q.Set("tl", string(to))
	q.Set("dt", "t")
	q.Set("q", normalized)
	reqURL := g.endpoint + "?" + q.Encode()

	var (
		body    []byte
		status  int
		lastErr error
	)
	for attempt := 1; attempt <= g.attempts; attempt++ {
		body, status, lastErr = g.fetch(ctx, reqURL)
		if lastErr == nil {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		g.logger.Warn("translation attempt failed", "attempt", attempt, "error", lastErr)
	}
	if lastErr != nil {
		return "", fmt.Errorf("translating into %s: %w", to, lastErr)
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("%w with status %d", ErrStatus, status)
	}

	translated, err := joinSegments(body)
	if err != nil {
		return "", err
	}
	if translated == "" {
		return normalized, nil
	}
	return translated, nil
}

func (g *GoogleTranslator) fetch(ctx context.Context, reqURL string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

// joinSegments concatenates the first element of every segment in payload[0].
// Unexpected shapes yield "".
func joinSegments(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding translation: %w", err)
	}
	if len(payload) == 0 {
		return "", nil
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", nil
	}

	var b strings.Builder
	for _, raw := range segments {
		var segment []any
		if err := json.Unmarshal(raw, &segment); err != nil || len(segment) == 0 {
			continue
		}
		if s, ok := segment[0].(string); ok {
			b.WriteString(s)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
