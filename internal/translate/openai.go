// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/crabnorway/crabsite/internal/locale"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

var localeNames = map[locale.Locale]string{
	locale.EN: "English",
	locale.RU: "Russian",
}

// OpenAITranslator translates through the chat completions API.
type OpenAITranslator struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAITranslator creates a translator. Extra request options, such as a
// base URL for tests, are passed through to the client.
func NewOpenAITranslator(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) (*OpenAITranslator, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key is required")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAITranslator{
		client:  openai.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}, nil
}

func (o *OpenAITranslator) Translate(ctx context.Context, text string, to locale.Locale) (string, error) {
	normalized := strings.TrimSpace(text)
	if normalized == "" {
		return text, nil
	}
	target, ok := localeNames[to]
	if !ok {
		return "", fmt.Errorf("unsupported target locale %q", to)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(
				"Translate the user's text from %s to %s. Keep line breaks, URLs and markdown. Reply with the translation only.",
				localeNames[Source], target)),
			openai.UserMessage(normalized),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai translate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}

	if out := strings.TrimSpace(resp.Choices[0].Message.Content); out != "" {
		return out, nil
	}
	return normalized, nil
}
