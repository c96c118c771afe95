// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the interface strings of the public site.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/language"

	"github.com/crabnorway/crabsite/internal/locale"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds the translations of every site locale. It is read-only
// after construction.
type Catalog struct {
	translations map[locale.Locale]map[string]string
	matcher      language.Matcher
	supported    []locale.Locale
	logger       *slog.Logger
}

// New loads the embedded catalogs of every supported locale.
func New(logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Catalog{
		translations: make(map[locale.Locale]map[string]string),
		logger:       logger,
	}

	// The matcher falls back to its first tag, so the default locale goes first.
	c.supported = []locale.Locale{locale.Default}
	for _, l := range locale.Supported {
		if l != locale.Default {
			c.supported = append(c.supported, l)
		}
	}
	tags := make([]language.Tag, 0, len(c.supported))
	for _, l := range c.supported {
		tags = append(tags, language.MustParse(string(l)))
	}
	c.matcher = language.NewMatcher(tags)

	for _, l := range c.supported {
		if err := c.load(l); err != nil {
			return nil, fmt.Errorf("failed to load language %s: %w", l, err)
		}
		logger.Debug("i18n messages loaded", "language", l, "messages", c.Count(l))
	}

	logger.Info("i18n initialized", "languages", c.supported)
	return c, nil
}

func (c *Catalog) load(l locale.Locale) error {
	path := fmt.Sprintf("locales/%s/messages.json", l)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.translations[l] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[l][msg.ID] = msg.Translation
	}

	c.logger.Debug("loaded translations", "language", l, "count", len(msgFile.Messages))
	return nil
}

// T translates key into l, falling back to the fallback locale and then to
// the key itself. Arguments are applied with fmt.Sprintf.
func (c *Catalog) T(l locale.Locale, key string, args ...any) string {
	translation, ok := c.translations[l][key]
	if !ok && l != locale.Fallback {
		translation, ok = c.translations[locale.Fallback][key]
		if ok {
			c.logger.Debug("missing translation, using fallback", "key", key, "lang", l)
		}
	}
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// Messages returns every message of l grouped by the key prefix before the
// first dot, e.g. {"header": {"about": "About"}}.
func (c *Catalog) Messages(l locale.Locale) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, src := range []locale.Locale{locale.Fallback, l} {
		for key, value := range c.translations[src] {
			group, name, found := strings.Cut(key, ".")
			if !found {
				group, name = "common", key
			}
			if out[group] == nil {
				out[group] = make(map[string]string)
			}
			out[group][name] = value
		}
	}
	return out
}

// Match finds the best supported locale for an Accept-Language header or a
// single language code. Unknown input yields the default locale.
func (c *Catalog) Match(acceptLang string) locale.Locale {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return locale.Default
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.supported) {
		return locale.Default
	}
	return c.supported[idx]
}

// Count returns the number of translations loaded for l.
func (c *Catalog) Count(l locale.Locale) int {
	return len(c.translations[l])
}
