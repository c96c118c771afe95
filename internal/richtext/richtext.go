// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package richtext renders blog post content blocks to HTML.
package richtext

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/youtube"
)

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

// Render converts blocks to sanitized HTML. Markdown goes through the UGC
// policy; YouTube blocks become an embed iframe and are dropped when their
// URL is not a recognizable video.
func Render(blocks []cms.Block) (string, error) {
	var out strings.Builder
	for i, b := range blocks {
		switch b.BlockType {
		case cms.BlockMarkdown:
			s, err := Markdown(b.Text)
			if err != nil {
				return "", fmt.Errorf("rendering block %d: %w", i, err)
			}
			out.WriteString(s)
		case cms.BlockYouTubeVideo:
			out.WriteString(youTubeEmbed(b))
		}
	}
	return out.String(), nil
}

// Markdown renders a markdown string to sanitized HTML.
func Markdown(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

func youTubeEmbed(b cms.Block) string {
	src := youtube.EmbedURL(b.YouTubeURL)
	if src == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<figure class="youtube-video">`)
	fmt.Fprintf(&sb, `<iframe src="%s" title="YouTube video" loading="lazy" `+
		`allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" `+
		`allowfullscreen></iframe>`, html.EscapeString(src))
	if c := strings.TrimSpace(b.Caption); c != "" {
		fmt.Fprintf(&sb, `<figcaption>%s</figcaption>`, html.EscapeString(c))
	}
	sb.WriteString(`</figure>`)
	return sb.String()
}
