// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"net/url"
	"strings"
)

// DisallowPaths are kept out of search indexes.
var DisallowPaths = []string{"/admin", "/api"}

// GenerateRobots returns robots.txt for base.
func GenerateRobots(base *url.URL) string {
	var sb strings.Builder

	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n")
	for _, path := range DisallowPaths {
		sb.WriteString("Disallow: ")
		sb.WriteString(path)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("Host: ")
	sb.WriteString(Origin(base))
	sb.WriteString("\n")
	sb.WriteString("Sitemap: ")
	sb.WriteString(absolute(base, "/sitemap.xml"))
	sb.WriteString("\n")

	return sb.String()
}
