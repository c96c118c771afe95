// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the sitemap and robots.txt of the public site.
package seo

import (
	"net/url"
	"strings"
)

// DefaultSiteURL is used when no site URL is configured.
const DefaultSiteURL = "http://localhost:3000"

// ResolveSiteBaseURL picks the public base URL from the first non-empty of
// values. A value without a scheme is treated as an https host.
func ResolveSiteBaseURL(values ...string) *url.URL {
	configured := ""
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			configured = v
			break
		}
	}
	if configured == "" {
		u, _ := url.Parse(DefaultSiteURL)
		return u
	}

	if u, err := url.Parse(configured); err == nil && u.Scheme != "" && u.Host != "" {
		return u
	}
	if u, err := url.Parse("https://" + configured); err == nil && u.Host != "" {
		return u
	}
	u, _ := url.Parse(DefaultSiteURL)
	return u
}

// Origin returns scheme://host of u.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// absolute resolves an absolute path with an optional query against base.
func absolute(base *url.URL, path string) string {
	ref := &url.URL{Path: path}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		ref = &url.URL{Path: path[:i], RawQuery: path[i+1:]}
	}
	if p, err := url.PathUnescape(ref.Path); err == nil && p != ref.Path {
		ref.RawPath = ref.Path
		ref.Path = p
	}
	return base.ResolveReference(ref).String()
}
