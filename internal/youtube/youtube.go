// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package youtube recognises YouTube video links and turns them into embed URLs.
package youtube

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const embedBase = "https://www.youtube.com/embed/"

var hosts = map[string]struct{}{
	"youtube.com":          {},
	"m.youtube.com":        {},
	"music.youtube.com":    {},
	"youtube-nocookie.com": {},
	"youtu.be":             {},
}

var (
	videoIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	secondsPattern  = regexp.MustCompile(`^\d+$`)
	durationPattern = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)
)

// Video is a parsed YouTube link. StartSeconds is -1 when the link carries no start offset.
type Video struct {
	ID           string
	StartSeconds int
}

// Parse extracts the video id and optional start offset from value.
// It never panics; ok is false for anything that is not a recognised YouTube video link.
func Parse(value string) (Video, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Video{}, false
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Video{}, false
	}

	id := videoID(u)
	if id == "" {
		return Video{}, false
	}

	return Video{ID: id, StartSeconds: startSeconds(u)}, true
}

// IsURL reports whether value is a recognised YouTube video link.
func IsURL(value string) bool {
	_, ok := Parse(value)
	return ok
}

// EmbedURL returns the canonical embed URL for value, with a start parameter
// when the link has a positive start offset. It returns "" for unrecognised input.
func EmbedURL(value string) string {
	v, ok := Parse(value)
	if !ok {
		return ""
	}
	return v.EmbedURL()
}

// EmbedURL returns the canonical embed URL for v.
func (v Video) EmbedURL() string {
	if v.StartSeconds > 0 {
		return embedBase + v.ID + "?start=" + strconv.Itoa(v.StartSeconds)
	}
	return embedBase + v.ID
}

func normalizeHostname(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}

func normalizeVideoID(value string) string {
	id := strings.TrimSpace(value)
	if !videoIDPattern.MatchString(id) {
		return ""
	}
	return id
}

func videoID(u *url.URL) string {
	host := normalizeHostname(u.Hostname())
	if _, ok := hosts[host]; !ok {
		return ""
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	segment := func(i int) string {
		if i < len(segments) {
			return segments[i]
		}
		return ""
	}

	if host == "youtu.be" {
		return normalizeVideoID(segment(0))
	}

	switch segment(0) {
	case "watch":
		return normalizeVideoID(u.Query().Get("v"))
	case "embed", "shorts", "live", "v":
		return normalizeVideoID(segment(1))
	}
	return ""
}

func startSeconds(u *url.URL) int {
	q := u.Query()
	for _, candidate := range []string{q.Get("start"), q.Get("t")} {
		if n, ok := parseTime(candidate); ok {
			return n
		}
	}

	hash := u.Fragment
	if hash == "" {
		return -1
	}

	hq, _ := url.ParseQuery(hash)
	for _, candidate := range []string{hq.Get("start"), hq.Get("t"), hash} {
		if n, ok := parseTime(candidate); ok {
			return n
		}
	}
	return -1
}

// parseTime accepts plain seconds ("90") or a unit form such as "1h2m3s".
func parseTime(value string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return 0, false
	}

	if secondsPattern.MatchString(s) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	}

	parts := durationPattern.FindStringSubmatch(s)
	if parts == nil || (parts[1] == "" && parts[2] == "" && parts[3] == "") {
		return 0, false
	}

	total := 0
	for i, mult := range []int{3600, 60, 1} {
		if parts[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return 0, false
		}
		total += n * mult
	}
	return total, true
}
