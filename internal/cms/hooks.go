// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/util"
)

// APIError is a user-facing rejection of an admin operation.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string { return e.Message }

// BadRequest returns a 400 APIError.
func BadRequest(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

// ErrPostInFleetMessage rejects deleting a post that fills a landing page slot.
const ErrPostInFleetMessage = "Cannot delete this blog post because it is used in Home > From The Fleet. Replace it there first."

// ApplyPostDefaults runs before a post is created or updated: it defaults the
// status to draft and stamps publishedAt the first time a published post has none.
// A publishedAt that is already set is never touched.
func ApplyPostDefaults(in *BlogPostInput, now time.Time) {
	if in.Status == "" {
		in.Status = PostDraft
	}
	if in.Status == PostPublished && in.PublishedAt == nil {
		t := now.UTC()
		in.PublishedAt = &t
	}
	if in.Slug == "" {
		in.Slug = PostSlug(in.Title)
	}
}

// PostSlug derives a slug from the title, preferring the default locale.
func PostSlug(title LocalizedText) string {
	candidates := []string{title[locale.Default]}
	for _, l := range locale.Supported {
		candidates = append(candidates, title[l])
	}
	return util.Slugify(First(candidates...))
}

// GuardBlogPostDelete refuses the deletion of a post that is selected in one
// of the landing page "From the fleet" slots.
func GuardBlogPostDelete(home *HomeGlobal, postID int64) error {
	if home == nil {
		return nil
	}
	id := strconv.FormatInt(postID, 10)
	for _, ref := range home.FromTheFleet.Refs() {
		if RelationID(ref) == id {
			return BadRequest(ErrPostInFleetMessage)
		}
	}
	return nil
}
