// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/util"
	"github.com/crabnorway/crabsite/internal/youtube"
)

var (
	errYouTubeRequired = validation.NewError("validation_youtube_required", "YouTube URL is required.")
	errYouTubeInvalid  = validation.NewError("validation_youtube_invalid", "Please enter a valid YouTube URL.")
	errLocalized       = validation.NewError("validation_localized_required", "a value in at least one locale is required")
)

// YouTubeURL validates a required YouTube link field.
var YouTubeURL = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errYouTubeRequired
	}
	if !youtube.IsURL(s) {
		return errYouTubeInvalid
	}
	return nil
})

var localizedRequired = validation.By(func(value any) error {
	t, _ := value.(LocalizedText)
	if t.IsEmpty() {
		return errLocalized
	}
	return nil
})

var slugRule = validation.By(func(value any) error {
	s, _ := value.(string)
	if s != "" && !util.IsValidSlug(s) {
		return validation.NewError("validation_slug", "must contain only lowercase letters, digits and hyphens")
	}
	return nil
})

// ValidateBlocks checks rich content blocks.
func ValidateBlocks(blocks []Block) error {
	errs := validation.Errors{}
	for i, b := range blocks {
		key := strconv.Itoa(i)
		switch b.BlockType {
		case BlockMarkdown:
		case BlockYouTubeVideo:
			if err := validation.Validate(b.YouTubeURL, YouTubeURL); err != nil {
				errs[key] = err
			}
		default:
			errs[key] = validation.NewError("validation_block_type", fmt.Sprintf("unknown block type %q", b.BlockType))
		}
	}
	return errs.Filter()
}

// ValidateBlogPost checks a post after defaults were applied.
func ValidateBlogPost(in *BlogPostInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Slug, validation.Required, slugRule),
		validation.Field(&in.Status, validation.Required, validation.In(PostDraft, PostPublished)),
		validation.Field(&in.CategoryID, validation.Required),
		validation.Field(&in.AuthorID, validation.Required),
		validation.Field(&in.FeaturedImageID, validation.Required),
		validation.Field(&in.Title, localizedRequired),
		validation.Field(&in.Excerpt, localizedRequired),
		validation.Field(&in.Content, validation.By(func(value any) error {
			content, _ := value.(map[locale.Locale][]Block)
			errs := validation.Errors{}
			for l, blocks := range content {
				if !locale.IsSupported(string(l)) {
					errs[string(l)] = validation.NewError("validation_locale", "unsupported locale")
					continue
				}
				if err := ValidateBlocks(blocks); err != nil {
					errs[string(l)] = err
				}
			}
			return errs.Filter()
		})),
	)
}

// ValidateCategory checks a blog category.
func ValidateCategory(in *BlogCategoryInput) error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Name, localizedRequired),
		validation.Field(&in.Slug, localizedRequired, validation.By(func(value any) error {
			for _, s := range value.(LocalizedText) {
				if s != "" && !util.IsValidSlug(s) {
					return validation.NewError("validation_slug", "must contain only lowercase letters, digits and hyphens")
				}
			}
			return nil
		})),
	)
}

// ValidateContactStatus checks a contact request status value.
func ValidateContactStatus(s ContactStatus) error {
	return validation.Validate(s, validation.Required, validation.In(ContactNew, ContactInProgress, ContactResolved))
}

// ValidateGlobal checks the rules of a global document that need no storage lookups.
func ValidateGlobal(g Global) error {
	switch doc := g.(type) {
	case *PopupGlobal:
		return validation.ValidateStruct(doc,
			validation.Field(&doc.YouTubeURL, YouTubeURL),
		)
	case *HomeGlobal:
		if n := len(doc.Pricing.Plans); n > 2 {
			return validation.Errors{"pricing": validation.Errors{
				"plans": validation.NewError("validation_max_rows", "at most 2 plans are allowed"),
			}}
		}
	}
	return nil
}

// AsAPIError converts validation failures into a 400 APIError; other errors pass through.
func AsAPIError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		apiErr := BadRequest(verrs.Error())
		apiErr.Fields = make(map[string]string, len(verrs))
		for field, ferr := range verrs {
			apiErr.Fields[field] = ferr.Error()
		}
		return apiErr
	}
	var verr validation.Error
	if errors.As(err, &verr) {
		return BadRequest(verr.Error())
	}
	return err
}
