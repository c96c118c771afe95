// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"errors"
	"strings"
	"testing"

	"github.com/crabnorway/crabsite/internal/locale"
)

func validPost() BlogPostInput {
	return BlogPostInput{
		Slug:            "first-trip",
		Status:          PostDraft,
		CategoryID:      1,
		AuthorID:        1,
		FeaturedImageID: 1,
		Title:           Text(locale.EN, "First trip"),
		Excerpt:         Text(locale.EN, "Excerpt"),
		Content: map[locale.Locale][]Block{
			locale.EN: {{BlockType: BlockMarkdown, Text: "Hello"}},
		},
	}
}

func TestValidateBlogPost(t *testing.T) {
	in := validPost()
	if err := ValidateBlogPost(&in); err != nil {
		t.Fatalf("ValidateBlogPost(valid) = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*BlogPostInput)
		want   string
	}{
		{"missing category", func(p *BlogPostInput) { p.CategoryID = 0 }, "category"},
		{"bad status", func(p *BlogPostInput) { p.Status = "archived" }, "status"},
		{"bad slug", func(p *BlogPostInput) { p.Slug = "Bad Slug" }, "slug"},
		{"empty title", func(p *BlogPostInput) { p.Title = nil }, "title"},
		{"invalid video", func(p *BlogPostInput) {
			p.Content[locale.EN] = append(p.Content[locale.EN], Block{BlockType: BlockYouTubeVideo, YouTubeURL: "https://vimeo.com/1"})
		}, "Please enter a valid YouTube URL."},
		{"empty video", func(p *BlogPostInput) {
			p.Content[locale.EN] = []Block{{BlockType: BlockYouTubeVideo}}
		}, "YouTube URL is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validPost()
			tt.mutate(&in)
			err := ValidateBlogPost(&in)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidateGlobal_Popup(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", ""},
		{"", "YouTube URL is required."},
		{"   ", "YouTube URL is required."},
		{"https://example.com/video", "Please enter a valid YouTube URL."},
	}

	for _, tt := range tests {
		err := ValidateGlobal(&PopupGlobal{YouTubeURL: tt.url})
		if tt.want == "" {
			if err != nil {
				t.Errorf("ValidateGlobal(%q) = %v, want nil", tt.url, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("ValidateGlobal(%q) = %v, want %q", tt.url, err, tt.want)
		}
	}
}

func TestValidateGlobal_PricingRows(t *testing.T) {
	home := &HomeGlobal{}
	home.Pricing.Plans = make([]PricingPlan, 3)
	if err := ValidateGlobal(home); err == nil {
		t.Error("expected error for three pricing plans")
	}
	home.Pricing.Plans = home.Pricing.Plans[:2]
	if err := ValidateGlobal(home); err != nil {
		t.Errorf("ValidateGlobal(two plans) = %v", err)
	}
}

func TestValidateContactStatus(t *testing.T) {
	for _, s := range []ContactStatus{ContactNew, ContactInProgress, ContactResolved} {
		if err := ValidateContactStatus(s); err != nil {
			t.Errorf("ValidateContactStatus(%q) = %v", s, err)
		}
	}
	if err := ValidateContactStatus("closed"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestAsAPIError(t *testing.T) {
	in := validPost()
	in.CategoryID = 0
	err := AsAPIError(ValidateBlogPost(&in))

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("AsAPIError returned %T, want *APIError", err)
	}
	if apiErr.Status != 400 {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if _, ok := apiErr.Fields["category"]; !ok {
		t.Errorf("Fields = %v, want category entry", apiErr.Fields)
	}
	if AsAPIError(nil) != nil {
		t.Error("AsAPIError(nil) should be nil")
	}
}
