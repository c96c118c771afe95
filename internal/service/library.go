// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
)

// mediaTags covers every cached view that can show an image.
var mediaTags = []string{cache.TagHome, cache.TagAbout, cache.TagPopup, cache.TagBlogPosts}

var mediaURL = validation.By(func(value any) error {
	s, _ := value.(string)
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validation.NewError("validation_media_url", "must be a site path or an http(s) URL")
	}
	return nil
})

// AuthorInput is the write model of an author.
type AuthorInput struct {
	AuthorName string `json:"authorName"`
	AvatarID   int64  `json:"avatar"`
}

// MediaInput describes an uploaded file.
type MediaInput struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Alt      string `json:"alt"`
}

// LibraryService manages the collections posts point at: authors, categories and media.
type LibraryService struct {
	base
}

// NewLibraryService creates a LibraryService.
func NewLibraryService(st *store.Store, inv Invalidator, logger *slog.Logger) *LibraryService {
	return &LibraryService{base: newBase(st, inv, logger)}
}

func (s *LibraryService) ListAuthors(ctx context.Context) ([]cms.Author, error) {
	return s.store.ListAuthors(ctx)
}

func (s *LibraryService) CreateAuthor(ctx context.Context, in AuthorInput) (cms.Author, error) {
	in.AuthorName = strings.TrimSpace(in.AuthorName)
	err := validation.ValidateStruct(&in,
		validation.Field(&in.AuthorName, validation.Required, validation.RuneLength(0, 120)),
	)
	if err != nil {
		return cms.Author{}, cms.AsAPIError(err)
	}
	return s.store.CreateAuthor(ctx, store.CreateAuthorParams{
		AuthorName: in.AuthorName,
		AvatarID:   in.AvatarID,
		CreatedAt:  s.now(),
	})
}

func (s *LibraryService) DeleteAuthor(ctx context.Context, id int64) error {
	if err := s.store.DeleteAuthor(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.TagBlogPosts)
	return nil
}

func (s *LibraryService) ListCategories(ctx context.Context, loc locale.Locale) ([]cms.BlogCategory, error) {
	return s.store.ListCategories(ctx, loc)
}

func (s *LibraryService) CreateCategory(ctx context.Context, in cms.BlogCategoryInput) (int64, error) {
	if err := cms.ValidateCategory(&in); err != nil {
		return 0, cms.AsAPIError(err)
	}
	id, err := s.store.CreateCategory(ctx, in, s.now())
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, cache.TagBlogCategories)
	return id, nil
}

// DeleteCategory removes a category; posts keep existing and show the default label.
func (s *LibraryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, cache.TagBlogCategories, cache.TagBlogPosts)
	return nil
}

func (s *LibraryService) ListMedia(ctx context.Context, limit, offset int) ([]cms.Media, error) {
	return s.store.ListMedia(ctx, limit, offset)
}

func (s *LibraryService) CreateMedia(ctx context.Context, in MediaInput) (cms.Media, error) {
	in.URL = strings.TrimSpace(in.URL)
	err := validation.ValidateStruct(&in,
		validation.Field(&in.URL, validation.Required, mediaURL),
		validation.Field(&in.Width, validation.Min(0)),
		validation.Field(&in.Height, validation.Min(0)),
	)
	if err != nil {
		return cms.Media{}, cms.AsAPIError(err)
	}
	return s.store.CreateMedia(ctx, store.CreateMediaParams{
		URL:       in.URL,
		Filename:  in.Filename,
		MimeType:  in.MimeType,
		Width:     in.Width,
		Height:    in.Height,
		Alt:       in.Alt,
		CreatedAt: s.now(),
	})
}

func (s *LibraryService) DeleteMedia(ctx context.Context, id int64) error {
	if err := s.store.DeleteMedia(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, mediaTags...)
	return nil
}
