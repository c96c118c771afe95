// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cms holds the content model of the site: collections, globals,
// relation references, localized values and the rules applied when they change.
package cms

import (
	"errors"
	"time"

	"github.com/crabnorway/crabsite/internal/locale"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Media is an uploaded file.
type Media struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Alt       string    `json:"alt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author signs blog posts.
type Author struct {
	ID         int64      `json:"id"`
	AuthorName string     `json:"authorName"`
	Avatar     Ref[Media] `json:"avatar"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// BlogCategory groups blog posts. Name and Slug are resolved for one locale.
type BlogCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogCategoryInput is the write model of a category.
type BlogCategoryInput struct {
	Name LocalizedText `json:"name"`
	Slug LocalizedText `json:"slug"`
}

// PostStatus is the publication state of a blog post.
type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// Block types of post content.
const (
	BlockMarkdown     = "markdown"
	BlockYouTubeVideo = "youtubeVideo"
)

// Block is one element of rich post content.
type Block struct {
	BlockType  string `json:"blockType"`
	Text       string `json:"text,omitempty"`
	YouTubeURL string `json:"youtubeUrl,omitempty"`
	Caption    string `json:"caption,omitempty"`
}

// BlogPost is a post read for one locale, with relations expanded as far as the query asked.
type BlogPost struct {
	ID            int64             `json:"id"`
	Slug          string            `json:"slug"`
	Status        PostStatus        `json:"status"`
	PublishedAt   *time.Time        `json:"publishedAt"`
	Category      Ref[BlogCategory] `json:"category"`
	Author        Ref[Author]       `json:"author"`
	FeaturedImage Ref[Media]        `json:"featuredImage"`
	Title         string            `json:"title"`
	Excerpt       string            `json:"excerpt"`
	Content       []Block           `json:"content"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// BlogPostInput is the write model of a blog post with every locale present.
type BlogPostInput struct {
	Slug            string                    `json:"slug"`
	Status          PostStatus                `json:"status"`
	PublishedAt     *time.Time                `json:"publishedAt"`
	CategoryID      int64                     `json:"category"`
	AuthorID        int64                     `json:"author"`
	FeaturedImageID int64                     `json:"featuredImage"`
	Title           LocalizedText             `json:"title"`
	Excerpt         LocalizedText             `json:"excerpt"`
	Content         map[locale.Locale][]Block `json:"content"`
}

// ContactStatus is the handling state of a contact request.
type ContactStatus string

const (
	ContactNew        ContactStatus = "new"
	ContactInProgress ContactStatus = "in_progress"
	ContactResolved   ContactStatus = "resolved"
)

// ContactRequest is a visitor enquiry.
type ContactRequest struct {
	ID          int64         `json:"id"`
	Reference   string        `json:"reference"`
	FullName    string        `json:"fullName"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber"`
	Message     string        `json:"message"`
	Locale      locale.Locale `json:"locale"`
	SourcePath  string        `json:"sourcePath"`
	Status      ContactStatus `json:"status"`
	Client      string        `json:"client"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// User is an admin account.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Event is a persisted log record.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}
