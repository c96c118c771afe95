// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"time"

	"github.com/crabnorway/crabsite/internal/cms"
)

// SEO is the resolved metadata of a page. OpenGraphImage is absolute when a
// base URL is configured and empty when no image is set.
type SEO struct {
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	OpenGraphImage  string `json:"openGraphImage,omitempty"`
}

type Card struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type RealExperience struct {
	Cards []Card `json:"cards"`
}

type WhoWeAre struct {
	Description  string `json:"description"`
	LearnMoreURL string `json:"learnMoreUrl"`
}

// Plan is one resolved pricing offer.
type Plan struct {
	BadgeLabel  string   `json:"badgeLabel"`
	Features    []string `json:"features"`
	IdealFor    string   `json:"idealFor"`
	Image       string   `json:"image"`
	Price       string   `json:"price"`
	PurchaseURL string   `json:"purchaseUrl"`
}

// HomeContent is the landing page view model.
type HomeContent struct {
	Hero struct {
		Eyebrow        string `json:"eyebrow"`
		Headline       string `json:"headline"`
		SupportingText string `json:"supportingText"`
	} `json:"hero"`
	RealExperience RealExperience `json:"realExperience"`
	Pricing        struct {
		Headline string `json:"headline"`
		Plans    []Plan `json:"plans"`
	} `json:"pricing"`
	FromTheFleet struct {
		ArticleIDs []int64 `json:"articleIds"`
	} `json:"fromTheFleet"`
	WhatYouFind struct {
		CTAURL           string `json:"ctaUrl"`
		FirstColumnText  string `json:"firstColumnText"`
		Headline         string `json:"headline"`
		SecondColumnText string `json:"secondColumnText"`
		SectionTitle     string `json:"sectionTitle"`
	} `json:"whatYouFind"`
	WhoWeAre WhoWeAre `json:"whoWeAre"`
	SEO      SEO      `json:"seo"`
}

type Review struct {
	Location string `json:"location"`
	Name     string `json:"name"`
	Review   string `json:"review"`
	StoryURL string `json:"storyUrl"`
}

// AboutContent is the about page view model.
type AboutContent struct {
	Hero struct {
		HeadlineAfterImage  string `json:"headlineAfterImage"`
		HeadlineBeforeImage string `json:"headlineBeforeImage"`
		HeadlineBottom      string `json:"headlineBottom"`
		Description         string `json:"description"`
		InlineImageURL      string `json:"inlineImageUrl"`
	} `json:"hero"`
	Reviews struct {
		Cards       []Review `json:"cards"`
		Description string   `json:"description"`
		Title       string   `json:"title"`
	} `json:"reviews"`
	RealExperience RealExperience `json:"realExperience"`
	SEO            SEO            `json:"seo"`
	WhoWeAre       WhoWeAre       `json:"whoWeAre"`
}

type SocialLinks struct {
	InstagramURL string `json:"instagramUrl"`
	TelegramURL  string `json:"telegramUrl"`
	YouTubeURL   string `json:"youtubeUrl"`
}

// ContactContent is the contact page view model.
type ContactContent struct {
	Description string      `json:"description"`
	SocialLinks SocialLinks `json:"socialLinks"`
	Title       string      `json:"title"`
}

type FAQItem struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PopupData configures the floating video popup. Empty strings mean unset.
type PopupData struct {
	PosterURL  string `json:"posterUrl"`
	YouTubeURL string `json:"youtubeUrl"`
	EmbedURL   string `json:"embedUrl"`
}

// BlogCard is a post teaser.
type BlogCard struct {
	ID           int64  `json:"id"`
	Category     string `json:"category"`
	CategorySlug string `json:"categorySlug"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Slug         string `json:"slug"`
	Title        string `json:"title"`
}

type CategoryItem struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// BlogPageData is the blog index view model.
type BlogPageData struct {
	Categories []CategoryItem `json:"categories"`
	Posts      []BlogCard     `json:"posts"`
}

// BlogPostDetail is the single post view model.
type BlogPostDetail struct {
	ID            int64       `json:"id"`
	AuthorImage   string      `json:"authorImage"`
	AuthorName    string      `json:"authorName"`
	Category      string      `json:"category"`
	CategorySlug  string      `json:"categorySlug"`
	Content       []cms.Block `json:"content"`
	ContentHTML   string      `json:"contentHtml"`
	Excerpt       string      `json:"excerpt"`
	FeaturedImage string      `json:"featuredImage"`
	PublishedAt   *time.Time  `json:"publishedAt"`
	Slug          string      `json:"slug"`
	Title         string      `json:"title"`
}

// FeaturedPost is a compact teaser shown under a post.
type FeaturedPost struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// HomePage is everything the landing page renders.
type HomePage struct {
	Home  HomeContent `json:"home"`
	FAQ   []FAQItem   `json:"faq"`
	Fleet []BlogCard  `json:"fleet"`
}
