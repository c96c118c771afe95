// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content builds the view models the site renders from CMS documents.
// Builders fill every field from the requested locale, then the fallback
// locale, then a hardcoded default.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/youtube"
)

// Source is the read side of the CMS used by the builders.
type Source interface {
	FindGlobal(ctx context.Context, slug string, dst cms.Global, depth int) error
	ListPublishedPosts(ctx context.Context, loc locale.Locale, limit int, excludeID int64) ([]cms.BlogPost, error)
	GetPublishedPostBySlug(ctx context.Context, loc locale.Locale, slug string) (cms.BlogPost, error)
	GetPost(ctx context.Context, loc locale.Locale, id int64) (cms.BlogPost, error)
	ListCategories(ctx context.Context, loc locale.Locale) ([]cms.BlogCategory, error)
	GetAuthor(ctx context.Context, id int64) (cms.Author, error)
}

// Builder turns CMS documents into view models.
type Builder struct {
	src     Source
	baseURL string
	logger  *slog.Logger
}

// NewBuilder creates a builder. baseURL makes Open Graph images absolute;
// when empty they are returned as stored.
func NewBuilder(src Source, baseURL string, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{src: src, baseURL: baseURL, logger: logger}
}

func (b *Builder) resolver(l locale.Locale, withFallback bool) cms.Resolver {
	r := cms.NewResolver(l, withFallback)
	r.Logger = b.logger
	return r
}

func (b *Builder) seo(r cms.Resolver, s cms.SEO, def SEO) SEO {
	return SEO{
		MetaTitle:       r.Text("seo.metaTitle", s.MetaTitle, def.MetaTitle),
		MetaDescription: r.Text("seo.metaDescription", s.MetaDescription, def.MetaDescription),
		OpenGraphImage:  cms.AbsoluteURL(b.baseURL, cms.MediaURL(s.OpenGraphImage, "")),
	}
}

func experienceCards(r cms.Resolver, cards []cms.ExperienceCard) []Card {
	var out []Card
	for _, c := range cards {
		title, desc := r.Value(c.Title), r.Value(c.Description)
		if title != "" && desc != "" {
			out = append(out, Card{Title: title, Description: desc})
		}
	}
	if len(out) == 0 {
		return slices.Clone(defaultExperienceCards)
	}
	return out
}

func whoWeAre(r cms.Resolver, w cms.WhoWeAre) WhoWeAre {
	return WhoWeAre{
		Description:  r.Text("whoWeAre.description", w.Description, defaultWhoWeAre.Description),
		LearnMoreURL: cms.First(w.LearnMoreURL, defaultWhoWeAre.LearnMoreURL),
	}
}

// Home builds the landing page.
func (b *Builder) Home(ctx context.Context, l locale.Locale) (HomeContent, error) {
	var g cms.HomeGlobal
	if err := b.src.FindGlobal(ctx, cms.GlobalHome, &g, 1); err != nil {
		return HomeContent{}, fmt.Errorf("loading home: %w", err)
	}

	r := b.resolver(l, true)
	def := defaultHome()
	h := def

	h.Hero.Eyebrow = r.Text("hero.eyebrow", g.Hero.Eyebrow, def.Hero.Eyebrow)
	h.Hero.Headline = r.Text("hero.headline", g.Hero.Headline, def.Hero.Headline)
	h.Hero.SupportingText = r.Text("hero.supportingText", g.Hero.SupportingText, def.Hero.SupportingText)
	h.RealExperience.Cards = experienceCards(r, g.RealExperience.Cards)

	h.Pricing.Headline = r.Text("pricing.headline", g.Pricing.Headline, def.Pricing.Headline)
	if plans := pricingPlans(r, g.Pricing.Plans); len(plans) == len(defaultPlans) {
		h.Pricing.Plans = plans
	}

	h.FromTheFleet.ArticleIDs = fleetIDs(g.FromTheFleet)

	wyf := g.WhatYouFind
	h.WhatYouFind.CTAURL = cms.First(wyf.CTAURL, def.WhatYouFind.CTAURL)
	h.WhatYouFind.FirstColumnText = r.Text("whatYouFind.firstColumnText", wyf.FirstColumnText, def.WhatYouFind.FirstColumnText)
	h.WhatYouFind.Headline = r.Text("whatYouFind.headline", wyf.Headline, def.WhatYouFind.Headline)
	h.WhatYouFind.SecondColumnText = r.Text("whatYouFind.secondColumnText", wyf.SecondColumnText, def.WhatYouFind.SecondColumnText)
	h.WhatYouFind.SectionTitle = r.Text("whatYouFind.sectionTitle", wyf.SectionTitle, def.WhatYouFind.SectionTitle)

	h.WhoWeAre = whoWeAre(r, g.WhoWeAre)
	h.SEO = b.seo(r, g.SEO, def.SEO)
	return h, nil
}

// pricingPlans resolves each row and keeps only complete plans. A row missing
// its image or purchase URL borrows the default plan at the same position.
func pricingPlans(r cms.Resolver, rows []cms.PricingPlan) []Plan {
	var out []Plan
	for i, row := range rows {
		var features []string
		for _, f := range row.Features {
			if s := r.Value(f.Text); s != "" {
				features = append(features, s)
			}
		}

		var defImage, defPurchase string
		if i < len(defaultPlans) {
			defImage, defPurchase = defaultPlans[i].Image, defaultPlans[i].PurchaseURL
		}

		p := Plan{
			BadgeLabel:  r.Value(row.BadgeLabel),
			Features:    features,
			IdealFor:    r.Value(row.IdealFor),
			Image:       cms.First(cms.MediaURL(row.Image, ""), defImage, defaultPlans[0].Image),
			Price:       row.Price,
			PurchaseURL: cms.First(row.PurchaseURL, defPurchase, "#"),
		}
		if p.BadgeLabel != "" && p.Price != "" && p.IdealFor != "" && len(p.Features) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// fleetIDs returns the configured article ids only when all three slots hold a numeric id.
func fleetIDs(f cms.FromTheFleet) []int64 {
	ids := make([]int64, 0, 3)
	for _, ref := range f.Refs() {
		if id, ok := ref.Int64(); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) != 3 {
		return []int64{}
	}
	return ids
}

// About builds the about page.
func (b *Builder) About(ctx context.Context, l locale.Locale) (AboutContent, error) {
	var g cms.AboutGlobal
	if err := b.src.FindGlobal(ctx, cms.GlobalAbout, &g, 1); err != nil {
		return AboutContent{}, fmt.Errorf("loading about: %w", err)
	}

	r := b.resolver(l, true)
	def := defaultAbout()
	a := def

	a.Hero.HeadlineAfterImage = r.Text("hero.headlineAfterImage", g.Hero.HeadlineAfterImage, def.Hero.HeadlineAfterImage)
	a.Hero.HeadlineBeforeImage = r.Text("hero.headlineBeforeImage", g.Hero.HeadlineBeforeImage, def.Hero.HeadlineBeforeImage)
	a.Hero.HeadlineBottom = r.Text("hero.headlineBottom", g.Hero.HeadlineBottom, def.Hero.HeadlineBottom)
	a.Hero.Description = r.Text("hero.description", g.Hero.Description, def.Hero.Description)
	a.Hero.InlineImageURL = cms.First(cms.MediaURL(g.Hero.InlineImage, ""), g.Hero.InlineImageURL, def.Hero.InlineImageURL)

	var reviews []Review
	for _, c := range g.Reviews.Cards {
		rv := Review{
			Location: r.Value(c.Location),
			Name:     c.Name,
			Review:   r.Value(c.Review),
			StoryURL: c.StoryURL,
		}
		if rv.Name != "" && rv.Review != "" && rv.StoryURL != "" {
			reviews = append(reviews, rv)
		}
	}
	if len(reviews) > 0 {
		a.Reviews.Cards = reviews
	}
	a.Reviews.Description = r.Text("reviews.description", g.Reviews.Description, def.Reviews.Description)
	a.Reviews.Title = r.Text("reviews.title", g.Reviews.Title, def.Reviews.Title)

	a.RealExperience.Cards = experienceCards(r, g.RealExperience.Cards)
	a.SEO = b.seo(r, g.SEO, def.SEO)
	a.WhoWeAre = whoWeAre(r, g.WhoWeAre)
	return a, nil
}

// Contact builds the contact page. It reads the requested locale only and
// falls back to that locale's defaults.
func (b *Builder) Contact(ctx context.Context, l locale.Locale) (ContactContent, error) {
	var g cms.ContactGlobal
	if err := b.src.FindGlobal(ctx, cms.GlobalContact, &g, 0); err != nil {
		return ContactContent{}, fmt.Errorf("loading contact: %w", err)
	}

	def, ok := defaultContact[l]
	if !ok {
		def = defaultContact[locale.Default]
	}
	r := b.resolver(l, false)

	links := g.SocialLinks
	return ContactContent{
		Description: r.Text("description", g.Description, def.Description),
		SocialLinks: SocialLinks{
			InstagramURL: cms.First(links.InstagramURL, def.SocialLinks.InstagramURL),
			TelegramURL:  cms.First(links.TelegramURL, def.SocialLinks.TelegramURL),
			YouTubeURL:   cms.First(links.YouTubeURL, def.SocialLinks.YouTubeURL),
		},
		Title: r.Text("title", g.Title, def.Title),
	}, nil
}

// FAQ returns the answered questions in document order.
func (b *Builder) FAQ(ctx context.Context, l locale.Locale) ([]FAQItem, error) {
	var g cms.FAQGlobal
	if err := b.src.FindGlobal(ctx, cms.GlobalFAQ, &g, 0); err != nil {
		return nil, fmt.Errorf("loading faq: %w", err)
	}

	r := b.resolver(l, true)
	items := []FAQItem{}
	for i, it := range g.Items {
		item := FAQItem{
			ID:       cms.First(it.ID, fmt.Sprintf("faq-item-%d", i)),
			Question: r.Value(it.Question),
			Answer:   r.Value(it.Answer),
		}
		if item.Question != "" && item.Answer != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

// Popup reads the popup settings. Failures are logged and yield empty data.
func (b *Builder) Popup(ctx context.Context) (PopupData, error) {
	var g cms.PopupGlobal
	if err := b.src.FindGlobal(ctx, cms.GlobalPopup, &g, 1); err != nil {
		b.logger.Warn("popup fetch failed", "category", "blog", "error", err)
		return PopupData{}, nil
	}
	return PopupData{
		PosterURL:  cms.MediaURL(g.Poster, ""),
		YouTubeURL: g.YouTubeURL,
		EmbedURL:   youtube.EmbedURL(g.YouTubeURL),
	}, nil
}
