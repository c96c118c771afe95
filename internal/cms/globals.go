// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"fmt"

	"github.com/google/uuid"
)

// Global slugs.
const (
	GlobalHome    = "home"
	GlobalAbout   = "about"
	GlobalFAQ     = "faq"
	GlobalContact = "contact"
	GlobalPopup   = "popup"
)

// Global is a singleton document stored as JSON.
type Global interface {
	// MediaRefs returns the media relations of the document so they can be expanded in place.
	MediaRefs() []*Ref[Media]
	// Texts returns the localized leaves of the document.
	Texts() []FieldText
	// AssignIDs gives array rows without an id a fresh one.
	AssignIDs()
}

// NewGlobal returns an empty document for slug.
func NewGlobal(slug string) (Global, error) {
	switch slug {
	case GlobalHome:
		return &HomeGlobal{}, nil
	case GlobalAbout:
		return &AboutGlobal{}, nil
	case GlobalFAQ:
		return &FAQGlobal{}, nil
	case GlobalContact:
		return &ContactGlobal{}, nil
	case GlobalPopup:
		return &PopupGlobal{}, nil
	}
	return nil, fmt.Errorf("unknown global %q: %w", slug, ErrNotFound)
}

func rowID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

type SEO struct {
	MetaTitle       LocalizedText `json:"metaTitle,omitempty"`
	MetaDescription LocalizedText `json:"metaDescription,omitempty"`
	OpenGraphImage  Ref[Media]    `json:"openGraphImage"`
}

func (s *SEO) texts(prefix string) []FieldText {
	return []FieldText{
		{prefix + ".metaTitle", &s.MetaTitle},
		{prefix + ".metaDescription", &s.MetaDescription},
	}
}

type WhoWeAre struct {
	Description  LocalizedText `json:"description,omitempty"`
	LearnMoreURL string        `json:"learnMoreUrl,omitempty"`
}

type ExperienceCard struct {
	ID          string        `json:"id,omitempty"`
	Title       LocalizedText `json:"title,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
}

type RealExperience struct {
	Cards []ExperienceCard `json:"cards,omitempty"`
}

func (r *RealExperience) texts(prefix string) []FieldText {
	var out []FieldText
	for i := range r.Cards {
		p := fmt.Sprintf("%s.cards[%d]", prefix, i)
		out = append(out,
			FieldText{p + ".title", &r.Cards[i].Title},
			FieldText{p + ".description", &r.Cards[i].Description},
		)
	}
	return out
}

func (r *RealExperience) assignIDs() {
	for i := range r.Cards {
		rowID(&r.Cards[i].ID)
	}
}

// HomeGlobal is the landing page document.
type HomeGlobal struct {
	SEO  SEO `json:"seo"`
	Hero struct {
		Eyebrow        LocalizedText `json:"eyebrow,omitempty"`
		Headline       LocalizedText `json:"headline,omitempty"`
		SupportingText LocalizedText `json:"supportingText,omitempty"`
	} `json:"hero"`
	WhoWeAre       WhoWeAre       `json:"whoWeAre"`
	RealExperience RealExperience `json:"realExperience"`
	WhatYouFind    struct {
		SectionTitle     LocalizedText `json:"sectionTitle,omitempty"`
		Headline         LocalizedText `json:"headline,omitempty"`
		FirstColumnText  LocalizedText `json:"firstColumnText,omitempty"`
		SecondColumnText LocalizedText `json:"secondColumnText,omitempty"`
		CTAURL           string        `json:"ctaUrl,omitempty"`
	} `json:"whatYouFind"`
	Pricing struct {
		Headline LocalizedText `json:"headline,omitempty"`
		Plans    []PricingPlan `json:"plans,omitempty"`
	} `json:"pricing"`
	FromTheFleet FromTheFleet `json:"fromTheFleet"`
}

// PricingPlan is one offer of the pricing section.
type PricingPlan struct {
	ID          string        `json:"id,omitempty"`
	Image       Ref[Media]    `json:"image"`
	BadgeLabel  LocalizedText `json:"badgeLabel,omitempty"`
	Price       string        `json:"price,omitempty"`
	PurchaseURL string        `json:"purchaseUrl,omitempty"`
	Features    []PlanFeature `json:"features,omitempty"`
	IdealFor    LocalizedText `json:"idealFor,omitempty"`
}

type PlanFeature struct {
	ID   string        `json:"id,omitempty"`
	Text LocalizedText `json:"text,omitempty"`
}

// FromTheFleet selects the three posts featured on the landing page.
type FromTheFleet struct {
	FirstArticle  Ref[BlogPost] `json:"firstArticle"`
	SecondArticle Ref[BlogPost] `json:"secondArticle"`
	ThirdArticle  Ref[BlogPost] `json:"thirdArticle"`
}

// Refs returns the three slots in display order.
func (f FromTheFleet) Refs() []Ref[BlogPost] {
	return []Ref[BlogPost]{f.FirstArticle, f.SecondArticle, f.ThirdArticle}
}

func (h *HomeGlobal) MediaRefs() []*Ref[Media] {
	refs := []*Ref[Media]{&h.SEO.OpenGraphImage}
	for i := range h.Pricing.Plans {
		refs = append(refs, &h.Pricing.Plans[i].Image)
	}
	return refs
}

func (h *HomeGlobal) Texts() []FieldText {
	out := h.SEO.texts("seo")
	out = append(out,
		FieldText{"hero.eyebrow", &h.Hero.Eyebrow},
		FieldText{"hero.headline", &h.Hero.Headline},
		FieldText{"hero.supportingText", &h.Hero.SupportingText},
		FieldText{"whoWeAre.description", &h.WhoWeAre.Description},
	)
	out = append(out, h.RealExperience.texts("realExperience")...)
	out = append(out,
		FieldText{"whatYouFind.sectionTitle", &h.WhatYouFind.SectionTitle},
		FieldText{"whatYouFind.headline", &h.WhatYouFind.Headline},
		FieldText{"whatYouFind.firstColumnText", &h.WhatYouFind.FirstColumnText},
		FieldText{"whatYouFind.secondColumnText", &h.WhatYouFind.SecondColumnText},
		FieldText{"pricing.headline", &h.Pricing.Headline},
	)
	for i := range h.Pricing.Plans {
		plan := &h.Pricing.Plans[i]
		p := fmt.Sprintf("pricing.plans[%d]", i)
		out = append(out,
			FieldText{p + ".badgeLabel", &plan.BadgeLabel},
			FieldText{p + ".idealFor", &plan.IdealFor},
		)
		for j := range plan.Features {
			out = append(out, FieldText{fmt.Sprintf("%s.features[%d].text", p, j), &plan.Features[j].Text})
		}
	}
	return out
}

func (h *HomeGlobal) AssignIDs() {
	h.RealExperience.assignIDs()
	for i := range h.Pricing.Plans {
		rowID(&h.Pricing.Plans[i].ID)
		for j := range h.Pricing.Plans[i].Features {
			rowID(&h.Pricing.Plans[i].Features[j].ID)
		}
	}
}

// AboutGlobal is the about page document.
type AboutGlobal struct {
	SEO  SEO `json:"seo"`
	Hero struct {
		HeadlineBeforeImage LocalizedText `json:"headlineBeforeImage,omitempty"`
		InlineImage         Ref[Media]    `json:"inlineImage"`
		HeadlineAfterImage  LocalizedText `json:"headlineAfterImage,omitempty"`
		HeadlineBottom      LocalizedText `json:"headlineBottom,omitempty"`
		Description         LocalizedText `json:"description,omitempty"`

		// InlineImageURL is kept for documents written before InlineImage existed.
		InlineImageURL string `json:"inlineImageUrl,omitempty"`
	} `json:"hero"`
	WhoWeAre       WhoWeAre       `json:"whoWeAre"`
	RealExperience RealExperience `json:"realExperience"`
	Reviews        struct {
		Title       LocalizedText `json:"title,omitempty"`
		Description LocalizedText `json:"description,omitempty"`
		Cards       []ReviewCard  `json:"cards,omitempty"`
	} `json:"reviews"`
}

// ReviewCard is a testimonial.
type ReviewCard struct {
	ID       string        `json:"id,omitempty"`
	Name     string        `json:"name,omitempty"`
	Location LocalizedText `json:"location,omitempty"`
	Review   LocalizedText `json:"review,omitempty"`
	StoryURL string        `json:"storyUrl,omitempty"`
}

func (a *AboutGlobal) MediaRefs() []*Ref[Media] {
	return []*Ref[Media]{&a.SEO.OpenGraphImage, &a.Hero.InlineImage}
}

func (a *AboutGlobal) Texts() []FieldText {
	out := a.SEO.texts("seo")
	out = append(out,
		FieldText{"hero.headlineBeforeImage", &a.Hero.HeadlineBeforeImage},
		FieldText{"hero.headlineAfterImage", &a.Hero.HeadlineAfterImage},
		FieldText{"hero.headlineBottom", &a.Hero.HeadlineBottom},
		FieldText{"hero.description", &a.Hero.Description},
		FieldText{"whoWeAre.description", &a.WhoWeAre.Description},
	)
	out = append(out, a.RealExperience.texts("realExperience")...)
	out = append(out,
		FieldText{"reviews.title", &a.Reviews.Title},
		FieldText{"reviews.description", &a.Reviews.Description},
	)
	for i := range a.Reviews.Cards {
		p := fmt.Sprintf("reviews.cards[%d]", i)
		out = append(out,
			FieldText{p + ".location", &a.Reviews.Cards[i].Location},
			FieldText{p + ".review", &a.Reviews.Cards[i].Review},
		)
	}
	return out
}

func (a *AboutGlobal) AssignIDs() {
	a.RealExperience.assignIDs()
	for i := range a.Reviews.Cards {
		rowID(&a.Reviews.Cards[i].ID)
	}
}

// FAQGlobal holds the question and answer list.
type FAQGlobal struct {
	Items []FAQItem `json:"items,omitempty"`
}

type FAQItem struct {
	ID       string        `json:"id,omitempty"`
	Question LocalizedText `json:"question,omitempty"`
	Answer   LocalizedText `json:"answer,omitempty"`
}

func (f *FAQGlobal) MediaRefs() []*Ref[Media] { return nil }

func (f *FAQGlobal) Texts() []FieldText {
	var out []FieldText
	for i := range f.Items {
		p := fmt.Sprintf("items[%d]", i)
		out = append(out,
			FieldText{p + ".question", &f.Items[i].Question},
			FieldText{p + ".answer", &f.Items[i].Answer},
		)
	}
	return out
}

func (f *FAQGlobal) AssignIDs() {
	for i := range f.Items {
		rowID(&f.Items[i].ID)
	}
}

// ContactGlobal is the contact page document. It is read without locale fallback.
type ContactGlobal struct {
	Title       LocalizedText `json:"title,omitempty"`
	Description LocalizedText `json:"description,omitempty"`
	SocialLinks struct {
		YouTubeURL   string `json:"youtubeUrl,omitempty"`
		InstagramURL string `json:"instagramUrl,omitempty"`
		TelegramURL  string `json:"telegramUrl,omitempty"`
	} `json:"socialLinks"`
}

func (c *ContactGlobal) MediaRefs() []*Ref[Media] { return nil }

func (c *ContactGlobal) Texts() []FieldText {
	return []FieldText{{"title", &c.Title}, {"description", &c.Description}}
}

func (c *ContactGlobal) AssignIDs() {}

// PopupGlobal configures the floating video popup. It is not localized.
type PopupGlobal struct {
	Poster     Ref[Media] `json:"poster"`
	YouTubeURL string     `json:"youtubeUrl,omitempty"`
}

func (p *PopupGlobal) MediaRefs() []*Ref[Media] { return []*Ref[Media]{&p.Poster} }

func (p *PopupGlobal) Texts() []FieldText { return nil }

func (p *PopupGlobal) AssignIDs() {}
