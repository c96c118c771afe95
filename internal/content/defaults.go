// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"slices"

	"github.com/crabnorway/crabsite/internal/locale"
)

// FallbackImage is shown for posts without a featured image.
const FallbackImage = "https://api.builder.io/api/v1/image/assets/TEMP/76ae9b75a902932af3b137ff435b94350ef3dc78?width=588"

const uncategorizedSlug = "uncategorized"

func uncategorizedLabel(l locale.Locale) string {
	if l == locale.RU {
		return "Без категории"
	}
	return "Uncategorized"
}

var defaultExperienceCards = []Card{
	{
		Title: "Real path, not theory",
		Description: "Built on firsthand experience - from fishing vessel entry level in Africa and Nederland " +
			"to work on Norwegian fishing and crab boats. More than 6 years of experience.",
	},
	{
		Title:       "Practical guidance",
		Description: "No abstract advice. Only real information about work conditions and what to expect at sea.",
	},
	{
		Title:       "Personal involvement",
		Description: "Direct guidance from someone who has been through this path and understands its challenges.",
	},
}

var defaultWhoWeAre = WhoWeAre{
	Description:  "An independent project sharing real experience and knowledge from inside the Norwegian crab fishing industry",
	LearnMoreURL: "/about",
}

var defaultPlans = []Plan{
	{
		BadgeLabel: "Employer Database",
		Features: []string{
			"1000+ verified employer contacts (Norway, Denmark, UK, Europe)",
			"No middlemen, no fake listings - direct company contacts only",
			"Full database access (apply independently)",
		},
		IdealFor:    "People ready to take action and apply on their own",
		PurchaseURL: "#",
		Image:       "https://api.builder.io/api/v1/image/assets/TEMP/eb4e8008b9a7327b6f3e17a384db1ff4f083c0f3?width=768",
		Price:       "€400",
	},
	{
		BadgeLabel: "Full Support Course",
		Features: []string{
			"Step-by-step guidance from 'I do not know where to start' to sending CVs",
			"1000+ employer contacts + training on how to find new companies yourself",
			"Professional CV tailored for fishing, crab, and offshore jobs",
			"Guidance on how to communicate with employers",
			"Personal support from me (calls + messages)",
			"Private community access (people already working in Norway)",
			"4 group Zoom calls + weekly reviews and strategy adjustments",
		},
		IdealFor:    "Those who want full guidance, feedback, and faster results",
		PurchaseURL: "#",
		Image:       "https://api.builder.io/api/v1/image/assets/TEMP/a2dd0a2b28130c4d6202529111b2d5ab43148127?width=768",
		Price:       "€800",
	},
}

// defaultHome returns a fresh copy of the landing page defaults.
func defaultHome() HomeContent {
	var h HomeContent
	h.Hero.Eyebrow = "Inside the industry"
	h.Hero.Headline = "crab norway"
	h.Hero.SupportingText = "log of the Norwegian crab fishing industry"
	h.RealExperience.Cards = slices.Clone(defaultExperienceCards)
	h.Pricing.Headline = "Pricing for every dive adventure"
	h.Pricing.Plans = clonePlans(defaultPlans)
	h.FromTheFleet.ArticleIDs = []int64{}
	h.WhatYouFind.CTAURL = "/contact"
	h.WhatYouFind.FirstColumnText = "We focus on practical knowledge, firsthand experience and honest insight gained " +
		"through years of working at sea - from the first contracts to real offshore conditions on Norwegian vessels."
	h.WhatYouFind.Headline = "For years, we've been documenting\nreal life and work within the Norwegian crab fishing industry"
	h.WhatYouFind.SecondColumnText = "Alongside articles and interviews, we provide education and personal guidance " +
		"for those who want to enter the industry prepared, avoid common mistakes and understand what this work really requires."
	h.WhatYouFind.SectionTitle = "WHAT YOU'LL FIND HERE"
	h.WhoWeAre = defaultWhoWeAre
	h.SEO = SEO{
		MetaTitle:       "Crab Norway",
		MetaDescription: "Crab Norway - Inside the industry log of the Norwegian crab fishing industry",
	}
	return h
}

const defaultAboutInlineImage = "https://api.builder.io/api/v1/image/assets/TEMP/a094fe6bb6a8b0a1bab3cdec28b47b2ede034873"

var defaultReviews = []Review{
	{
		Location: "Kherson, Ukraine",
		Name:     "Vladimir",
		Review: `"This journey became a real test for me. Africa, hard work, and zero comfort - the sea does not ` +
			`forgive weakness, but it rewards discipline. I found my path there and realized I should have started earlier."`,
		StoryURL: "/blog",
	},
	{
		Location: "Odesa, Ukraine",
		Name:     "Vlad",
		Review: `"Choosing mechanics was one of the best decisions I have made. The engine room taught me ` +
			`discipline, responsibility, and independence. I would choose this path again without hesitation."`,
		StoryURL: "/blog",
	},
	{
		Location: "",
		Name:     "Bogdan",
		Review: `"This experience was a real test. No background, tough work, long shifts - the crab boat rewards ` +
			`discipline and stamina. I came with zero experience and proved I could grow from the first trip."`,
		StoryURL: "/blog",
	},
	{
		Location: "Chisinau, Moldova",
		Name:     "Alex",
		Review: `"This move changed my life. From Chisinau to a fish factory in Norway, I found stable work at ` +
			`Solmari. Now I have steady income and confidence in tomorrow."`,
		StoryURL: "/blog",
	},
	{
		Location: "Odesa, Ukraine",
		Name:     "Volodymyr",
		Review: `"I bought the course in April and now I am heading to my first crab vessel with no prior ` +
			`experience. I prepared my documents and found a job. No regrets - if you are unsure, take the course and go for it."`,
		StoryURL: "/blog",
	},
	{
		Location: "Kherson, Ukraine",
		Name:     "Vladimir",
		Review: `"Getting on a Norwegian fishing vessel took persistence and real sea experience. The work is ` +
			`tough, but it pays well and gives stability. If you stay disciplined and focused, you can earn solid money and move forward."`,
		StoryURL: "/blog",
	},
}

// defaultAbout returns a fresh copy of the about page defaults.
func defaultAbout() AboutContent {
	var a AboutContent
	a.Hero.HeadlineAfterImage = "in Africa"
	a.Hero.HeadlineBeforeImage = "From cadet"
	a.Hero.HeadlineBottom = "to fisherman in Norway"
	a.Hero.Description = "A real journey through offshore work, fishing vessels, and life at sea"
	a.Hero.InlineImageURL = defaultAboutInlineImage
	a.Reviews.Cards = slices.Clone(defaultReviews)
	a.Reviews.Description = "Hear from the fishermen and workers who started their journey with us. " +
		"Real experiences, real results, and real opportunities at sea"
	a.Reviews.Title = "Stories from Our Fishing Community"
	a.RealExperience.Cards = slices.Clone(defaultExperienceCards)
	a.SEO = SEO{
		MetaTitle: "About | Crab Norway",
		MetaDescription: "From cadet in Africa to fisherman in Norway. " +
			"A real journey through offshore work, fishing vessels, and life at sea.",
	}
	a.WhoWeAre = defaultWhoWeAre
	return a
}

var defaultContact = map[locale.Locale]ContactContent{
	locale.EN: {
		Description: "Have a question or ready to plan your dive? Get in touch and we will be happy to help",
		SocialLinks: SocialLinks{InstagramURL: "#", TelegramURL: "#", YouTubeURL: "#"},
		Title:       "Contact us",
	},
	locale.RU: {
		Description: "Есть вопрос или готовы спланировать свой путь? Напишите нам, и мы с радостью поможем.",
		SocialLinks: SocialLinks{InstagramURL: "#", TelegramURL: "#", YouTubeURL: "#"},
		Title:       "Свяжитесь с нами",
	},
}

func clonePlans(plans []Plan) []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		p.Features = slices.Clone(p.Features)
		out[i] = p
	}
	return out
}
