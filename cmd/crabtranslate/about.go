// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
)

// heroImageSource is the original location of the about hero inline image.
const heroImageSource = "https://api.builder.io/api/v1/image/assets/TEMP/a094fe6bb6a8b0a1bab3cdec28b47b2ede034873"

type review struct {
	name, location, text string
}

var aboutReviews = []review{
	{"Vladimir", "Kherson, Ukraine", `"This journey became a real test for me. Africa, hard work, and zero comfort - the sea does not forgive weakness, but it rewards discipline. I found my path there and realized I should have started earlier."`},
	{"Vlad", "Odesa, Ukraine", `"Choosing mechanics was one of the best decisions I have made. The engine room taught me discipline, responsibility, and independence. I would choose this path again without hesitation."`},
	{"Bogdan", "", `"This experience was a real test. No background, tough work, long shifts - the crab boat rewards discipline and stamina. I came with zero experience and proved I could grow from the first trip."`},
	{"Alex", "Chisinau, Moldova", `"This move changed my life. From Chisinau to a fish factory in Norway, I found stable work at Solmari. Now I have steady income and confidence in tomorrow."`},
	{"Volodymyr", "Odesa, Ukraine", `"I bought the course in April and now I am heading to my first crab vessel with no prior experience. I prepared my documents and found a job. No regrets - if you are unsure, take the course and go for it."`},
	{"Vladimir", "Kherson, Ukraine", `"Getting on a Norwegian fishing vessel took persistence and real sea experience. The work is tough, but it pays well and gives stability. If you stay disciplined and focused, you can earn solid money and move forward."`},
}

// aboutSource returns the English about page content.
func aboutSource() *cms.AboutGlobal {
	en := func(s string) cms.LocalizedText { return cms.Text(locale.EN, s) }

	a := &cms.AboutGlobal{}
	a.SEO.MetaTitle = en("About | Crab Norway")
	a.SEO.MetaDescription = en("From cadet in Africa to fisherman in Norway. A real journey through offshore work, fishing vessels, and life at sea.")

	a.Hero.HeadlineBeforeImage = en("From cadet")
	a.Hero.HeadlineAfterImage = en("in Africa")
	a.Hero.HeadlineBottom = en("to fisherman in Norway")
	a.Hero.Description = en("A real journey through offshore work, fishing vessels, and life at sea")

	a.WhoWeAre = cms.WhoWeAre{
		Description:  en("An independent project sharing real experience and knowledge from inside the Norwegian crab fishing industry"),
		LearnMoreURL: "/about",
	}

	a.RealExperience.Cards = []cms.ExperienceCard{
		{
			Title:       en("Real path, not theory"),
			Description: en("Built on firsthand experience - from fishing vessel entry level in Africa and Nederland to work on Norwegian fishing and crab boats. More than 6 years of experience."),
		},
		{
			Title:       en("Practical guidance"),
			Description: en("No abstract advice. Only real information about work conditions and what to expect at sea."),
		},
		{
			Title:       en("Personal involvement"),
			Description: en("Direct guidance from someone who has been through this path and understands its challenges."),
		},
	}

	a.Reviews.Title = en("Stories from Our Fishing Community")
	a.Reviews.Description = en("Hear from the fishermen and workers who started their journey with us. Real experiences, real results, and real opportunities at sea")
	for _, r := range aboutReviews {
		card := cms.ReviewCard{Name: r.name, Review: en(r.text), StoryURL: "/blog"}
		if r.location != "" {
			card.Location = en(r.location)
		}
		a.Reviews.Cards = append(a.Reviews.Cards, card)
	}
	return a
}

// resolveOpenGraphImage reuses the landing page share image, or the newest
// media item when the landing page has none.
func resolveOpenGraphImage(ctx context.Context, q *store.Queries) (int64, error) {
	var home cms.HomeGlobal
	if err := q.FindGlobal(ctx, cms.GlobalHome, &home, 0); err != nil {
		return 0, err
	}
	if id, ok := home.SEO.OpenGraphImage.Int64(); ok {
		return id, nil
	}

	media, err := q.ListMedia(ctx, 1, 0)
	if err != nil {
		return 0, err
	}
	if len(media) == 0 {
		return 0, errors.New("unable to resolve the open graph image; add media and try again")
	}
	return media[0].ID, nil
}

// resolveHeroImage finds the media item uploaded from sourceURL, by exact
// URL first and then by file name, falling back to fallbackID.
func resolveHeroImage(ctx context.Context, q *store.Queries, sourceURL string, fallbackID int64) (int64, error) {
	candidates, err := q.ListMedia(ctx, 50, 0)
	if err != nil {
		return 0, err
	}
	for _, m := range candidates {
		if m.URL == sourceURL {
			return m.ID, nil
		}
	}
	sourceName := path.Base(sourceURL)
	for _, m := range candidates {
		if m.Filename != "" && strings.Contains(sourceName, m.Filename) {
			return m.ID, nil
		}
	}
	return fallbackID, nil
}
