// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/locale"
)

func TestHomeGlobal_JSONRoundTripKeepsRelations(t *testing.T) {
	raw := `{
		"hero": {"eyebrow": {"en": "Inside", "ru": "Изнутри"}},
		"pricing": {"plans": [{"image": 4, "price": "€400"}]},
		"fromTheFleet": {"firstArticle": {"id": 10, "title": "x"}, "secondArticle": 11, "thirdArticle": null}
	}`

	var home HomeGlobal
	require.NoError(t, json.Unmarshal([]byte(raw), &home))

	assert.Equal(t, "Изнутри", home.Hero.Eyebrow.In(locale.RU))
	assert.Equal(t, "10", RelationID(home.FromTheFleet.FirstArticle))
	assert.Equal(t, "11", RelationID(home.FromTheFleet.SecondArticle))
	assert.Empty(t, RelationID(home.FromTheFleet.ThirdArticle))
	assert.Equal(t, RefUnresolved, home.Pricing.Plans[0].Image.State())

	out, err := json.Marshal(&home)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"firstArticle":10`)
	assert.Contains(t, string(out), `"image":4`)
}

func TestHomeGlobal_TextsAreWritable(t *testing.T) {
	home := &HomeGlobal{}
	home.Hero.Headline = Text(locale.EN, "crab norway")
	home.Pricing.Plans = []PricingPlan{{Features: []PlanFeature{{Text: Text(locale.EN, "feature")}}}}

	texts := home.Texts()
	for _, ft := range texts {
		if ft.Text.In(locale.EN) != "" {
			ft.Text.Set(locale.RU, "ru:"+ft.Text.In(locale.EN))
		}
	}

	assert.Equal(t, "ru:crab norway", home.Hero.Headline.In(locale.RU))
	assert.Equal(t, "ru:feature", home.Pricing.Plans[0].Features[0].Text.In(locale.RU))
}

func TestAssignIDs(t *testing.T) {
	faq := &FAQGlobal{Items: []FAQItem{{ID: "keep"}, {}}}
	faq.AssignIDs()
	assert.Equal(t, "keep", faq.Items[0].ID)
	assert.NotEmpty(t, faq.Items[1].ID)
}

func TestNewGlobal(t *testing.T) {
	for _, slug := range []string{GlobalHome, GlobalAbout, GlobalFAQ, GlobalContact, GlobalPopup} {
		g, err := NewGlobal(slug)
		require.NoError(t, err, slug)
		assert.NotNil(t, g)
	}
	_, err := NewGlobal("footer")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolver(t *testing.T) {
	field := LocalizedText{locale.EN: "english"}

	ru := NewResolver(locale.RU, true)
	assert.Equal(t, "english", ru.Text("f", field, "default"))

	strict := NewResolver(locale.RU, false)
	assert.Equal(t, "default", strict.Text("f", field, "default"))

	assert.Equal(t, "default", ru.Text("f", nil, "default"))
	assert.Equal(t, "b", First("", "b", "c"))
}
