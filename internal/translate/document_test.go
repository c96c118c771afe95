package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

// upperTranslator upper-cases text and fails on texts containing "fail".
type upperTranslator struct {
	mu    sync.Mutex
	texts []string
}

func (u *upperTranslator) Translate(_ context.Context, text string, _ locale.Locale) (string, error) {
	u.mu.Lock()
	u.texts = append(u.texts, text)
	u.mu.Unlock()
	if strings.Contains(text, "fail") {
		return "", errors.New("provider down")
	}
	return strings.ToUpper(text), nil
}

func TestSourceText(t *testing.T) {
	tests := []struct {
		name string
		in   cms.LocalizedText
		want string
	}{
		{"english first", cms.LocalizedText{locale.EN: "crab", locale.RU: "краб"}, "crab"},
		{"russian when english blank", cms.LocalizedText{locale.EN: "  ", locale.RU: "краб"}, "краб"},
		{"any other locale", cms.LocalizedText{"nb": "krabbe"}, "krabbe"},
		{"all blank", cms.LocalizedText{locale.EN: ""}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceText(tt.in))
		})
	}
}

func TestDocument(t *testing.T) {
	home := &cms.HomeGlobal{}
	home.Hero.Headline = cms.Text(locale.EN, "Life at sea")
	home.Hero.Eyebrow = cms.Text(locale.RU, "Норвегия")
	home.Pricing.Plans = []cms.PricingPlan{{
		Price:    "499",
		IdealFor: cms.Text(locale.EN, "beginners"),
		Features: []cms.PlanFeature{{Text: cms.Text(locale.EN, "documents")}},
	}}

	tr := &upperTranslator{}
	n, err := Document(context.Background(), tr, home, locale.RU)
	require.NoError(t, err)

	assert.Equal(t, 4, n)
	assert.Len(t, tr.texts, 4, "blank leaves are not sent")
	assert.Equal(t, "LIFE AT SEA", home.Hero.Headline.In(locale.RU))
	assert.Equal(t, "Life at sea", home.Hero.Headline.In(locale.EN))
	assert.Equal(t, "НОРВЕГИЯ", home.Hero.Eyebrow.In(locale.RU))
	assert.Equal(t, "BEGINNERS", home.Pricing.Plans[0].IdealFor.In(locale.RU))
	assert.Equal(t, "DOCUMENTS", home.Pricing.Plans[0].Features[0].Text.In(locale.RU))
	assert.Equal(t, "499", home.Pricing.Plans[0].Price)
	assert.Nil(t, home.Hero.SupportingText)
}

func TestDocument_ErrorLeavesDocUnchanged(t *testing.T) {
	about := &cms.AboutGlobal{}
	about.Hero.Description = cms.Text(locale.EN, "ok")
	about.Reviews.Title = cms.Text(locale.EN, "this will fail")

	_, err := Document(context.Background(), &upperTranslator{}, about, locale.RU)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviews.title")
	assert.Empty(t, about.Hero.Description.In(locale.RU))
}

func TestOnly(t *testing.T) {
	home := &cms.HomeGlobal{}
	home.Hero.Headline = cms.LocalizedText{locale.EN: "Life at sea", locale.RU: "Жизнь в море"}
	home.Hero.Eyebrow = cms.Text(locale.RU, "Норвегия")

	Only(home, locale.EN)

	assert.Equal(t, cms.LocalizedText{locale.EN: "Life at sea"}, home.Hero.Headline)
	assert.Equal(t, cms.LocalizedText{locale.EN: ""}, home.Hero.Eyebrow)
	assert.Nil(t, home.Hero.SupportingText)
}
