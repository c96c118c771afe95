package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/store"
	"github.com/crabnorway/crabsite/internal/testutil"
)

func testQueries(t *testing.T) *store.Queries {
	t.Helper()
	return testutil.TestStore(t).Queries
}

func addMedia(t *testing.T, q *store.Queries, url, filename string) int64 {
	t.Helper()
	m, err := q.CreateMedia(context.Background(), store.CreateMediaParams{URL: url, Filename: filename, CreatedAt: time.Now()})
	require.NoError(t, err)
	return m.ID
}

type prefixTranslator struct{}

func (prefixTranslator) Translate(_ context.Context, text string, to locale.Locale) (string, error) {
	return string(to) + ":" + text, nil
}

func TestAboutSource(t *testing.T) {
	a := aboutSource()

	assert.Len(t, a.RealExperience.Cards, 3)
	require.Len(t, a.Reviews.Cards, 6)
	assert.Nil(t, a.Reviews.Cards[2].Location, "Bogdan has no location")
	for _, leaf := range a.Texts() {
		if leaf.Text.IsEmpty() {
			continue
		}
		assert.NotEmpty(t, leaf.Text.In(locale.EN), leaf.Path)
		assert.Empty(t, leaf.Text.In(locale.RU), leaf.Path)
	}
}

func TestResolveImages(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()

	_, err := resolveOpenGraphImage(ctx, q)
	require.Error(t, err, "no media yet")

	first := addMedia(t, q, "/media/first.jpg", "first.jpg")
	newest := addMedia(t, q, "/media/newest.jpg", "newest.jpg")

	og, err := resolveOpenGraphImage(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, newest, og)

	hero, err := resolveHeroImage(ctx, q, heroImageSource, og)
	require.NoError(t, err)
	assert.Equal(t, og, hero, "falls back when nothing matches")

	byName := addMedia(t, q, "/media/hero.jpg", "a094fe6bb6a8")
	hero, err = resolveHeroImage(ctx, q, heroImageSource, og)
	require.NoError(t, err)
	assert.Equal(t, byName, hero)

	byURL := addMedia(t, q, heroImageSource, "")
	hero, err = resolveHeroImage(ctx, q, heroImageSource, og)
	require.NoError(t, err)
	assert.Equal(t, byURL, hero)
	assert.NotEqual(t, first, hero)
}

func TestSeedAbout(t *testing.T) {
	q := testQueries(t)
	ctx := context.Background()
	media := addMedia(t, q, "/media/share.jpg", "share.jpg")
	require.NoError(t, seedAbout(ctx, q, prefixTranslator{}, testutil.TestLoggerSilent()))

	var about cms.AboutGlobal
	require.NoError(t, q.FindGlobal(ctx, cms.GlobalAbout, &about, 0))
	assert.Equal(t, "From cadet", about.Hero.HeadlineBeforeImage.In(locale.EN))
	assert.Equal(t, "ru:From cadet", about.Hero.HeadlineBeforeImage.In(locale.RU))
	assert.Equal(t, "Vladimir", about.Reviews.Cards[0].Name)
	assert.True(t, strings.HasPrefix(about.Reviews.Cards[0].Review.In(locale.RU), "ru:"))
	assert.NotEmpty(t, about.Reviews.Cards[0].ID)

	id, ok := about.SEO.OpenGraphImage.Int64()
	require.True(t, ok)
	assert.Equal(t, media, id)
}
