package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crabnorway/crabsite/internal/cache"
	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
)

func newTestSite(t *testing.T, src *fakeSource) *Site {
	t.Helper()
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	cc := cache.NewContentCache(mem, nil)
	t.Cleanup(func() { _ = cc.Close() })
	return NewSite(NewBuilder(src, "", nil), cc, cache.NewPolicies(cache.DefaultRevalidation()))
}

func TestSite_CachesUntilTagInvalidated(t *testing.T) {
	src := &fakeSource{globals: map[string]string{
		cms.GlobalFAQ: `{"items": [{"question": {"en": "Q"}, "answer": {"en": "A"}}]}`,
	}}
	site := newTestSite(t, src)
	ctx := context.Background()

	_, err := site.FAQ(ctx, locale.EN)
	require.NoError(t, err)
	_, err = site.FAQ(ctx, locale.EN)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())

	// Other tags leave the entry alone.
	time.Sleep(time.Millisecond)
	require.NoError(t, site.Invalidate(ctx, cache.TagHome))
	_, err = site.FAQ(ctx, locale.EN)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())

	time.Sleep(time.Millisecond)
	require.NoError(t, site.Invalidate(ctx, cache.TagFAQ))
	items, err := site.FAQ(ctx, locale.EN)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Len(t, items, 1)
}

func TestSite_KeysByLocale(t *testing.T) {
	src := &fakeSource{}
	site := newTestSite(t, src)
	ctx := context.Background()

	_, err := site.Contact(ctx, locale.EN)
	require.NoError(t, err)
	ru, err := site.Contact(ctx, locale.RU)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
	assert.Equal(t, defaultContact[locale.RU].Title, ru.Title)
}

func TestSite_MissingPostIsCachedAsNil(t *testing.T) {
	site := newTestSite(t, &fakeSource{})
	got, err := site.BlogPost(context.Background(), locale.EN, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = site.BlogPost(context.Background(), locale.EN, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSite_HomePageSharesRequestMemo(t *testing.T) {
	src := &fakeSource{
		globals: map[string]string{
			cms.GlobalHome: `{"fromTheFleet": {"firstArticle": 1, "secondArticle": 2, "thirdArticle": 3}}`,
		},
		posts: []cms.BlogPost{post(1, "a", "A"), post(2, "b", "B"), post(3, "c", "C")},
	}
	site := newTestSite(t, src)
	ctx := cache.WithMemo(context.Background())

	page, err := site.HomePage(ctx, locale.EN)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, page.Home.FromTheFleet.ArticleIDs)
	require.Len(t, page.Fleet, 3)
	assert.Equal(t, "a", page.Fleet[0].Slug)

	before := src.calls.Load()
	_, err = site.Home(ctx, locale.EN)
	require.NoError(t, err)
	assert.Equal(t, before, src.calls.Load())
	assert.Equal(t, 3, cache.MemoFrom(ctx).Len())
}

func TestSite_Warm(t *testing.T) {
	site := newTestSite(t, &fakeSource{})
	require.NoError(t, site.Warm(context.Background()))
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "latest", joinIDs(nil))
	assert.Equal(t, "3,1,2", joinIDs([]int64{3, 1, 2}))
}
