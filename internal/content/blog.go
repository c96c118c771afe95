// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/crabnorway/crabsite/internal/cms"
	"github.com/crabnorway/crabsite/internal/locale"
	"github.com/crabnorway/crabsite/internal/richtext"
)

const (
	blogPageLimit  = 100
	featuredLimit  = 2
	fleetLatestMax = 3
)

func categoryOf(p cms.BlogPost, l locale.Locale) (label, slug string) {
	label, slug = uncategorizedLabel(l), uncategorizedSlug
	if c := p.Category.Doc(); c != nil {
		label = cms.First(c.Name, label)
		slug = cms.First(c.Slug, slug)
	}
	return label, slug
}

func blogCard(p cms.BlogPost, l locale.Locale) BlogCard {
	label, slug := categoryOf(p, l)
	return BlogCard{
		ID:           p.ID,
		Category:     label,
		CategorySlug: slug,
		Description:  p.Excerpt,
		Image:        cms.MediaURL(p.FeaturedImage, FallbackImage),
		Slug:         p.Slug,
		Title:        p.Title,
	}
}

func blogCards(posts []cms.BlogPost, l locale.Locale) []BlogCard {
	cards := []BlogCard{}
	for _, p := range posts {
		c := blogCard(p, l)
		if c.Slug != "" && c.Title != "" {
			cards = append(cards, c)
		}
	}
	return cards
}

// BlogPage lists published posts and all categories. Posts and categories
// are fetched concurrently.
func (b *Builder) BlogPage(ctx context.Context, l locale.Locale) (BlogPageData, error) {
	var (
		posts      []cms.BlogPost
		categories []cms.BlogCategory
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = b.src.ListPublishedPosts(gctx, l, blogPageLimit, 0)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = b.src.ListCategories(gctx, l)
		return err
	})
	if err := g.Wait(); err != nil {
		return BlogPageData{}, fmt.Errorf("loading blog page: %w", err)
	}

	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Slug < categories[j].Slug })
	items := []CategoryItem{}
	for _, c := range categories {
		if c.Name != "" && c.Slug != "" {
			items = append(items, CategoryItem{Label: c.Name, Slug: c.Slug})
		}
	}

	return BlogPageData{Categories: items, Posts: blogCards(posts, l)}, nil
}

// BlogPost returns the published post with slug, or nil when there is none.
func (b *Builder) BlogPost(ctx context.Context, l locale.Locale, slug string) (*BlogPostDetail, error) {
	if slug == "" {
		return nil, nil
	}
	p, err := b.src.GetPublishedPostBySlug(ctx, l, slug)
	if errors.Is(err, cms.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading post %q: %w", slug, err)
	}

	author := b.author(ctx, p.Author)
	label, catSlug := categoryOf(p, l)

	html, err := richtext.Render(p.Content)
	if err != nil {
		return nil, fmt.Errorf("rendering post %q: %w", slug, err)
	}

	return &BlogPostDetail{
		ID:            p.ID,
		AuthorImage:   cms.MediaURL(author.Avatar, ""),
		AuthorName:    author.AuthorName,
		Category:      label,
		CategorySlug:  catSlug,
		Content:       p.Content,
		ContentHTML:   html,
		Excerpt:       p.Excerpt,
		FeaturedImage: cms.MediaURL(p.FeaturedImage, FallbackImage),
		PublishedAt:   p.PublishedAt,
		Slug:          p.Slug,
		Title:         p.Title,
	}, nil
}

// author returns the expanded author of a post, looking it up by id when the
// relation was not expanded. Lookup failures yield an empty author.
func (b *Builder) author(ctx context.Context, ref cms.Ref[cms.Author]) cms.Author {
	if a := ref.Doc(); a != nil {
		return *a
	}
	id, ok := ref.Int64()
	if !ok {
		return cms.Author{}
	}
	a, err := b.src.GetAuthor(ctx, id)
	if err != nil {
		b.logger.Warn("author lookup failed", "category", "blog", "author_id", id, "error", err)
		return cms.Author{}
	}
	return a
}

// Featured returns the latest posts other than excludeID.
func (b *Builder) Featured(ctx context.Context, l locale.Locale, excludeID int64) ([]FeaturedPost, error) {
	posts, err := b.src.ListPublishedPosts(ctx, l, featuredLimit, excludeID)
	if err != nil {
		return nil, fmt.Errorf("loading featured posts: %w", err)
	}
	out := []FeaturedPost{}
	for _, p := range posts {
		if p.Slug == "" || p.Title == "" {
			continue
		}
		out = append(out, FeaturedPost{
			ID:    p.ID,
			Image: cms.MediaURL(p.FeaturedImage, FallbackImage),
			Slug:  p.Slug,
			Title: p.Title,
		})
	}
	return out, nil
}

// Fleet returns the posts shown in the landing page fleet section. With ids
// set it returns those posts in order, skipping missing or unpublished ones;
// otherwise it returns the latest posts.
func (b *Builder) Fleet(ctx context.Context, l locale.Locale, ids []int64) ([]BlogCard, error) {
	if len(ids) == 0 {
		posts, err := b.src.ListPublishedPosts(ctx, l, fleetLatestMax, 0)
		if err != nil {
			return nil, fmt.Errorf("loading latest posts: %w", err)
		}
		return blogCards(posts, l), nil
	}

	posts := make([]cms.BlogPost, 0, len(ids))
	for _, id := range ids {
		p, err := b.src.GetPost(ctx, l, id)
		if errors.Is(err, cms.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("loading fleet post %d: %w", id, err)
		}
		if p.Status != cms.PostPublished {
			continue
		}
		posts = append(posts, p)
	}
	return blogCards(posts, l), nil
}
