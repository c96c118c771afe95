// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"strings"
	"time"
)

// Invalidation tags. Each names the set of documents whose changes make
// dependent entries stale.
const (
	TagHome           = "home"
	TagAbout          = "about"
	TagContact        = "contact"
	TagFAQ            = "faq"
	TagPopup          = "popup"
	TagBlogPosts      = "blog-posts"
	TagBlogCategories = "blog-categories"
)

// Policy describes how one kind of content is cached: its key namespace,
// how long an entry may be served, and which tags invalidate it.
type Policy struct {
	Key        string
	Revalidate time.Duration
	Tags       []string
}

// EntryKey returns the backend key for the policy and its parameters.
func (p Policy) EntryKey(parts ...string) string {
	if len(parts) == 0 {
		return p.Key
	}
	return p.Key + ":" + strings.Join(parts, ":")
}

// HasTag reports whether the policy is invalidated by tag.
func (p Policy) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Policies is the cache policy table for every cached aggregate.
type Policies struct {
	Home         Policy
	About        Policy
	Contact      Policy
	FAQ          Policy
	Popup        Policy
	BlogPage     Policy
	BlogPost     Policy
	Featured     Policy
	FleetArticle Policy
}

// Revalidation holds the per-content revalidation windows.
type Revalidation struct {
	Globals  time.Duration
	FAQ      time.Duration
	Popup    time.Duration
	Blog     time.Duration
	BlogPost time.Duration
}

// DefaultRevalidation returns the default revalidation windows.
func DefaultRevalidation() Revalidation {
	return Revalidation{
		Globals:  300 * time.Second,
		FAQ:      300 * time.Second,
		Popup:    300 * time.Second,
		Blog:     60 * time.Second,
		BlogPost: 60 * time.Second,
	}
}

// NewPolicies builds the policy table. Zero windows take their defaults.
func NewPolicies(r Revalidation) Policies {
	d := DefaultRevalidation()
	pick := func(v, def time.Duration) time.Duration {
		if v > 0 {
			return v
		}
		return def
	}
	globals := pick(r.Globals, d.Globals)
	blog := pick(r.Blog, d.Blog)
	post := pick(r.BlogPost, d.BlogPost)

	return Policies{
		Home:         Policy{Key: "home-content", Revalidate: globals, Tags: []string{TagHome}},
		About:        Policy{Key: "about-content", Revalidate: globals, Tags: []string{TagAbout}},
		Contact:      Policy{Key: "contact-content", Revalidate: globals, Tags: []string{TagContact}},
		FAQ:          Policy{Key: "faq-items", Revalidate: pick(r.FAQ, d.FAQ), Tags: []string{TagFAQ}},
		Popup:        Policy{Key: "popup-data", Revalidate: pick(r.Popup, d.Popup), Tags: []string{TagPopup}},
		BlogPage:     Policy{Key: "blog-page-data", Revalidate: blog, Tags: []string{TagBlogPosts, TagBlogCategories}},
		BlogPost:     Policy{Key: "blog-post-by-slug", Revalidate: post, Tags: []string{TagBlogPosts}},
		Featured:     Policy{Key: "featured-blog-posts", Revalidate: post, Tags: []string{TagBlogPosts}},
		FleetArticle: Policy{Key: "home-fleet-articles", Revalidate: blog, Tags: []string{TagBlogPosts, TagHome}},
	}
}

// All returns every policy in table order.
func (p Policies) All() []Policy {
	return []Policy{p.Home, p.About, p.Contact, p.FAQ, p.Popup, p.BlogPage, p.BlogPost, p.Featured, p.FleetArticle}
}

// KnownTag reports whether any policy uses tag.
func (p Policies) KnownTag(tag string) bool {
	for _, policy := range p.All() {
		if policy.HasTag(tag) {
			return true
		}
	}
	return false
}

// TagForGlobal maps a global slug to its invalidation tag.
func TagForGlobal(slug string) string {
	switch slug {
	case "home", "about", "contact", "faq", "popup":
		return slug
	}
	return ""
}
