package seo

import (
	"testing"
)

func TestGenerateRobots(t *testing.T) {
	got := GenerateRobots(ResolveSiteBaseURL("https://crabnorway.com/"))
	want := "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /admin\n" +
		"Disallow: /api\n" +
		"\n" +
		"Host: https://crabnorway.com\n" +
		"Sitemap: https://crabnorway.com/sitemap.xml\n"
	if got != want {
		t.Errorf("GenerateRobots() =\n%s\nwant\n%s", got, want)
	}
}

func TestGenerateRobots_BaseWithPath(t *testing.T) {
	got := GenerateRobots(ResolveSiteBaseURL("https://crabnorway.com/site/"))
	want := "Sitemap: https://crabnorway.com/sitemap.xml\n"
	if len(got) < len(want) || got[len(got)-len(want):] != want {
		t.Errorf("GenerateRobots() should end with %q, got %q", want, got)
	}
}
