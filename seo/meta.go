// Package seo produces the search engine metadata of the site: meta tags,
// JSON-LD structured data, the sitemap and robots.txt.
package seo

import "strings"

const (
	defaultTitle       = "Dr. Umesha Dilhara - The Healer | Ayurvedic Healing & Holistic Wellness in Sri Lanka"
	defaultDescription = "Experience authentic Ayurvedic healing, Yoga therapy, Sound healing with Bhajans, and Buddhist meditation with Dr. Umesha Dilhara. Traditional wisdom meets modern wellness in Sri Lanka."
	defaultAuthor      = "Dr. Umesha Dilhara"
	themeColor         = "#14b8a6"
)

var defaultKeywords = []string{
	"ayurveda Sri Lanka", "ayurvedic doctor", "yoga therapy", "sound healing",
	"Buddhist meditation", "panchakarma", "holistic healing", "traditional medicine",
	"Dr. Umesha Dilhara", "The Healer", "wellness Sri Lanka", "ayurvedic consultation",
	"marma therapy", "pranayama", "bhajan",
}

// Site identifies the public site.
type Site struct {
	URL  string
	Name string
}

func (s Site) base() string {
	return strings.TrimRight(s.URL, "/")
}

// Meta is the metadata of a page.
type Meta struct {
	Title       string
	Description string
	Keywords    []string
	Image       string
	URL         string
	Type        string
	Author      string
	SiteName    string
}

// Meta returns the metadata of the home page.
func (s Site) Meta() Meta {
	return Meta{
		Title:       defaultTitle,
		Description: defaultDescription,
		Keywords:    defaultKeywords,
		Image:       s.base() + "/og-image.png",
		URL:         s.base(),
		Type:        "website",
		Author:      defaultAuthor,
		SiteName:    s.Name,
	}
}

// Tag is a single <meta> or <link> element of the page head.
// Exactly one of Name, Property and Rel is set.
type Tag struct {
	Name     string
	Property string
	Rel      string
	Href     string
	Content  string
}

// Tags lists the head elements for m in document order.
func (m Meta) Tags() []Tag {
	keywords := strings.Join(m.Keywords, ", ")
	return []Tag{
		{Name: "title", Content: m.Title},
		{Name: "description", Content: m.Description},
		{Name: "keywords", Content: keywords},
		{Name: "author", Content: m.Author},
		{Name: "robots", Content: "index, follow"},
		{Name: "language", Content: "English"},
		{Name: "revisit-after", Content: "7 days"},
		{Rel: "canonical", Href: m.URL},

		{Property: "og:type", Content: m.Type},
		{Property: "og:url", Content: m.URL},
		{Property: "og:title", Content: m.Title},
		{Property: "og:description", Content: m.Description},
		{Property: "og:image", Content: m.Image},
		{Property: "og:site_name", Content: m.SiteName},
		{Property: "og:locale", Content: "en_US"},

		{Name: "twitter:card", Content: "summary_large_image"},
		{Name: "twitter:url", Content: m.URL},
		{Name: "twitter:title", Content: m.Title},
		{Name: "twitter:description", Content: m.Description},
		{Name: "twitter:image", Content: m.Image},

		{Name: "theme-color", Content: themeColor},
		{Name: "apple-mobile-web-app-capable", Content: "yes"},
		{Name: "apple-mobile-web-app-status-bar-style", Content: "default"},
		{Name: "format-detection", Content: "telephone=no"},
	}
}
