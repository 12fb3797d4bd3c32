package seo

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/healerlk/healer/domain"
)

var testSite = Site{URL: "https://healer.lk/", Name: "Dr. Umesha Dilhara - The Healer"}

func testServices() []*domain.Service {
	return []*domain.Service{
		{Slug: "meditation", Title: "Guided Meditation", ShortDescription: "Calm", DurationMinutes: 30, Price: 2500},
		{Slug: "panchakarma", Title: "Panchakarma Consultation", ShortDescription: "Detox", DurationMinutes: 120, Price: 8000},
	}
}

func TestMeta_Tags(t *testing.T) {
	m := testSite.Meta()
	if m.URL != "https://healer.lk" || m.Image != "https://healer.lk/og-image.png" {
		t.Fatalf("\nwanted:\nurls without a double slash\ngot:\n%s %s", m.URL, m.Image)
	}

	tags := m.Tags()
	find := func(match func(Tag) bool) *Tag {
		for i := range tags {
			if match(tags[i]) {
				return &tags[i]
			}
		}
		return nil
	}

	canonical := find(func(t Tag) bool { return t.Rel == "canonical" })
	if canonical == nil || canonical.Href != "https://healer.lk" {
		t.Fatalf("\nwanted:\ncanonical link\ngot:\n%+v", canonical)
	}
	og := find(func(t Tag) bool { return t.Property == "og:site_name" })
	if og == nil || og.Content != testSite.Name {
		t.Fatalf("\nwanted:\n%s\ngot:\n%+v", testSite.Name, og)
	}
	kw := find(func(t Tag) bool { return t.Name == "keywords" })
	if kw == nil || !strings.HasPrefix(kw.Content, "ayurveda Sri Lanka, ayurvedic doctor") {
		t.Fatalf("\nwanted:\ncomma separated keywords\ngot:\n%+v", kw)
	}
	for _, tag := range tags {
		set := 0
		for _, v := range []string{tag.Name, tag.Property, tag.Rel} {
			if v != "" {
				set++
			}
		}
		if set != 1 {
			t.Fatalf("wanted exactly one of name, property and rel: %+v", tag)
		}
	}
}

func TestService_PriceValidUntil(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	sc := testSite.Service(testServices()[1], now)

	offers := sc["offers"].(map[string]any)
	if offers["priceValidUntil"] != "2027-12-31" {
		t.Fatalf("\nwanted:\n2027-12-31\ngot:\n%v", offers["priceValidUntil"])
	}
	if offers["price"] != "8000" || offers["priceCurrency"] != "LKR" {
		t.Fatalf("\nwanted:\n8000 LKR\ngot:\n%v %v", offers["price"], offers["priceCurrency"])
	}
	if sc["@id"] != "https://healer.lk/#service-panchakarma" {
		t.Fatalf("\nwanted:\nhttps://healer.lk/#service-panchakarma\ngot:\n%v", sc["@id"])
	}
}

func TestOrganization_PriceRange(t *testing.T) {
	sc := testSite.Organization(testServices())
	if sc["priceRange"] != "LKR 2,500 - LKR 8,000" {
		t.Fatalf("\nwanted:\nLKR 2,500 - LKR 8,000\ngot:\n%v", sc["priceRange"])
	}
}

func TestThousands(t *testing.T) {
	tests := map[int]string{0: "0", 999: "999", 1000: "1,000", 25000: "25,000", 1234567: "1,234,567"}
	for n, want := range tests {
		if got := thousands(n); got != want {
			t.Errorf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
	}
}

func TestReviews(t *testing.T) {
	if testSite.Reviews(nil) != nil {
		t.Fatalf("wanted no review schema without testimonials")
	}
	sc := testSite.Reviews([]*domain.Testimonial{
		{ClientName: "A", Text: "Great", Rating: 5},
		{ClientName: "B", Text: "Good", Rating: 4},
	})
	agg := sc["aggregateRating"].(map[string]any)
	if agg["ratingValue"] != "4.5" || agg["reviewCount"] != "2" {
		t.Fatalf("\nwanted:\n4.5 from 2\ngot:\n%v from %v", agg["ratingValue"], agg["reviewCount"])
	}
}

func TestSchemas(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	services := testServices()
	testimonials := []*domain.Testimonial{{ClientName: "A", Text: "Great", Rating: 5}}

	schemas := testSite.Schemas(services, testimonials, now)
	// organization, physician, reviews, breadcrumb, website, faq and one per service
	if len(schemas) != 6+len(services) {
		t.Fatalf("\nwanted:\n%d\ngot:\n%d", 6+len(services), len(schemas))
	}
	for _, sc := range schemas {
		out, err := sc.JSON()
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("schema is not valid json: %v", err)
		}
		if decoded["@context"] != "https://schema.org" {
			t.Fatalf("\nwanted:\nhttps://schema.org\ngot:\n%v", decoded["@context"])
		}
	}

	if got := len(testSite.Schemas(services, nil, now)); got != 5+len(services) {
		t.Fatalf("\nwanted:\n%d without testimonials\ngot:\n%d", 5+len(services), got)
	}
}

func TestFAQ_Durations(t *testing.T) {
	sc := testSite.FAQ(testServices())
	entities := sc["mainEntity"].([]any)
	answer := entities[2].(map[string]any)["acceptedAnswer"].(map[string]any)["text"]
	want := "Session durations vary by service: Guided Meditation (30 min), Panchakarma Consultation (120 min)."
	if answer != want {
		t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, answer)
	}
}

func TestSitemap(t *testing.T) {
	out, err := testSite.Sitemap(time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatalf("reading sitemap: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "urlset" || root.SelectAttrValue("xmlns", "") != sitemapNS {
		t.Fatalf("\nwanted:\nurlset root\ngot:\n%s", out)
	}
	urls := root.SelectElements("url")
	if len(urls) != 1+len(Sections) {
		t.Fatalf("\nwanted:\n%d urls\ngot:\n%d", 1+len(Sections), len(urls))
	}
	if loc := urls[0].SelectElement("loc").Text(); loc != "https://healer.lk/" {
		t.Fatalf("\nwanted:\nhttps://healer.lk/\ngot:\n%v", loc)
	}
	if lastmod := urls[1].SelectElement("lastmod").Text(); lastmod != "2026-10-19" {
		t.Fatalf("\nwanted:\n2026-10-19\ngot:\n%v", lastmod)
	}
}

func TestRobots(t *testing.T) {
	got := testSite.Robots()
	if !strings.Contains(got, "Sitemap: https://healer.lk/sitemap.xml\n") || !strings.Contains(got, "Disallow: /api/\n") {
		t.Fatalf("\nwanted:\nsitemap and api rules\ngot:\n%v", got)
	}
}
