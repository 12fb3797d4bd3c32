package site

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
	"github.com/healerlk/healer/seo"
)

func testPage(t *testing.T) *Page {
	t.Helper()

	services := []*domain.Service{
		{ID: uuid.New(), Slug: "yoga", Title: "Yoga Therapy", ShortDescription: "Flexibility & strength", DurationMinutes: 75, Price: 4000, Active: true},
		{ID: uuid.New(), Slug: "marma", Title: "Marma Therapy", ShortDescription: "Pressure points", DurationMinutes: 60, Price: 4500, Active: true},
	}
	testimonials := []*domain.Testimonial{
		{ClientName: "Priya Jayawardena", ClientTitle: "Yoga Enthusiast", Text: "Transformed my life.", Rating: 5},
		{ClientName: "Rohan Fernando", Text: "Centered and focused.", Rating: 4},
		{ClientName: "Sanduni Perera", Text: "Life-changing.", Rating: 5},
	}
	posts := []*domain.Post{
		{Slug: "healing-power-of-sound", Title: "The Healing Power of Sound", Excerpt: "Vibrations.", Category: domain.CategorySoundHealing, Tags: []string{"sound"}, PublishedAt: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	site := seo.Site{URL: "https://healer.lk", Name: "Dr. Umesha Dilhara - The Healer"}
	p, err := NewPage(site, services, testimonials, posts, time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("building page: %v", err)
	}
	return p
}

func render(t *testing.T, p *Page) string {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, p); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	return buf.String()
}

func TestNewPage(t *testing.T) {
	p := testPage(t)

	if p.MinDate != "2026-10-19" || p.Year != 2026 {
		t.Fatalf("\nwanted:\n2026-10-19 2026\ngot:\n%s %d", p.MinDate, p.Year)
	}
	if len(p.TestimonialPages) != 2 || p.TestimonialPages[1][1].ClientName != "Priya Jayawardena" {
		t.Fatalf("wanted the trailing testimonial paired with the first, got %v", p.TestimonialPages)
	}
	if len(p.Schemas) != 6+len(p.Services) {
		t.Fatalf("\nwanted:\n%d schemas\ngot:\n%d", 6+len(p.Services), len(p.Schemas))
	}
}

func TestRenderer_Render(t *testing.T) {
	p := testPage(t)
	p.FieldSocket = "/ws/field"
	out := render(t, p)

	wants := []string{
		"<!DOCTYPE html>",
		`<canvas id="snow"`,
		`data-socket="/ws/field"`,
		`<link rel="canonical" href="https://healer.lk">`,
		`<meta property="og:image" content="https://healer.lk/og-image.png">`,
		`<script type="application/ld+json">`,
		`"@type":"Physician"`,
		`id="service-yoga"`,
		"LKR 4,500",
		"Yoga Therapy (75 min - LKR 4000)",
		`min="2026-10-19"`,
		`<option value="09:00">`,
		`<option value="17:00">`,
		"Sound Healing",
		"★★★★☆",
		"Flexibility &amp; strength",
		"&copy; 2026",
		`src="/static/wasm_exec.js"`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("\nwanted page to contain:\n%s", want)
		}
	}
	if strings.Contains(out, `<option value="08:30">`) || strings.Contains(out, `<option value="17:30">`) {
		t.Errorf("wanted no slots outside opening hours")
	}
}

func TestRenderer_EscapesContent(t *testing.T) {
	p := testPage(t)
	p.Posts[0].Title = `<script>alert("x")</script>`
	out := render(t, p)
	if strings.Contains(out, `<script>alert("x")</script>`) {
		t.Fatalf("wanted post titles to be escaped")
	}
}

func TestRenderer_EmptyCatalog(t *testing.T) {
	site := seo.Site{URL: "https://healer.lk", Name: "The Healer"}
	p, err := NewPage(site, nil, nil, nil, time.Now())
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	out := render(t, p)
	if !strings.Contains(out, "Services will be listed soon.") {
		t.Fatalf("wanted a placeholder for an empty catalog")
	}
	if strings.Contains(out, `class="next"`) {
		t.Fatalf("wanted no carousel controls without testimonials")
	}
}

func TestFuncs(t *testing.T) {
	if got := lkr(25000); got != "LKR 25,000" {
		t.Errorf("\nwanted:\nLKR 25,000\ngot:\n%v", got)
	}
	if got := stars(7); got != "★★★★★" {
		t.Errorf("\nwanted:\n★★★★★\ngot:\n%v", got)
	}
	if got := stars(-1); got != "☆☆☆☆☆" {
		t.Errorf("\nwanted:\n☆☆☆☆☆\ngot:\n%v", got)
	}
	if got := title(domain.CategorySoundHealing); got != "Sound Healing" {
		t.Errorf("\nwanted:\nSound Healing\ngot:\n%v", got)
	}
}
