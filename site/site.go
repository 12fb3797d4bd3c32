// Package site renders the single page of the healer website.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/healerlk/healer/domain"
	"github.com/healerlk/healer/seo"
	"github.com/yosssi/gohtml"
)

//go:embed templates/*.tmpl.html templates/*.part.html
var templateFS embed.FS

const pageTemplate = "page.tmpl.html"

// Page is the data the page template renders.
type Page struct {
	Site             seo.Site
	Meta             seo.Meta
	Schemas          []template.JS
	Services         []*domain.Service
	TestimonialPages [][]*domain.Testimonial
	Posts            []*domain.Post
	Categories       []domain.Category
	Sections         []string
	TimeSlots        []string
	MinDate          string
	Year             int
	FieldSocket      string // websocket path of the server side field, empty to use the wasm field only
}

// NewPage assembles the page for the given catalog as of now.
func NewPage(site seo.Site, services []*domain.Service, testimonials []*domain.Testimonial, posts []*domain.Post, now time.Time) (*Page, error) {
	p := &Page{
		Site:             site,
		Meta:             site.Meta(),
		Services:         services,
		TestimonialPages: domain.Pair(testimonials),
		Posts:            posts,
		Categories:       domain.Categories,
		TimeSlots:        domain.TimeSlots(),
		MinDate:          now.Format(domain.DateLayout),
		Year:             now.Year(),
	}
	for _, sec := range seo.Sections {
		p.Sections = append(p.Sections, sec.Anchor)
	}
	for _, sc := range site.Schemas(services, testimonials, now) {
		js, err := sc.JSON()
		if err != nil {
			return nil, err
		}
		// json.Marshal escapes <, > and &, the document cannot close the script element.
		p.Schemas = append(p.Schemas, template.JS(js))
	}
	return p, nil
}

// Renderer executes the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded page template and its partials.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.tmpl.html", "templates/*.part.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render writes the formatted page to w.
func (r *Renderer) Render(w io.Writer, p *Page) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, pageTemplate, p); err != nil {
		return fmt.Errorf("executing %s: %w", pageTemplate, err)
	}
	if _, err := w.Write(gohtml.FormatBytes(buf.Bytes())); err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	return nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"lkr":   lkr,
		"stars": stars,
		"title": title,
		"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
		"add":   func(a, b int) int { return a + b },
	}
}

// lkr formats a price, 4500 becomes "LKR 4,500".
func lkr(price int) string {
	s := strconv.Itoa(price)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return "LKR " + s
}

func stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// title turns a slug such as "sound-healing" into "Sound Healing".
func title(slug any) string {
	words := strings.Split(fmt.Sprint(slug), "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
