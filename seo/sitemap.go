package seo

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Sitemap renders sitemap.xml for the home page and its sections.
func (s Site) Sitemap(now time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNS)

	lastmod := now.UTC().Format("2006-01-02")
	add := func(loc, priority string) {
		u := urlset.CreateElement("url")
		u.CreateElement("loc").SetText(loc)
		u.CreateElement("lastmod").SetText(lastmod)
		u.CreateElement("changefreq").SetText("weekly")
		u.CreateElement("priority").SetText(priority)
	}

	add(s.base()+"/", "1.0")
	for _, sec := range Sections {
		add(s.base()+"/#"+sec.Anchor, "0.8")
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("writing sitemap: %w", err)
	}
	return out, nil
}

// Robots returns robots.txt, which keeps crawlers out of the API.
func (s Site) Robots() string {
	return "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /api/\n" +
		"Disallow: /ws/\n" +
		"\n" +
		"Sitemap: " + s.base() + "/sitemap.xml\n"
}
