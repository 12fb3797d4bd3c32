package seo

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/healerlk/healer/domain"
)

const (
	schemaContext = "https://schema.org"
	businessName  = "The Healer - Holistic Healing & Ayurvedic Wellness"
)

// Schema is a JSON-LD document.
type Schema map[string]any

func (s Site) id(fragment string) map[string]any {
	return map[string]any{"@id": s.base() + "/#" + fragment}
}

// Organization describes the practice as a local medical business.
func (s Site) Organization(services []*domain.Service) Schema {
	offers := make([]any, 0, len(services))
	for _, svc := range services {
		offers = append(offers, map[string]any{
			"@type": "Offer",
			"itemOffered": map[string]any{
				"@type":       "Service",
				"name":        svc.Title,
				"description": svc.ShortDescription,
			},
		})
	}

	return Schema{
		"@context":      schemaContext,
		"@type":         []string{"LocalBusiness", "MedicalBusiness", "HealthAndBeautyBusiness"},
		"@id":           s.base() + "/#organization",
		"name":          businessName,
		"alternateName": "The Healer",
		"url":           s.base(),
		"logo":          s.base() + "/static/logo.png",
		"image":         s.base() + "/og-image.png",
		"description":   "Traditional Ayurvedic healing, Yoga therapy, Sound healing with Bhajans, and Buddhist meditation practices led by Dr. Umesha Dilhara. Ancient wisdom meets modern healing for holistic wellness.",
		"priceRange":    priceRange(services),
		"email":         "info@healer.lk",
		"address": map[string]any{
			"@type":           "PostalAddress",
			"addressCountry":  "LK",
			"addressLocality": "Colombo",
			"addressRegion":   "Western Province",
		},
		"geo": map[string]any{
			"@type":     "GeoCoordinates",
			"latitude":  "6.9271",
			"longitude": "79.8612",
		},
		"openingHoursSpecification": []any{
			map[string]any{
				"@type":     "OpeningHoursSpecification",
				"dayOfWeek": []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
				"opens":     "09:00",
				"closes":    "18:00",
			},
			map[string]any{
				"@type":     "OpeningHoursSpecification",
				"dayOfWeek": "Saturday",
				"opens":     "09:00",
				"closes":    "14:00",
			},
		},
		"hasOfferCatalog": map[string]any{
			"@type":           "OfferCatalog",
			"name":            "Healing Services",
			"itemListElement": offers,
		},
	}
}

// priceRange spans the cheapest to the dearest service, "LKR 2,500 - LKR 8,000".
func priceRange(services []*domain.Service) string {
	if len(services) == 0 {
		return ""
	}
	lo, hi := services[0].Price, services[0].Price
	for _, svc := range services[1:] {
		lo = min(lo, svc.Price)
		hi = max(hi, svc.Price)
	}
	return "LKR " + thousands(lo) + " - LKR " + thousands(hi)
}

func thousands(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// Physician describes the practitioner.
func (s Site) Physician() Schema {
	credential := func(name, category string) map[string]any {
		return map[string]any{
			"@type":              "EducationalOccupationalCredential",
			"name":               name,
			"credentialCategory": category,
		}
	}
	return Schema{
		"@context":      schemaContext,
		"@type":         "Physician",
		"@id":           s.base() + "/#physician",
		"name":          "Dr. Umesha Dilhara",
		"alternateName": "The Healer",
		"url":           s.base(),
		"image":         s.base() + "/static/doctor-profile.jpg",
		"jobTitle":      "Ayurvedic Practitioner & Holistic Healer",
		"description":   "Certified Ayurvedic physician with over 15 years of experience in traditional healing arts, specializing in Ayurveda, Yoga therapy, Sound healing, and Buddhist meditation.",
		"knowsAbout": []string{
			"Ayurvedic Medicine", "Yoga Therapy", "Sound Healing", "Buddhist Meditation",
			"Panchakarma", "Marma Therapy", "Pranayama",
		},
		"hasCredential": []any{
			credential("Bachelor of Ayurvedic Medicine & Surgery (BAMS)", "degree"),
			credential("Yoga Alliance Certified Instructor (RYT-500)", "certification"),
			credential("Sound Healing Practitioner Certification", "certification"),
			credential("Buddhist Meditation Teacher Training", "certification"),
		},
		"worksFor":         s.id("organization"),
		"medicalSpecialty": []string{"Ayurvedic Medicine", "Holistic Medicine", "Integrative Medicine"},
	}
}

// Service describes one bookable service. Its offer stays valid until the
// end of the year after now.
func (s Site) Service(svc *domain.Service, now time.Time) Schema {
	validUntil := time.Date(now.Year()+1, time.December, 31, 0, 0, 0, 0, time.UTC)
	return Schema{
		"@context":    schemaContext,
		"@type":       "Service",
		"@id":         s.base() + "/#service-" + svc.Slug,
		"serviceType": svc.Title,
		"name":        svc.Title,
		"description": svc.ShortDescription,
		"provider":    s.id("organization"),
		"offers": map[string]any{
			"@type":           "Offer",
			"price":           strconv.Itoa(svc.Price),
			"priceCurrency":   "LKR",
			"availability":    "https://schema.org/InStock",
			"url":             s.base() + "/#services",
			"priceValidUntil": validUntil.Format(domain.DateLayout),
		},
		"areaServed": map[string]any{
			"@type": "Country",
			"name":  "Sri Lanka",
		},
	}
}

// Reviews aggregates the approved testimonials. It returns nil when there
// are none, an empty rating is not valid structured data.
func (s Site) Reviews(testimonials []*domain.Testimonial) Schema {
	if len(testimonials) == 0 {
		return nil
	}
	reviews := make([]any, 0, len(testimonials))
	for _, t := range testimonials {
		reviews = append(reviews, map[string]any{
			"@type":  "Review",
			"author": map[string]any{"@type": "Person", "name": t.ClientName},
			"reviewRating": map[string]any{
				"@type":       "Rating",
				"ratingValue": strconv.Itoa(t.Rating),
				"bestRating":  "5",
			},
			"reviewBody": t.Text,
		})
	}
	return Schema{
		"@context": schemaContext,
		"@type":    "Organization",
		"@id":      s.base() + "/#organization",
		"aggregateRating": map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": strconv.FormatFloat(domain.AverageRating(testimonials), 'f', 1, 64),
			"reviewCount": strconv.Itoa(len(testimonials)),
			"bestRating":  "5",
			"worstRating": "1",
		},
		"review": reviews,
	}
}

// Sections are the anchors of the single page, in navigation order.
var Sections = []struct {
	Anchor, Name string
}{
	{"about", "About"},
	{"services", "Services"},
	{"testimonials", "Testimonials"},
	{"tips", "Tips"},
	{"booking", "Booking"},
	{"contact", "Contact"},
}

// Breadcrumb lists the home page followed by every section.
func (s Site) Breadcrumb() Schema {
	items := []any{map[string]any{
		"@type":    "ListItem",
		"position": 1,
		"name":     "Home",
		"item":     s.base(),
	}}
	for i, sec := range Sections {
		items = append(items, map[string]any{
			"@type":    "ListItem",
			"position": i + 2,
			"name":     sec.Name,
			"item":     s.base() + "/#" + sec.Anchor,
		})
	}
	return Schema{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}
}

func (s Site) WebSite() Schema {
	return Schema{
		"@context":    schemaContext,
		"@type":       "WebSite",
		"@id":         s.base() + "/#website",
		"url":         s.base(),
		"name":        s.Name,
		"description": "Traditional Ayurvedic healing, Yoga therapy, Sound healing, and Buddhist meditation in Sri Lanka",
		"publisher":   s.id("organization"),
		"inLanguage":  "en-US",
	}
}

// FAQ answers the common questions. Session lengths come from the catalog.
func (s Site) FAQ(services []*domain.Service) Schema {
	question := func(q, a string) map[string]any {
		return map[string]any{
			"@type":          "Question",
			"name":           q,
			"acceptedAnswer": map[string]any{"@type": "Answer", "text": a},
		}
	}

	durations := "Session durations vary by service."
	if len(services) > 0 {
		durations = "Session durations vary by service:"
		for i, svc := range services {
			sep := ","
			if i == 0 {
				sep = ""
			}
			durations += fmt.Sprintf("%s %s (%d min)", sep, svc.Title, svc.DurationMinutes)
		}
		durations += "."
	}

	return Schema{
		"@context": schemaContext,
		"@type":    "FAQPage",
		"mainEntity": []any{
			question("What is Ayurvedic healing?",
				"Ayurvedic healing is a traditional Indian system of medicine that focuses on balancing the body's doshas (Vata, Pitta, Kapha) through personalized treatments, herbal remedies, diet, and lifestyle adjustments."),
			question("What services do you offer?",
				"We offer Ayurvedic healing consultations, Panchakarma treatments, Yoga therapy, Sound healing with Bhajans, Buddhist meditation, Marma therapy, and Pranayama breathwork sessions."),
			question("How long is a typical session?", durations),
		},
	}
}

// Schemas returns every structured data document of the home page.
func (s Site) Schemas(services []*domain.Service, testimonials []*domain.Testimonial, now time.Time) []Schema {
	schemas := []Schema{
		s.Organization(services),
		s.Physician(),
	}
	if r := s.Reviews(testimonials); r != nil {
		schemas = append(schemas, r)
	}
	schemas = append(schemas, s.Breadcrumb(), s.WebSite(), s.FAQ(services))
	for _, svc := range services {
		schemas = append(schemas, s.Service(svc, now))
	}
	return schemas
}

// JSON encodes a schema for a <script type="application/ld+json"> element.
func (sc Schema) JSON() (string, error) {
	b, err := json.Marshal(sc)
	if err != nil {
		return "", fmt.Errorf("encoding schema: %w", err)
	}
	return string(b), nil
}
