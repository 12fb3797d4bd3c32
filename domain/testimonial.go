package domain

import (
	"time"

	"github.com/google/uuid"
)

type TestimonialRepository interface {
	// ApprovedTestimonials returns approved testimonials newest first.
	ApprovedTestimonials() ([]*Testimonial, error)
}

type Testimonial struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"client_name"`
	ClientTitle string    `json:"client_title"`
	Text        string    `json:"testimonial"`
	Rating      int       `json:"rating"` // 1 to 5
	ImageURL    string    `json:"image_url,omitempty"`
	VideoURL    string    `json:"video_url,omitempty"`
	Featured    bool      `json:"is_featured"`
	Approved    bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Pair splits testimonials into the pages of the carousel. Every page holds
// two testimonials; a trailing single one is shown together with the first.
func Pair(ts []*Testimonial) [][]*Testimonial {
	var pages [][]*Testimonial
	for i := 0; i < len(ts); i += 2 {
		if i+1 < len(ts) {
			pages = append(pages, ts[i:i+2:i+2])
			continue
		}
		page := []*Testimonial{ts[i]}
		if len(ts) > 1 {
			page = append(page, ts[0])
		}
		pages = append(pages, page)
	}
	return pages
}

// AverageRating returns the mean rating, zero for no testimonials.
func AverageRating(ts []*Testimonial) float64 {
	if len(ts) == 0 {
		return 0
	}
	sum := 0
	for _, t := range ts {
		sum += t.Rating
	}
	return float64(sum) / float64(len(ts))
}
