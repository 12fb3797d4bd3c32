package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

var _ domain.TestimonialRepository = (*Repository)(nil)

type dbTestimonial struct {
	ID          uuid.UUID `db:"id"`
	ClientName  string    `db:"client_name"`
	ClientTitle string    `db:"client_title"`
	Text        string    `db:"testimonial"`
	Rating      int       `db:"rating"`
	ImageURL    string    `db:"image_url"`
	VideoURL    string    `db:"video_url"`
	Featured    bool      `db:"is_featured"`
	Approved    bool      `db:"is_approved"`
	CreatedAt   time.Time `db:"created_at"`
}

// ApprovedTestimonials retrieves approved testimonials newest first.
func (repo *Repository) ApprovedTestimonials() ([]*domain.Testimonial, error) {
	var rows []*dbTestimonial
	query := `SELECT * FROM testimonial WHERE is_approved = 1 ORDER BY created_at DESC`

	if err := repo.dbConn.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("getting testimonials: %w", err)
	}

	testimonials := make([]*domain.Testimonial, len(rows))
	for i, t := range rows {
		testimonials[i] = &domain.Testimonial{
			ID:          t.ID,
			ClientName:  t.ClientName,
			ClientTitle: t.ClientTitle,
			Text:        t.Text,
			Rating:      t.Rating,
			ImageURL:    t.ImageURL,
			VideoURL:    t.VideoURL,
			Featured:    t.Featured,
			Approved:    t.Approved,
			CreatedAt:   t.CreatedAt,
		}
	}
	return testimonials, nil
}
