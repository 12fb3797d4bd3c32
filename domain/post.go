package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PostRepository interface {
	// PublishedPosts returns published posts newest first, restricted to
	// category unless it is empty.
	PublishedPosts(category Category) ([]*Post, error)
}

// Category groups wellness tips.
type Category string

const (
	CategoryAyurveda     Category = "ayurveda"
	CategoryYoga         Category = "yoga"
	CategorySoundHealing Category = "sound-healing"
	CategoryMeditation   Category = "meditation"
	CategoryWellness     Category = "wellness"
)

// Categories lists the tip categories in display order.
var Categories = []Category{
	CategoryAyurveda,
	CategoryYoga,
	CategorySoundHealing,
	CategoryMeditation,
	CategoryWellness,
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Post is a wellness tip or article.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Category      Category  `json:"category"`
	Tags          []string  `json:"tags"`
	Published     bool      `json:"is_published"`
	PublishedAt   time.Time `json:"published_at"`
}
