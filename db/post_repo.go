package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

var _ domain.PostRepository = (*Repository)(nil)

type dbPost struct {
	ID            uuid.UUID `db:"id"`
	Slug          string    `db:"slug"`
	Title         string    `db:"title"`
	Excerpt       string    `db:"excerpt"`
	Content       string    `db:"content"`
	FeaturedImage string    `db:"featured_image"`
	Category      string    `db:"category"`
	Tags          Tags      `db:"tags"`
	Published     bool      `db:"is_published"`
	PublishedAt   time.Time `db:"published_at"`
}

// PublishedPosts retrieves published posts newest first.
func (repo *Repository) PublishedPosts(category domain.Category) ([]*domain.Post, error) {
	var rows []*dbPost
	var err error
	if category == "" {
		err = repo.dbConn.Select(&rows, `SELECT * FROM post WHERE is_published = 1 ORDER BY published_at DESC`)
	} else {
		err = repo.dbConn.Select(&rows, `SELECT * FROM post WHERE is_published = 1 AND category = ? ORDER BY published_at DESC`, string(category))
	}
	if err != nil {
		return nil, fmt.Errorf("getting posts: %w", err)
	}

	posts := make([]*domain.Post, len(rows))
	for i, p := range rows {
		posts[i] = &domain.Post{
			ID:            p.ID,
			Slug:          p.Slug,
			Title:         p.Title,
			Excerpt:       p.Excerpt,
			Content:       p.Content,
			FeaturedImage: p.FeaturedImage,
			Category:      domain.Category(p.Category),
			Tags:          []string(p.Tags),
			Published:     p.Published,
			PublishedAt:   p.PublishedAt,
		}
	}
	return posts, nil
}
