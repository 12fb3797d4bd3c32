package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

var _ domain.ServiceRepository = (*Repository)(nil)

type dbService struct {
	ID               uuid.UUID `db:"id"`
	Slug             string    `db:"slug"`
	Title            string    `db:"title"`
	Description      string    `db:"description"`
	ShortDescription string    `db:"short_description"`
	DurationMinutes  int       `db:"duration_minutes"`
	Price            int       `db:"price"`
	ImageURL         string    `db:"image_url"`
	Active           bool      `db:"is_active"`
	SortOrder        int       `db:"sort_order"`
}

func toDomainService(s *dbService) *domain.Service {
	return &domain.Service{
		ID:               s.ID,
		Slug:             s.Slug,
		Title:            s.Title,
		Description:      s.Description,
		ShortDescription: s.ShortDescription,
		DurationMinutes:  s.DurationMinutes,
		Price:            s.Price,
		ImageURL:         s.ImageURL,
		Active:           s.Active,
		SortOrder:        s.SortOrder,
	}
}

// ActiveServices retrieves the bookable services in display order.
func (repo *Repository) ActiveServices() ([]*domain.Service, error) {
	var dbServices []*dbService
	query := `SELECT * FROM service WHERE is_active = 1 ORDER BY sort_order, title`

	if err := repo.dbConn.Select(&dbServices, query); err != nil {
		return nil, fmt.Errorf("getting active services: %w", err)
	}

	services := make([]*domain.Service, len(dbServices))
	for i, s := range dbServices {
		services[i] = toDomainService(s)
	}
	return services, nil
}

// GetService retrieves a service by id.
func (repo *Repository) GetService(id uuid.UUID) (*domain.Service, error) {
	var s dbService
	query := `SELECT * FROM service WHERE id = ?`

	if err := repo.dbConn.Get(&s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting service %s: %w", id, domain.ErrServiceNotFound)
		}
		return nil, fmt.Errorf("getting service %s: %w", id, err)
	}
	return toDomainService(&s), nil
}
