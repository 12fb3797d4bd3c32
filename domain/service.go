package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ServiceRepository reads the catalog of healing services.
type ServiceRepository interface {
	// ActiveServices returns the bookable services ordered by sort order.
	ActiveServices() ([]*Service, error)

	// GetService returns a single service, active or not.
	// It returns ErrServiceNotFound when no service has the given id.
	GetService(id uuid.UUID) (*Service, error)
}

// Service is a bookable session offered by the practitioner.
type Service struct {
	ID               uuid.UUID `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	ShortDescription string    `json:"short_description"`
	DurationMinutes  int       `json:"duration_minutes"`
	Price            int       `json:"price"` // LKR
	ImageURL         string    `json:"image_url,omitempty"`
	Active           bool      `json:"is_active"`
	SortOrder        int       `json:"sort_order"`
}

// Label describes the service the way booking notifications show it.
func (s *Service) Label() string {
	return fmt.Sprintf("%s (%d min - LKR %d)", s.Title, s.DurationMinutes, s.Price)
}
