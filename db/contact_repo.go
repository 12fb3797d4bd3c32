package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

var _ domain.ContactRepository = (*Repository)(nil)

type dbContactSubmission struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Phone     string    `db:"phone"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}

// InsertContactSubmission stores a contact form message, filling in its id
// and creation time when missing.
func (repo *Repository) InsertContactSubmission(c *domain.ContactSubmission) error {
	if c.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating uuid: %w", err)
		}
		c.ID = id
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO contact_submission(id, name, email, phone, subject, message, created_at) VALUES (?,?,?,?,?,?,?)`
	_, err := repo.dbConn.Exec(query, c.ID, c.Name, c.Email, c.Phone, c.Subject, c.Message, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting contact submission: %w", err)
	}
	return nil
}

// ListContactSubmissions retrieves contact messages newest first.
func (repo *Repository) ListContactSubmissions() ([]*domain.ContactSubmission, error) {
	var rows []*dbContactSubmission
	if err := repo.dbConn.Select(&rows, `SELECT * FROM contact_submission ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("listing contact submissions: %w", err)
	}

	submissions := make([]*domain.ContactSubmission, len(rows))
	for i, c := range rows {
		submissions[i] = &domain.ContactSubmission{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Phone:     c.Phone,
			Subject:   c.Subject,
			Message:   c.Message,
			CreatedAt: c.CreatedAt,
		}
	}
	return submissions, nil
}
