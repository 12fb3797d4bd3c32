package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

var _ domain.BookingRepository = (*Repository)(nil)

type dbBooking struct {
	ID              uuid.UUID `db:"id"`
	ServiceID       uuid.UUID `db:"service_id"`
	ClientName      string    `db:"client_name"`
	ClientEmail     string    `db:"client_email"`
	ClientPhone     string    `db:"client_phone"`
	AppointmentDate string    `db:"appointment_date"`
	AppointmentTime string    `db:"appointment_time"`
	Notes           string    `db:"notes"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
}

func toDomainBooking(b *dbBooking) *domain.Booking {
	return &domain.Booking{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Notes:           b.Notes,
		Status:          domain.BookingStatus(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}

// InsertBooking stores a new booking. A missing id, status or creation time
// is filled in and written back to b.
func (repo *Repository) InsertBooking(b *domain.Booking) error {
	if b.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating uuid: %w", err)
		}
		b.ID = id
	}
	if b.Status == "" {
		b.Status = domain.StatusPending
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO booking(id, service_id, client_name, client_email, client_phone, appointment_date, appointment_time, notes, status, created_at)
			  VALUES (:id, :service_id, :client_name, :client_email, :client_phone, :appointment_date, :appointment_time, :notes, :status, :created_at)`

	_, err := repo.dbConn.NamedExec(query, &dbBooking{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Notes:           b.Notes,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("inserting booking %s: %w", b.ID, err)
	}
	return nil
}

// GetBooking retrieves a booking by id.
func (repo *Repository) GetBooking(id uuid.UUID) (*domain.Booking, error) {
	var b dbBooking
	if err := repo.dbConn.Get(&b, `SELECT * FROM booking WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting booking %s: %w", id, domain.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("getting booking %s: %w", id, err)
	}
	return toDomainBooking(&b), nil
}

// ListBookings retrieves bookings newest first, all of them for an empty status.
func (repo *Repository) ListBookings(status domain.BookingStatus) ([]*domain.Booking, error) {
	var dbBookings []*dbBooking
	var err error
	if status == "" {
		err = repo.dbConn.Select(&dbBookings, `SELECT * FROM booking ORDER BY created_at DESC, id DESC`)
	} else {
		err = repo.dbConn.Select(&dbBookings, `SELECT * FROM booking WHERE status = ? ORDER BY created_at DESC, id DESC`, string(status))
	}
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	bookings := make([]*domain.Booking, len(dbBookings))
	for i, b := range dbBookings {
		bookings[i] = toDomainBooking(b)
	}
	return bookings, nil
}

// UpdateBookingStatus applies a status transition and returns the updated booking.
func (repo *Repository) UpdateBookingStatus(id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error) {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var b dbBooking
	if err := tx.Get(&b, `SELECT * FROM booking WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting booking %s: %w", id, domain.ErrBookingNotFound)
		}
		return nil, fmt.Errorf("getting booking %s: %w", id, err)
	}

	current := domain.BookingStatus(b.Status)
	if !current.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current, status)
	}

	if _, err := tx.Exec(`UPDATE booking SET status = ? WHERE id = ?`, string(status), id); err != nil {
		return nil, fmt.Errorf("updating booking %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing status of booking %s: %w", id, err)
	}

	b.Status = string(status)
	return toDomainBooking(&b), nil
}
