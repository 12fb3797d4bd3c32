package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// BookingRepository stores appointment requests.
type BookingRepository interface {
	InsertBooking(b *Booking) error

	// GetBooking returns ErrBookingNotFound when no booking has the given id.
	GetBooking(id uuid.UUID) (*Booking, error)

	// ListBookings returns bookings newest first. An empty status lists all of them.
	ListBookings(status BookingStatus) ([]*Booking, error)

	// UpdateBookingStatus moves a booking to a new status if the transition is allowed.
	UpdateBookingStatus(id uuid.UUID, status BookingStatus) (*Booking, error)
}

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// ParseBookingStatus accepts the four known statuses.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// CanTransition reports whether a booking in status s may move to next.
// Cancelled and completed bookings are final.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	maxNotesLength   = 2000
	maxMessageLength = 5000
)

// Booking is an appointment request for a service.
type Booking struct {
	ID              uuid.UUID     `json:"id"`
	ServiceID       uuid.UUID     `json:"service_id"`
	ClientName      string        `json:"client_name"`
	ClientEmail     string        `json:"client_email"`
	ClientPhone     string        `json:"client_phone"`
	AppointmentDate string        `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string        `json:"appointment_time"` // HH:MM
	Notes           string        `json:"notes"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
}

// TimeSlots returns the appointment times offered each day: every half hour
// from 09:00 to 17:00.
func TimeSlots() []string {
	var slots []string
	for m := 9 * 60; m <= 17*60; m += 30 {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

func isTimeSlot(s string) bool {
	for _, slot := range TimeSlots() {
		if slot == s {
			return true
		}
	}
	return false
}

// Normalize trims the free text fields.
func (b *Booking) Normalize() {
	b.ClientName = strings.TrimSpace(b.ClientName)
	b.ClientEmail = strings.TrimSpace(b.ClientEmail)
	b.ClientPhone = strings.TrimSpace(b.ClientPhone)
	b.AppointmentDate = strings.TrimSpace(b.AppointmentDate)
	b.AppointmentTime = strings.TrimSpace(b.AppointmentTime)
	b.Notes = strings.TrimSpace(b.Notes)
}

// Validate checks a booking request against the calendar day of now.
func (b *Booking) Validate(now time.Time) error {
	var verr ValidationError

	if b.ServiceID == uuid.Nil {
		verr.add("service_id", "is required")
	}
	if b.ClientName == "" {
		verr.add("client_name", "is required")
	}
	if b.ClientEmail == "" {
		verr.add("client_email", "is required")
	} else if !validEmail(b.ClientEmail) {
		verr.add("client_email", "is not a valid email address")
	}
	if b.ClientPhone == "" {
		verr.add("client_phone", "is required")
	}

	if b.AppointmentDate == "" {
		verr.add("appointment_date", "is required")
	} else if d, err := time.Parse(DateLayout, b.AppointmentDate); err != nil {
		verr.add("appointment_date", "must be YYYY-MM-DD")
	} else if d.Format(DateLayout) < now.Format(DateLayout) {
		verr.add("appointment_date", "is in the past")
	}

	if b.AppointmentTime == "" {
		verr.add("appointment_time", "is required")
	} else if !isTimeSlot(b.AppointmentTime) {
		verr.add("appointment_time", "is not an available time slot")
	}

	if utf8.RuneCountInString(b.Notes) > maxNotesLength {
		verr.add("notes", fmt.Sprintf("is longer than %d characters", maxNotesLength))
	}
	return verr.err()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
