package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ContactRepository interface {
	InsertContactSubmission(c *ContactSubmission) error
	// ListContactSubmissions returns submissions newest first.
	ListContactSubmissions() ([]*ContactSubmission, error)
}

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *ContactSubmission) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Subject = strings.TrimSpace(c.Subject)
	c.Message = strings.TrimSpace(c.Message)
}

func (c *ContactSubmission) Validate() error {
	var verr ValidationError

	if c.Name == "" {
		verr.add("name", "is required")
	}
	if c.Email == "" {
		verr.add("email", "is required")
	} else if !validEmail(c.Email) {
		verr.add("email", "is not a valid email address")
	}
	if c.Subject == "" {
		verr.add("subject", "is required")
	}
	if c.Message == "" {
		verr.add("message", "is required")
	} else if utf8.RuneCountInString(c.Message) > maxMessageLength {
		verr.add("message", fmt.Sprintf("is longer than %d characters", maxMessageLength))
	}
	return verr.err()
}
