// Package relay forwards booking requests to a form handling endpoint,
// which e-mails them to the practitioner.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/healerlk/healer/domain"
)

// ErrRejected is returned when the endpoint answers with a non-2xx status.
var ErrRejected = errors.New("relay rejected the submission")

// Client posts bookings to a Formspree style endpoint.
type Client struct {
	endpoint string
	timeout  time.Duration
	http     *http.Client
}

// New returns a client for endpoint. An empty endpoint disables the relay.
func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		timeout:  timeout,
		http:     &http.Client{},
	}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.endpoint != ""
}

// Submission is the document sent for a booking.
type Submission struct {
	Service string `json:"service"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

// NewSubmission describes booking b of service s. A nil service falls back
// to the raw service id.
func NewSubmission(b *domain.Booking, s *domain.Service) Submission {
	sub := Submission{
		Service: b.ServiceID.String(),
		Name:    b.ClientName,
		Email:   b.ClientEmail,
		Phone:   b.ClientPhone,
		Date:    b.AppointmentDate,
		Time:    b.AppointmentTime,
		Notes:   b.Notes,
	}
	if s != nil {
		sub.Service = s.Label()
	}
	if sub.Notes == "" {
		sub.Notes = "No additional notes"
	}
	return sub
}

// Send posts the booking. It is a no-op for a disabled client.
func (c *Client) Send(ctx context.Context, b *domain.Booking, s *domain.Service) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(NewSubmission(b, s))
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting to relay: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	return nil
}
