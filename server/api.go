package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/healerlk/healer/domain"
)

const maxBodySize = 64 << 10

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		// The status line is out, an encoding failure cannot be reported anymore.
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondWithValidationError lists the rejected fields next to the message.
func respondWithValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	respondWithJSON(w, http.StatusBadRequest, map[string]any{
		"error":  verr.Error(),
		"fields": verr.Fields,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}

func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ActiveServices()
	if err != nil {
		s.logger.Error("listing services", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not load services")
		return
	}
	respondWithJSON(w, http.StatusOK, services)
}

func (s *Server) handleTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := s.store.ApprovedTestimonials()
	if err != nil {
		s.logger.Error("listing testimonials", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not load testimonials")
		return
	}
	respondWithJSON(w, http.StatusOK, testimonials)
}

func (s *Server) handleTips(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if c := r.URL.Query().Get("category"); c != "" {
		var err error
		if category, err = domain.ParseCategory(c); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	posts, err := s.store.PublishedPosts(category)
	if err != nil {
		s.logger.Error("listing tips", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not load tips")
		return
	}
	respondWithJSON(w, http.StatusOK, posts)
}

// bookingRequest is the JSON body of a booking form.
type bookingRequest struct {
	ServiceID       string `json:"service_id"`
	ClientName      string `json:"client_name"`
	ClientEmail     string `json:"client_email"`
	ClientPhone     string `json:"client_phone"`
	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`
	Notes           string `json:"notes"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b := &domain.Booking{
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
	}
	if req.ServiceID != "" {
		id, err := uuid.Parse(req.ServiceID)
		if err != nil {
			respondWithValidationError(w, &domain.ValidationError{Fields: map[string]string{"service_id": "is not a valid id"}})
			return
		}
		b.ServiceID = id
	}

	b.Normalize()
	if err := b.Validate(s.now()); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondWithValidationError(w, verr)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	service, err := s.store.GetService(b.ServiceID)
	switch {
	case errors.Is(err, domain.ErrServiceNotFound):
		respondWithValidationError(w, &domain.ValidationError{Fields: map[string]string{"service_id": "is not a known service"}})
		return
	case err != nil:
		s.logger.Error("getting service", "id", b.ServiceID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not book the appointment")
		return
	case !service.Active:
		respondWithError(w, http.StatusBadRequest, domain.ErrServiceInactive.Error())
		return
	}

	if err := s.store.InsertBooking(b); err != nil {
		s.logger.Error("storing booking", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not book the appointment")
		return
	}
	s.logger.Info("booking received", "id", b.ID, "service", service.Slug, "date", b.AppointmentDate, "time", b.AppointmentTime)

	if err := s.relay.Send(r.Context(), b, service); err != nil {
		// The booking is stored, the practitioner still sees it in the admin API.
		s.logger.Error("relaying booking", "id", b.ID, "error", err)
		respondWithJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "the booking was saved but the confirmation could not be sent",
			"booking": b,
		})
		return
	}
	respondWithJSON(w, http.StatusCreated, b)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var c domain.ContactSubmission
	if err := decodeJSON(w, r, &c); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// Ids are assigned by the store.
	c.ID = uuid.Nil
	c.CreatedAt = s.now().UTC()

	c.Normalize()
	if err := c.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			respondWithValidationError(w, verr)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.InsertContactSubmission(&c); err != nil {
		s.logger.Error("storing contact submission", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not send the message")
		return
	}
	s.logger.Info("contact submission received", "id", c.ID, "subject", c.Subject)
	respondWithJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	var status domain.BookingStatus
	if st := r.URL.Query().Get("status"); st != "" {
		var err error
		if status, err = domain.ParseBookingStatus(st); err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	bookings, err := s.store.ListBookings(status)
	if err != nil {
		s.logger.Error("listing bookings", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not load bookings")
		return
	}
	respondWithJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err := s.store.UpdateBookingStatus(id, status)
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		respondWithError(w, http.StatusNotFound, "booking not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		respondWithError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.logger.Error("updating booking", "id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not update the booking")
	default:
		s.logger.Info("booking status changed", "id", id, "status", status)
		respondWithJSON(w, http.StatusOK, b)
	}
}

func (s *Server) handleListContact(w http.ResponseWriter, r *http.Request) {
	submissions, err := s.store.ListContactSubmissions()
	if err != nil {
		s.logger.Error("listing contact submissions", "error", err)
		respondWithError(w, http.StatusInternalServerError, "could not load messages")
		return
	}
	respondWithJSON(w, http.StatusOK, submissions)
}
