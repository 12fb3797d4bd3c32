// Package server is the HTTP front of the healer site: the rendered page,
// the booking and contact API, the admin API, the particle field websocket
// and the SEO documents.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/healerlk/healer/config"
	"github.com/healerlk/healer/domain"
	field "github.com/healerlk/healer/particle-field"
	"github.com/healerlk/healer/relay"
	"github.com/healerlk/healer/seo"
	"github.com/healerlk/healer/site"
)

// Store is the storage the server reads and writes.
type Store interface {
	domain.ServiceRepository
	domain.BookingRepository
	domain.TestimonialRepository
	domain.PostRepository
	domain.ContactRepository
	Ping() error
}

// FieldHandler serves particle field sessions over a websocket.
type FieldHandler interface {
	http.Handler
	Close()
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	logger   *slog.Logger
	store    Store
	relay    *relay.Client
	renderer *site.Renderer
	site     seo.Site
	field    FieldHandler
	fieldCfg field.Config
	static   fs.FS

	adminToken      string
	address         string
	shutdownTimeout time.Duration

	ogOnce  sync.Once
	ogImage []byte
	ogErr   error

	now func() time.Time
}

// New wires a server. fieldHandler may be nil, the websocket route is then
// not registered.
func New(logger *slog.Logger, cfg *config.Config, store Store, rc *relay.Client, fieldHandler FieldHandler) (*Server, error) {
	renderer, err := site.NewRenderer()
	if err != nil {
		return nil, err
	}

	fieldCfg := field.DefaultConfig()
	if cfg.Field.Count > 0 {
		fieldCfg.Count = cfg.Field.Count
	}

	return &Server{
		logger:          logger,
		store:           store,
		relay:           rc,
		renderer:        renderer,
		site:            seo.Site{URL: cfg.Site.URL, Name: cfg.Site.Name},
		field:           fieldHandler,
		fieldCfg:        fieldCfg,
		static:          os.DirFS(cfg.Server.StaticDir),
		adminToken:      cfg.Server.AdminToken,
		address:         cfg.Server.Address,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
		now:             time.Now,
	}, nil
}

// Handler returns the routed handler wrapped in the logging and
// compression middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /static/{path...}", s.handleStatic)
	mux.HandleFunc("GET /og-image.png", s.handleOGImage)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/services", s.handleServices)
	mux.HandleFunc("GET /api/testimonials", s.handleTestimonials)
	mux.HandleFunc("GET /api/tips", s.handleTips)
	mux.HandleFunc("POST /api/bookings", s.handleCreateBooking)
	mux.HandleFunc("POST /api/contact", s.handleCreateContact)

	mux.Handle("GET /api/admin/bookings", s.requireAdmin(http.HandlerFunc(s.handleListBookings)))
	mux.Handle("PATCH /api/admin/bookings/{id}", s.requireAdmin(http.HandlerFunc(s.handleUpdateBooking)))
	mux.Handle("GET /api/admin/contact", s.requireAdmin(http.HandlerFunc(s.handleListContact)))

	if s.field != nil {
		mux.Handle("GET /ws/field", s.field)
	}

	return s.logRequests(compress(mux))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully:
// field sessions are closed and in-flight requests get the configured
// shutdown timeout to complete.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving", "address", s.address)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", s.address, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	if s.field != nil {
		s.field.Close()
	}

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
