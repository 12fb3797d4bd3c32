// Package websocket streams a snow field to browsers over a websocket.
//
// Every connection mounts its own simulator: the client announces its
// viewport, then sends pointer, resize and optional camera frames while the
// server pushes one frame message per tick until the connection closes.
package websocket

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	field "github.com/healerlk/healer/particle-field"
)

const (
	// maxMessageSize bounds client messages, a 320x240 grayscale camera frame fits.
	maxMessageSize = 128 << 10
	writeWait      = 2 * time.Second
)

// Locator finds a face center in a grayscale frame.
type Locator interface {
	Locate(pixels []uint8, width, height int) (x, y float64, ok bool)
}

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler serves particle field sessions.
type Handler struct {
	logger  *slog.Logger
	cfg     field.Config
	fps     int
	locator Locator

	// mu orders session registration against Close.
	mu       sync.Mutex
	closed   bool
	sessions sync.WaitGroup
	shutdown chan struct{}
}

// NewHandler returns a handler running fields built from cfg at fps frames
// per second. locator may be nil, face messages are then ignored.
func NewHandler(logger *slog.Logger, cfg field.Config, fps int, locator Locator) *Handler {
	return &Handler{
		logger:   logger,
		cfg:      cfg,
		fps:      fps,
		locator:  locator,
		shutdown: make(chan struct{}),
	}
}

// ServeHTTP upgrades the connection and runs the session until it closes.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.register() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.sessions.Done()

	// Upgrade the http connection to a WebSocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			h.logger.Error("upgrading websocket", "error", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-h.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	h.serve(ctx, conn, r.RemoteAddr)
}

// register accounts for a new session, false once the handler is closed.
func (h *Handler) register() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.sessions.Add(1)
	return true
}

// Close ends all running sessions and waits for them. Connections arriving
// afterwards are refused.
func (h *Handler) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.shutdown)
	}
	h.mu.Unlock()
	h.sessions.Wait()
}

func (h *Handler) serve(ctx context.Context, conn *websocket.Conn, remote string) {
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A canceled session unblocks the reader by closing the connection.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)

	var m message
	if err := conn.ReadJSON(&m); err != nil {
		h.logger.Debug("reading mount message", "remote", remote, "error", err)
		return
	}
	if m.Type != typeMount {
		h.logger.Warn("first message is not a mount", "remote", remote, "type", m.Type)
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "mount first"),
			time.Now().Add(writeWait))
		return
	}

	surface := newFrameSurface(conn, func(err error) {
		h.logger.Debug("writing frame", "remote", remote, "error", err)
		cancel()
	})
	seed := uint64(time.Now().UnixNano())
	sim := field.Mount(surface, m.Width, m.Height, h.cfg, rand.New(rand.NewPCG(seed, seed>>1)))
	defer sim.Unmount()

	h.logger.Info("field mounted", "remote", remote, "width", m.Width, "height", m.Height, "active", sim.Active())

	ticker := field.NewTicker(h.fps)
	defer ticker.Stop()
	sim.Start(ctx, ticker)

	for {
		var m message
		if err := conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
				h.logger.Warn("reading message", "remote", remote, "error", err)
			}
			return
		}
		h.handle(sim, m)
	}
}

// handle applies a client message to the session's simulator.
func (h *Handler) handle(sim *field.Simulator, m message) {
	switch m.Type {
	case typePointer:
		sim.MovePointer(m.X, m.Y)
	case typeResize:
		if err := sim.Resize(m.Width, m.Height); err != nil {
			h.logger.Error("resizing field", "error", err)
		}
	case typeFace:
		if h.locator == nil || !sim.Active() {
			return
		}
		fx, fy, ok := h.locator.Locate(m.Pixels, m.Width, m.Height)
		if !ok {
			return
		}
		w, hh := sim.Field().Size()
		// The camera image is mirrored, so the face moves like the user does.
		sim.MovePointer((1-fx/float64(m.Width))*w, fy/float64(m.Height)*hh)
	default:
		h.logger.Debug("ignoring message", "type", m.Type)
	}
}
