package websocket

import (
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	field "github.com/healerlk/healer/particle-field"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() field.Config {
	cfg := field.DefaultConfig()
	cfg.Count = 12
	return cfg
}

func dial(t *testing.T, h *Handler) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(h)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dialing %s: %v", url, err)
	}
	return conn, func() {
		conn.Close()
		h.Close()
		srv.Close()
	}
}

func TestHandler_StreamsFrames(t *testing.T) {
	h := NewHandler(testLogger(), testConfig(), 120, nil)
	conn, teardown := dial(t, h)
	defer teardown()

	if err := conn.WriteJSON(message{Type: typeMount, Width: 300, Height: 200}); err != nil {
		t.Fatalf("writing mount: %v", err)
	}

	var prev uint64
	for i := 0; i < 3; i++ {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var frame frameMessage
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("reading frame %d: %v", i, err)
		}
		if frame.Type != typeFrame {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", typeFrame, frame.Type)
		}
		if frame.Seq <= prev {
			t.Fatalf("frame sequence went from %d to %d", prev, frame.Seq)
		}
		prev = frame.Seq
		if frame.Width != 300 || frame.Height != 200 {
			t.Fatalf("\nwanted:\n300x200\ngot:\n%dx%d", frame.Width, frame.Height)
		}
		if len(frame.Particles) != 12 {
			t.Fatalf("\nwanted:\n12 particles\ngot:\n%d", len(frame.Particles))
		}
		for _, p := range frame.Particles {
			// Painted positions are rounded, so they may touch the far edges.
			if p[0] < 0 || p[0] > 300 || p[1] < 0 || p[1] > 200 {
				t.Fatalf("particle painted out of the viewport: %v", p)
			}
		}

		if err := conn.WriteJSON(message{Type: typePointer, X: 150, Y: 100}); err != nil {
			t.Fatalf("writing pointer: %v", err)
		}
	}

	if err := conn.WriteJSON(message{Type: typeResize, Width: 640, Height: 480}); err != nil {
		t.Fatalf("writing resize: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		var frame frameMessage
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("waiting for a resized frame: %v", err)
		}
		if frame.Width == 640 && frame.Height == 480 {
			break
		}
	}
}

func TestHandler_RequiresMount(t *testing.T) {
	h := NewHandler(testLogger(), testConfig(), 120, nil)
	conn, teardown := dial(t, h)
	defer teardown()

	if err := conn.WriteJSON(message{Type: typePointer, X: 1, Y: 1}); err != nil {
		t.Fatalf("writing pointer: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("\nwanted:\npolicy violation close\ngot:\n%v", err)
	}
}

func TestHandler_InertMountSendsNothing(t *testing.T) {
	h := NewHandler(testLogger(), testConfig(), 120, nil)
	conn, teardown := dial(t, h)
	defer teardown()

	if err := conn.WriteJSON(message{Type: typeMount, Width: 0, Height: 0}); err != nil {
		t.Fatalf("writing mount: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := conn.ReadMessage()
	if err == nil {
		t.Fatalf("wanted no frame for an empty viewport")
	}
	var ne net.Error
	if !errors.As(err, &ne) || !ne.Timeout() {
		t.Fatalf("\nwanted:\ntimeout\ngot:\n%v", err)
	}
}

func TestHandler_CloseWaitsForSessions(t *testing.T) {
	h := NewHandler(testLogger(), testConfig(), 120, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	var (
		wg      sync.WaitGroup
		running atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				// Refused once the handler is closed.
				return
			}
			defer conn.Close()
			running.Add(1)
			defer running.Add(-1)

			conn.WriteJSON(message{Type: typeMount, Width: 100, Height: 100})
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}

	h.Close()
	wg.Wait()
	if n := running.Load(); n != 0 {
		t.Fatalf("\nwanted:\n0 running sessions\ngot:\n%d", n)
	}

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("wanted the handshake refused after Close")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("\nwanted:\n%d\ngot:\n%v", http.StatusServiceUnavailable, resp)
	}

	// Closing twice is harmless.
	h.Close()
}

type fakeLocator struct {
	x, y float64
	ok   bool
}

func (l fakeLocator) Locate([]uint8, int, int) (float64, float64, bool) {
	return l.x, l.y, l.ok
}

func TestHandler_Handle(t *testing.T) {
	newSim := func() *field.Simulator {
		return field.Mount(&frameSurface{}, 400, 300, testConfig(), rand.New(rand.NewPCG(1, 1)))
	}

	t.Run("pointer moves the pointer", func(t *testing.T) {
		h := NewHandler(testLogger(), testConfig(), 30, nil)
		sim := newSim()
		h.handle(sim, message{Type: typePointer, X: 12, Y: 34})
		if got := sim.Pointer(); got != (field.Point{X: 12, Y: 34}) {
			t.Fatalf("\nwanted:\n{12 34}\ngot:\n%+v", got)
		}
	})

	t.Run("face is mirrored and scaled to the viewport", func(t *testing.T) {
		h := NewHandler(testLogger(), testConfig(), 30, fakeLocator{x: 40, y: 60, ok: true})
		sim := newSim()
		h.handle(sim, message{Type: typeFace, Width: 160, Height: 120, Pixels: make([]byte, 160*120)})
		want := field.Point{X: (1 - 40.0/160) * 400, Y: 60.0 / 120 * 300}
		if got := sim.Pointer(); got != want {
			t.Fatalf("\nwanted:\n%+v\ngot:\n%+v", want, got)
		}
	})

	t.Run("no face leaves the pointer alone", func(t *testing.T) {
		h := NewHandler(testLogger(), testConfig(), 30, fakeLocator{})
		sim := newSim()
		sim.MovePointer(1, 2)
		h.handle(sim, message{Type: typeFace, Width: 160, Height: 120})
		if got := sim.Pointer(); got != (field.Point{X: 1, Y: 2}) {
			t.Fatalf("\nwanted:\n{1 2}\ngot:\n%+v", got)
		}
	})

	t.Run("face without a locator is ignored", func(t *testing.T) {
		h := NewHandler(testLogger(), testConfig(), 30, nil)
		sim := newSim()
		h.handle(sim, message{Type: typeFace, Width: 160, Height: 120})
		if got := sim.Pointer(); got != (field.Point{}) {
			t.Fatalf("\nwanted:\norigin\ngot:\n%+v", got)
		}
	})

	t.Run("resize resizes the field", func(t *testing.T) {
		h := NewHandler(testLogger(), testConfig(), 30, nil)
		sim := newSim()
		h.handle(sim, message{Type: typeResize, Width: 800, Height: 600})
		if w, hh := sim.Field().Size(); w != 800 || hh != 600 {
			t.Fatalf("\nwanted:\n800x600\ngot:\n%vx%v", w, hh)
		}
	})
}

func TestFrameSurface_Collects(t *testing.T) {
	s := &frameSurface{}
	s.Resize(10, 20)
	s.FillCircle(1, 2, 3.14159, 0.456)
	s.FillCircle(4, 5, 1, 0.3)

	m := s.message()
	if len(m.Particles) != 2 || m.Particles[0] != [4]float64{1, 2, 3.14, 0.46} {
		t.Fatalf("\nwanted:\n[[1 2 3.14 0.46] ...]\ngot:\n%v", m.Particles)
	}

	s.Clear()
	if len(s.message().Particles) != 0 {
		t.Fatalf("wanted an empty frame after clear")
	}
}
