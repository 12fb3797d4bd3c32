package websocket

import (
	"math"
	"time"

	"github.com/gorilla/websocket"
	field "github.com/healerlk/healer/particle-field"
)

// Message types exchanged with the browser.
const (
	typeMount   = "mount"
	typeResize  = "resize"
	typePointer = "pointer"
	typeFace    = "face"
	typeFrame   = "frame"
)

// message is sent by the client.
type message struct {
	Type   string  `json:"type"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Pixels []byte  `json:"pixels,omitempty"` // grayscale camera frame, base64 in JSON
}

// frameMessage is sent by the server once per painted frame.
// Each particle is [x, y, radius, opacity].
type frameMessage struct {
	Type      string       `json:"type"`
	Seq       uint64       `json:"seq"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Particles [][4]float64 `json:"particles"`
}

// frameSurface collects the circles of a frame and writes them as one
// message when the frame is complete. It is only used from the frame loop.
type frameSurface struct {
	conn      *websocket.Conn
	w, h      int
	seq       uint64
	particles [][4]float64
	onError   func(error)
	failed    bool
}

var (
	_ field.Surface = (*frameSurface)(nil)
	_ field.Resizer = (*frameSurface)(nil)
	_ field.Flusher = (*frameSurface)(nil)
)

func newFrameSurface(conn *websocket.Conn, onError func(error)) *frameSurface {
	return &frameSurface{conn: conn, onError: onError}
}

func (s *frameSurface) Clear() {
	s.particles = s.particles[:0]
}

func (s *frameSurface) FillCircle(x, y, r, opacity float64) {
	s.particles = append(s.particles, [4]float64{x, y, round2(r), round2(opacity)})
}

func (s *frameSurface) Resize(w, h int) error {
	s.w, s.h = w, h
	return nil
}

func (s *frameSurface) Flush() {
	if s.failed {
		return
	}
	s.seq++
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(s.message()); err != nil {
		s.failed = true
		s.onError(err)
	}
}

func (s *frameSurface) message() frameMessage {
	return frameMessage{
		Type:      typeFrame,
		Seq:       s.seq,
		Width:     s.w,
		Height:    s.h,
		Particles: s.particles,
	}
}

// round2 keeps two decimals, enough for a radius or an alpha channel.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
