package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	field "github.com/healerlk/healer/particle-field"
	"github.com/nsf/termbox-go"
)

// A terminal cell stands for a cellWidth x cellHeight block of viewport pixels,
// so the field keeps the same physics as in the browser.
const (
	cellWidth  = 8
	cellHeight = 16
)

// glyphs from the faintest to the brightest particle
var glyphs = []rune{'·', '∗', '❄'}

// Terminal renders the snow field into the terminal and feeds
// mouse and resize events back into the simulation.
type Terminal struct {
	backbuf  []termbox.Cell
	rank     []int8
	bbw, bbh int
	logger   *slog.Logger
	cfg      field.Config
	fps      int
	flush    func([]termbox.Cell)
}

// New creates a terminal host. It does not touch the terminal until Render is called.
func New(logger *slog.Logger, cfg field.Config, fps int) *Terminal {
	return &Terminal{
		logger: logger,
		cfg:    cfg,
		fps:    fps,
		flush:  flushTermbox,
	}
}

// Render takes over the terminal and animates the field until ctx is done
// or the user presses Esc or Ctrl-C.
func (t *Terminal) Render(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("initializing termbox: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)

	w, h := termbox.Size()
	seed := uint64(time.Now().UnixNano())
	sim := field.Mount(t, w*cellWidth, h*cellHeight, t.cfg, rand.New(rand.NewPCG(seed, seed>>1)))
	if !sim.Active() {
		return fmt.Errorf("terminal has no usable area (%dx%d)", w, h)
	}
	t.logger.Info("rendering snow field", "cols", w, "rows", h, "particles", t.cfg.Count)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		t.pollEvents(cancel, sim)
	}()

	ticker := field.NewTicker(t.fps)
	defer ticker.Stop()
	sim.Run(ctx, ticker)
	sim.Unmount()

	termbox.Interrupt()
	<-pollDone
	return nil
}

// pollEvents forwards terminal events to the simulator until it is interrupted.
func (t *Terminal) pollEvents(cancel context.CancelFunc, sim *field.Simulator) {
	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
				cancel()
			}
		case termbox.EventMouse:
			x, y := cellCenter(ev.MouseX, ev.MouseY)
			sim.MovePointer(x, y)
			t.logger.Debug("pointer moved", "col", ev.MouseX, "row", ev.MouseY)
		case termbox.EventResize:
			if err := sim.Resize(ev.Width*cellWidth, ev.Height*cellHeight); err != nil {
				t.logger.Error("resizing field", "error", err)
			}
		case termbox.EventError:
			t.logger.Error("polling terminal events", "error", ev.Err)
			cancel()
		case termbox.EventInterrupt:
			return
		}
	}
}

func cellCenter(col, row int) (float64, float64) {
	return float64(col*cellWidth + cellWidth/2), float64(row*cellHeight + cellHeight/2)
}

// Resize implements field.Resizer. w and h are in viewport pixels.
func (t *Terminal) Resize(w, h int) error {
	t.reallocBackBuffer(w/cellWidth, h/cellHeight)
	return nil
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
	t.rank = make([]int8, w*h)
	t.Clear()
}

// Clear implements field.Surface.
func (t *Terminal) Clear() {
	for i := range t.backbuf {
		t.backbuf[i] = termbox.Cell{Ch: ' ', Fg: termbox.ColorDefault, Bg: termbox.ColorDefault}
		t.rank[i] = -1
	}
}

// FillCircle implements field.Surface. When several particles share a cell
// the brightest one is shown.
func (t *Terminal) FillCircle(x, y, r, opacity float64) {
	if x < 0 || y < 0 {
		return
	}
	col, row := int(x)/cellWidth, int(y)/cellHeight
	if col >= t.bbw || row >= t.bbh {
		return
	}
	idx := t.bbw*row + col
	rank := glyphRank(opacity)
	if rank <= t.rank[idx] {
		return
	}
	t.rank[idx] = rank
	t.backbuf[idx] = termbox.Cell{Ch: glyphs[rank], Fg: termbox.ColorWhite, Bg: termbox.ColorDefault}
}

func glyphRank(opacity float64) int8 {
	switch {
	case opacity < 0.45:
		return 0
	case opacity < 0.65:
		return 1
	default:
		return 2
	}
}

// Flush implements field.Flusher.
func (t *Terminal) Flush() {
	t.flush(t.backbuf)
}

func flushTermbox(backbuf []termbox.Cell) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	copy(termbox.CellBuffer(), backbuf)
	termbox.Flush()
}
