package field

import (
	"context"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the frame clock of a simulator.
type Scheduler interface {
	// Next blocks until the next frame is due. It returns false once ctx is done
	// or when no more frames will be delivered.
	Next(ctx context.Context) bool
}

// Ticker schedules frames at a fixed rate.
type Ticker struct {
	t *time.Ticker
}

// NewTicker returns a scheduler delivering fps frames per second.
func NewTicker(fps int) *Ticker {
	if fps <= 0 {
		fps = 60
	}
	return &Ticker{t: time.NewTicker(time.Second / time.Duration(fps))}
}

// Next implements Scheduler.
func (t *Ticker) Next(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-t.t.C:
		return true
	}
}

// Stop releases the underlying ticker.
func (t *Ticker) Stop() {
	t.t.Stop()
}

// Simulator ties a field to a surface, a pointer cell and a frame loop,
// and gives them a mount / unmount lifecycle. Every simulator owns its
// own state, nothing is shared between instances.
//
// MovePointer and Resize may be called from any goroutine.
type Simulator struct {
	mu      sync.Mutex
	field   *Field
	surface Surface
	pointer Pointer
	cancel  context.CancelFunc

	frames   atomic.Uint64
	started  atomic.Bool
	detached atomic.Bool
	done     chan struct{}
}

// Mount creates the particle set for a w x h viewport. When the surface is
// missing or the viewport has no area the simulator is inert: Run returns
// immediately and no frame is ever painted.
func Mount(s Surface, w, h int, cfg Config, rnd *rand.Rand) *Simulator {
	sim := &Simulator{
		surface: s,
		done:    make(chan struct{}),
	}
	if s == nil || w <= 0 || h <= 0 {
		return sim
	}
	if r, ok := s.(Resizer); ok {
		if err := r.Resize(w, h); err != nil {
			return sim
		}
	}
	sim.field = New(float64(w), float64(h), cfg, rnd)
	return sim
}

// Active reports whether the simulator has a field to animate.
func (sim *Simulator) Active() bool {
	return sim.field != nil
}

// Frames returns the number of frames painted so far.
func (sim *Simulator) Frames() uint64 {
	return sim.frames.Load()
}

// Field returns the simulated field, nil for an inert simulator.
// It must not be mutated while the simulator runs.
func (sim *Simulator) Field() *Field {
	return sim.field
}

// MovePointer records the latest pointer position. It never blocks.
func (sim *Simulator) MovePointer(x, y float64) {
	if sim.detached.Load() {
		return
	}
	sim.pointer.Move(x, y)
}

// Pointer returns the latest pointer position.
func (sim *Simulator) Pointer() Point {
	return sim.pointer.Load()
}

// Resize follows a viewport size change. Particles keep their positions.
func (sim *Simulator) Resize(w, h int) error {
	if sim.detached.Load() || sim.field == nil || w <= 0 || h <= 0 {
		return nil
	}
	sim.mu.Lock()
	defer sim.mu.Unlock()

	if r, ok := sim.surface.(Resizer); ok {
		if err := r.Resize(w, h); err != nil {
			return err
		}
	}
	sim.field.Resize(float64(w), float64(h))
	return nil
}

// Run drives the frame loop until ctx is done or Unmount is called.
// A simulator runs at most once.
func (sim *Simulator) Run(ctx context.Context, sched Scheduler) {
	if sim.field == nil || !sim.started.CompareAndSwap(false, true) {
		return
	}
	defer close(sim.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sim.mu.Lock()
	sim.cancel = cancel
	sim.mu.Unlock()

	for {
		// The cancellation token is checked before the next frame is requested.
		if ctx.Err() != nil || sim.detached.Load() {
			return
		}
		if !sched.Next(ctx) {
			return
		}
		sim.frame()
	}
}

// Start runs the frame loop on its own goroutine.
func (sim *Simulator) Start(ctx context.Context, sched Scheduler) {
	if sim.field == nil {
		return
	}
	go sim.Run(ctx, sched)
}

func (sim *Simulator) frame() {
	sim.mu.Lock()
	defer sim.mu.Unlock()

	if sim.detached.Load() {
		return
	}
	sim.field.Frame(sim.surface, sim.pointer.Load())
	sim.frames.Add(1)
}

// Unmount cancels the pending frame and detaches the pointer and resize
// entry points. It waits for an in-flight frame to complete; no frame is
// painted once Unmount returns.
func (sim *Simulator) Unmount() {
	sim.detached.Store(true)

	sim.mu.Lock()
	cancel := sim.cancel
	sim.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if sim.started.Load() {
		<-sim.done
	}
}
