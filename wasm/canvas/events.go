//go:build js && wasm

package canvas

import (
	"context"
	"syscall/js"

	field "github.com/healerlk/healer/particle-field"
)

// FrameScheduler delivers frames on requestAnimationFrame.
type FrameScheduler struct {
	window js.Value
	tick   chan struct{}
	cb     js.Func
}

// NewFrameScheduler returns a scheduler bound to the window's animation frames.
func (c *Canvas) NewFrameScheduler() *FrameScheduler {
	s := &FrameScheduler{
		window: c.window,
		tick:   make(chan struct{}, 1),
	}
	s.cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		select {
		case s.tick <- struct{}{}:
		default:
		}
		return nil
	})
	return s
}

// Next implements field.Scheduler. A pending frame request is cancelled
// when ctx is done.
func (s *FrameScheduler) Next(ctx context.Context) bool {
	id := s.window.Call("requestAnimationFrame", s.cb)
	select {
	case <-ctx.Done():
		s.window.Call("cancelAnimationFrame", id)
		return false
	case <-s.tick:
		return true
	}
}

// Release frees the animation frame callback.
func (s *FrameScheduler) Release() {
	s.cb.Release()
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Listen wires mouse movement and window resizes into sim. The page hide
// event calls stop. The returned function removes every listener.
func (c *Canvas) Listen(sim *field.Simulator, stop func()) func() {
	var ls []listener
	add := func(event string, fn func(e js.Value)) {
		f := js.FuncOf(func(this js.Value, args []js.Value) any {
			if len(args) > 0 {
				fn(args[0])
			}
			return nil
		})
		c.window.Call("addEventListener", event, f)
		ls = append(ls, listener{target: c.window, event: event, fn: f})
	}

	add("mousemove", func(e js.Value) {
		sim.MovePointer(e.Get("clientX").Float(), e.Get("clientY").Float())
	})
	add("resize", func(js.Value) {
		w, h := c.ViewportSize()
		// Resize takes the frame lock, keep it off the event loop.
		go sim.Resize(w, h)
	})
	add("pagehide", func(js.Value) {
		stop()
	})

	return func() {
		for _, l := range ls {
			l.target.Call("removeEventListener", l.event, l.fn)
			l.fn.Release()
		}
	}
}
