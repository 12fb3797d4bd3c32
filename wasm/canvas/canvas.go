//go:build js && wasm

// Package canvas paints the snow field on an HTML canvas element.
package canvas

import (
	"errors"
	"math"
	"strconv"
	"syscall/js"

	field "github.com/healerlk/healer/particle-field"
)

// ErrUnavailable is returned when the page has no usable 2d canvas.
var ErrUnavailable = errors.New("canvas 2d context unavailable")

// Canvas is a field.Surface backed by a CanvasRenderingContext2D.
type Canvas struct {
	window js.Value
	doc    js.Value
	el     js.Value
	ctx    js.Value
	w, h   int
}

var (
	_ field.Surface = (*Canvas)(nil)
	_ field.Resizer = (*Canvas)(nil)
)

// NewCanvas looks up the canvas element with the given id.
func NewCanvas(id string) (*Canvas, error) {
	var c Canvas

	c.window = js.Global()
	c.doc = c.window.Get("document")
	if c.doc.IsUndefined() {
		return nil, ErrUnavailable
	}
	c.el = c.doc.Call("getElementById", id)
	if c.el.IsNull() || c.el.IsUndefined() {
		return nil, ErrUnavailable
	}
	c.ctx = c.el.Call("getContext", "2d")
	if c.ctx.IsNull() || c.ctx.IsUndefined() {
		return nil, ErrUnavailable
	}
	return &c, nil
}

// ViewportSize returns the inner size of the browser window.
func (c *Canvas) ViewportSize() (int, int) {
	return c.window.Get("innerWidth").Int(), c.window.Get("innerHeight").Int()
}

// Resize matches the canvas backing store to the viewport.
func (c *Canvas) Resize(w, h int) error {
	c.w, c.h = w, h
	c.el.Set("width", w)
	c.el.Set("height", h)
	return nil
}

func (c *Canvas) Clear() {
	c.ctx.Call("clearRect", 0, 0, c.w, c.h)
}

func (c *Canvas) FillCircle(x, y, r, opacity float64) {
	c.ctx.Call("beginPath")
	c.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	c.ctx.Set("fillStyle", "rgba(255, 255, 255, "+strconv.FormatFloat(opacity, 'f', 2, 64)+")")
	c.ctx.Call("fill")
}
