// Package canvas renders a particle field into a raster image.
//
// It backs the Open Graph preview image of the site and the snapshot
// mode of the command line.
package canvas

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math/rand/v2"

	"github.com/gogpu/gg"
	field "github.com/healerlk/healer/particle-field"
	"github.com/natefinch/atomic"
)

// DefaultBackground is the dark slate used behind the snow.
const DefaultBackground = "#0f172a"

// Canvas is a field.Surface drawing white circles over a solid background.
type Canvas struct {
	dc  *gg.Context
	bg  gg.RGBA
	err error
}

var (
	_ field.Surface = (*Canvas)(nil)
	_ field.Resizer = (*Canvas)(nil)
)

// New creates a w x h canvas. background is a hex color, an empty string selects DefaultBackground.
func New(w, h int, background string) *Canvas {
	if background == "" {
		background = DefaultBackground
	}
	c := &Canvas{
		dc: gg.NewContext(w, h),
		bg: gg.Hex(background),
	}
	c.Clear()
	return c
}

// Clear paints the background over the whole canvas.
func (c *Canvas) Clear() {
	c.dc.ClearWithColor(c.bg)
}

// FillCircle paints a white disc with the given opacity.
func (c *Canvas) FillCircle(x, y, r, opacity float64) {
	c.dc.SetRGBA(1, 1, 1, opacity)
	c.dc.DrawCircle(x, y, r)
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = fmt.Errorf("filling circle at (%v,%v): %w", x, y, err)
	}
}

// Resize reallocates the canvas.
func (c *Canvas) Resize(w, h int) error {
	if err := c.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resizing canvas: %w", err)
	}
	c.Clear()
	return nil
}

// Err returns the first rasterization error, if any.
func (c *Canvas) Err() error {
	return c.err
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (w, h int) {
	return c.dc.Width(), c.dc.Height()
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.err != nil {
		return c.err
	}
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WritePNG atomically replaces the file at path with the PNG encoded canvas.
func (c *Canvas) WritePNG(path string) error {
	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Close releases the drawing context.
func (c *Canvas) Close() error {
	return c.dc.Close()
}

// Snapshot runs a fresh w x h field for the given number of frames with a
// resting pointer and returns the canvas holding the last frame.
func Snapshot(w, h, frames int, pointer field.Point, cfg field.Config, rnd *rand.Rand, background string) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid snapshot size %dx%d", w, h)
	}
	if frames < 1 {
		frames = 1
	}
	c := New(w, h, background)
	f := field.New(float64(w), float64(h), cfg, rnd)
	for i := 1; i < frames; i++ {
		f.Step(pointer)
	}
	f.Frame(c, pointer)
	if err := c.Err(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
