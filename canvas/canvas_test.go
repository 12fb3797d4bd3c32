package canvas

import (
	"bytes"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	field "github.com/healerlk/healer/particle-field"
)

func TestCanvas_FillCircle(t *testing.T) {
	c := New(64, 64, "#000000")
	defer c.Close()

	c.FillCircle(32, 32, 6, 0.8)
	if err := c.Err(); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}

	r, _, _, _ := c.Image().At(32, 32).RGBA()
	if r>>8 < 150 {
		t.Fatalf("wanted a bright center pixel, got red %d", r>>8)
	}
	r, _, _, _ = c.Image().At(2, 2).RGBA()
	if r>>8 > 10 {
		t.Fatalf("wanted the background in the corner, got red %d", r>>8)
	}

	c.Clear()
	r, _, _, _ = c.Image().At(32, 32).RGBA()
	if r>>8 > 10 {
		t.Fatalf("wanted a cleared canvas, got red %d", r>>8)
	}
}

func TestCanvas_Resize(t *testing.T) {
	c := New(32, 32, "")
	defer c.Close()

	if err := c.Resize(100, 50); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	if w, h := c.Size(); w != 100 || h != 50 {
		t.Fatalf("\nwanted:\n100x50\ngot:\n%dx%d", w, h)
	}
	if err := c.Resize(0, 50); err == nil {
		t.Fatalf("wanted an error for a zero width")
	}
}

func TestSnapshot(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	c, err := Snapshot(300, 160, 30, field.Point{X: 150, Y: 80}, field.DefaultConfig(), rnd, "")
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 160 {
		t.Fatalf("\nwanted:\n300x160\ngot:\n%dx%d", b.Dx(), b.Dy())
	}

	if _, err := Snapshot(0, 10, 1, field.Point{}, field.DefaultConfig(), rnd, ""); err == nil {
		t.Fatalf("wanted an error for an empty snapshot")
	}
}

func TestCanvas_WritePNG(t *testing.T) {
	c := New(40, 20, "")
	defer c.Close()
	c.FillCircle(20, 10, 3, 0.5)

	path := filepath.Join(t.TempDir(), "snow.png")
	if err := c.WritePNG(path); err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written file: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding png config: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 20 {
		t.Fatalf("\nwanted:\n40x20\ngot:\n%dx%d", cfg.Width, cfg.Height)
	}
}
