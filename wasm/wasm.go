//go:build js && wasm

package main

import (
	"context"
	"math/rand/v2"
	"time"

	field "github.com/healerlk/healer/particle-field"
	"github.com/healerlk/healer/wasm/canvas"
)

func main() {
	c, err := canvas.NewCanvas("snow")
	if err != nil {
		// No canvas on this page, nothing to animate.
		return
	}
	w, h := c.ViewportSize()

	seed := uint64(time.Now().UnixNano())
	sim := field.Mount(c, w, h, field.DefaultConfig(), rand.New(rand.NewPCG(seed, seed>>1)))
	if !sim.Active() {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := c.NewFrameScheduler()
	defer sched.Release()

	detach := c.Listen(sim, cancel)
	defer detach()

	sim.Run(ctx, sched)
	sim.Unmount()
}
