package field

import "sync/atomic"

// Pointer holds the last observed pointer coordinate. Writers never block
// and the last write wins. The zero value reads as the origin.
type Pointer struct {
	p atomic.Pointer[Point]
}

// Move stores a new pointer coordinate.
func (ptr *Pointer) Move(x, y float64) {
	ptr.p.Store(&Point{X: x, Y: y})
}

// Load returns the most recent pointer coordinate.
func (ptr *Pointer) Load() Point {
	if p := ptr.p.Load(); p != nil {
		return *p
	}
	return Point{}
}
