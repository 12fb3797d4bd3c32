package field

// Surface is the drawing target of a field. The field never reads back from it.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// FillCircle paints a filled circle centered on {x, y} whose fill alpha is opacity.
	FillCircle(x, y, r, opacity float64)
}

// Resizer is implemented by surfaces which have to follow the viewport size.
type Resizer interface {
	Resize(w, h int) error
}

// Flusher is implemented by surfaces which present a frame only once it is complete.
type Flusher interface {
	Flush()
}
