package engine

import "math"

// Input is the polled control snapshot for one tick. Left and Right are
// held states; Jump, Fire, Advance, Restart and Pause are edges.
type Input struct {
	Left    bool
	Right   bool
	Jump    bool
	Fire    bool
	Advance bool
	Restart bool
	Pause   bool

	// Editor controls.
	Pointer Pointer
	Tool    *Tool
}

// Pointer is the editor pointer in world units relative to the viewport.
type Pointer struct {
	X, Y    float64
	Down    bool
	Pressed bool // button went down this tick
}

// Valid reports whether the pointer carries usable coordinates.
func (p Pointer) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
