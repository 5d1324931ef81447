// Package core provides fundamental types and utilities shared by the
// platformer engine, the renderer and the terminal host. It contains no
// external dependencies (especially no Bubble Tea) to keep game logic pure
// and testable.
package core

// Rect is a rectangle in screen cells. World geometry lives in the
// engine's float Rect; this one is only for drawing.
type Rect struct {
	X, Y int
	W, H int
}

// Centered returns a w x h rect centered in an area of areaW x areaH.
// Odd leftovers go to the right and bottom.
func Centered(areaW, areaH, w, h int) Rect {
	return Rect{X: (areaW - w) / 2, Y: (areaH - h) / 2, W: w, H: h}
}

// Right is the first column past the rect.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rect.
func (r Rect) Bottom() int { return r.Y + r.H }

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return Max(lo, Min(val, hi))
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
