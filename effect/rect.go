package effect

import "image"

// Rect is an integer pixel rectangle with exclusive Right and Bottom edges.
// It matches the rectangle layout exchanged with effect-graph runtimes.
type Rect struct {
	Left, Top     int32
	Right, Bottom int32
}

// R is a convenience function to create a Rect.
func R(left, top, right, bottom int32) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Width returns the width of the rectangle (0 if empty).
func (r Rect) Width() int32 {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle (0 if empty).
func (r Rect) Height() int32 {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// Inflate grows the rectangle by d pixels on all four sides.
func (r Rect) Inflate(d int32) Rect {
	return Rect{
		Left:   r.Left - d,
		Top:    r.Top - d,
		Right:  r.Right + d,
		Bottom: r.Bottom + d,
	}
}

// Contains returns true if other lies entirely inside r.
// An empty rectangle is contained in every rectangle.
func (r Rect) Contains(other Rect) bool {
	if other.IsEmpty() {
		return true
	}
	return other.Left >= r.Left && other.Top >= r.Top &&
		other.Right <= r.Right && other.Bottom <= r.Bottom
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, other.Left),
		Top:    min(r.Top, other.Top),
		Right:  max(r.Right, other.Right),
		Bottom: max(r.Bottom, other.Bottom),
	}
}

// Intersect returns the overlap of r and other, or an empty Rect.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   max(r.Left, other.Left),
		Top:    max(r.Top, other.Top),
		Right:  min(r.Right, other.Right),
		Bottom: min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Image converts the rectangle to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

// FromImage converts an image.Rectangle to a Rect.
func FromImage(r image.Rectangle) Rect {
	return Rect{
		Left:   int32(r.Min.X), //nolint:gosec // image bounds fit int32
		Top:    int32(r.Min.Y), //nolint:gosec // image bounds fit int32
		Right:  int32(r.Max.X), //nolint:gosec // image bounds fit int32
		Bottom: int32(r.Max.Y), //nolint:gosec // image bounds fit int32
	}
}
