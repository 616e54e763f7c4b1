package dof

import "math"

// ValueSource supplies a time-varying scalar parameter.
//
// The host's animation system implements ValueSource; the processor samples
// every animated parameter once per frame. frame is the item-relative frame
// index, length the item duration in frames.
type ValueSource interface {
	Value(frame, length int64, fps float64) float64
}

// Constant is a ValueSource that never changes.
type Constant float64

// Value returns c for every frame.
func (c Constant) Value(_, _ int64, _ float64) float64 {
	return float64(c)
}

// Animation is a keyframed scalar parameter.
//
// Values are spread evenly over the item duration: the first value applies
// at frame 0, the last at frame length-1, and frames in between are linearly
// interpolated. A single value is constant. Sampled values are clamped to
// [Min, Max] when Max > Min.
type Animation struct {
	Values []float64 `toml:"values"`

	// Min and Max bound the sampled value. They come from the parameter
	// definition, never from a settings file.
	Min float64 `toml:"-"`
	Max float64 `toml:"-"`
}

// NewAnimation creates a constant animation with the given default value
// and range.
func NewAnimation(value, minVal, maxVal float64) Animation {
	return Animation{
		Values: []float64{value},
		Min:    minVal,
		Max:    maxVal,
	}
}

// Value returns the animated value at frame.
func (a Animation) Value(frame, length int64, _ float64) float64 {
	n := len(a.Values)
	if n == 0 {
		return a.bound(0)
	}
	if n == 1 || length <= 1 {
		return a.bound(a.Values[0])
	}

	t := clamp(float64(frame)/float64(length-1), 0, 1)
	pos := t * float64(n-1)
	i := int(math.Floor(pos))
	if i >= n-1 {
		return a.bound(a.Values[n-1])
	}
	frac := pos - float64(i)
	return a.bound(a.Values[i] + (a.Values[i+1]-a.Values[i])*frac)
}

func (a Animation) bound(v float64) float64 {
	if a.Max > a.Min {
		return clamp(v, a.Min, a.Max)
	}
	return v
}

var _ ValueSource = Animation{}
var _ ValueSource = Constant(0)
