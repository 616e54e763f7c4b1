package dof

import "math"

// FocusParameters controls how distance maps to blur amount.
//
// Items whose distance lies inside the focus band
// [FocusDistance-FocusRange/2, FocusDistance+FocusRange/2] are fully sharp.
// Outside the band the blur grows linearly with the distance to the nearest
// boundary, scaled by NearBlurScale in front of the band and FarBlurScale
// behind it, and is capped at MaxBlur.
type FocusParameters struct {
	FocusDistance float64
	FocusRange    float64
	NearBlurScale float64
	FarBlurScale  float64
	MaxBlur       float64
}

// Bounds returns the near and far boundaries of the focus band.
func (p FocusParameters) Bounds() (near, far float64) {
	half := p.FocusRange / 2
	return p.FocusDistance - half, p.FocusDistance + half
}

// ComputeBlurAmount returns the blur amount for an item at the given
// distance. The mapping is piecewise linear and is not smoothed at the band
// boundaries. The result always lies in [0, max(MaxBlur, 0)].
func ComputeBlurAmount(distance float64, p FocusParameters) float64 {
	near, far := p.Bounds()

	var amount float64
	switch {
	case distance < near:
		amount = (near - distance) * p.NearBlurScale
	case distance > far:
		amount = (distance - far) * p.FarBlurScale
	}

	if math.IsNaN(amount) {
		return 0
	}
	return clamp(amount, 0, math.Max(p.MaxBlur, 0))
}
