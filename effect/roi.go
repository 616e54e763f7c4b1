package effect

import "math"

// Expansion returns the number of pixels a lens blur of the given radius
// reaches beyond a pixel: ceil(radius). Negative and NaN radii expand by 0.
func Expansion(radius float32) int32 {
	if !(radius > 0) {
		return 0
	}
	r := math.Ceil(float64(radius))
	if r > math.MaxInt32/4 {
		return math.MaxInt32 / 4
	}
	return int32(r)
}

// OutputFromInput returns the rectangle a lens blur produces from an input
// rectangle. The output grows by ceil(radius) on every side unless fixSize
// is set, in which case it equals the input and pixels beyond the original
// bounds are not computed.
func OutputFromInput(input Rect, radius float32, fixSize bool) Rect {
	if fixSize {
		return input
	}
	return input.Inflate(Expansion(radius))
}

// InputFromOutput returns the input rectangle a lens blur needs to produce
// the given output rectangle. The kernel samples ceil(radius) pixels around
// each output pixel, so the input always grows, whatever the fix-size flag.
func InputFromOutput(output Rect, radius float32) Rect {
	return output.Inflate(Expansion(radius))
}
