package filter

import (
	"image"
	"math"

	"github.com/gogpu/dof/internal/parallel"
)

// goldenAngle is the angular step of the disc sampling spiral, in radians.
const goldenAngle = 2.39996323

// maxLensSamples bounds the per-pixel sample count.
const maxLensSamples = 512

// LensParams mirrors the lens kernel's parameter block.
type LensParams struct {
	Radius       float64
	Brightness   float64
	EdgeStrength float64
	Quality      float64
}

// lensTap is one precomputed disc sample.
type lensTap struct {
	dx, dy int
	t      float32 // normalized radial position in (0, 1)
}

func lensTaps(radius float64, quality float64) []lensTap {
	n := int(math.Max(1, math.Min(quality, maxLensSamples)))
	taps := make([]lensTap, n)
	for i := range taps {
		t := (float64(i) + 0.5) / float64(n)
		r := math.Sqrt(t) * radius
		a := float64(i) * goldenAngle
		taps[i] = lensTap{
			dx: int(math.Round(math.Cos(a) * r)),
			dy: int(math.Round(math.Sin(a) * r)),
			t:  float32(t),
		}
	}
	return taps
}

// LensBlur renders a lens (bokeh) blur of src into dst.
//
// Each dst pixel averages Quality samples spread over a disc of the given
// radius; bright samples toward the rim are weighted up by EdgeStrength and
// the result's colour is scaled by Brightness. Sampling clamps to the
// source bounds. A radius below 0.5 copies src unchanged. Nothing is
// written when src is empty.
func LensBlur(dst, src *image.RGBA, p LensParams) {
	if dst == nil || src == nil || src.Bounds().Empty() {
		return
	}
	db := dst.Bounds()

	if p.Radius < 0.5 {
		for y := db.Min.Y; y < db.Max.Y; y++ {
			for x := db.Min.X; x < db.Max.X; x++ {
				r, g, b, a := sample(src, x, y, EdgeClamp)
				writeLens(dst, x, y, r/255, g/255, b/255, a/255, 1)
			}
		}
		return
	}

	taps := lensTaps(p.Radius, p.Quality)
	edge := float32(p.EdgeStrength)
	brightness := float32(p.Brightness)

	parallel.Default().Rows(db.Dy(), func(y0, y1 int) {
		for y := db.Min.Y + y0; y < db.Min.Y+y1; y++ {
			for x := db.Min.X; x < db.Max.X; x++ {
				lensPixel(dst, src, x, y, taps, edge, brightness)
			}
		}
	})
}

// lensPixel writes the weighted disc average around (x, y).
func lensPixel(dst, src *image.RGBA, x, y int, taps []lensTap, edge, brightness float32) {
	var sr, sg, sb, sa, wsum float32
	for _, tap := range taps {
		r, g, b, a := sample(src, x+tap.dx, y+tap.dy, EdgeClamp)
		r, g, b, a = r/255, g/255, b/255, a/255
		luma := 0.299*r + 0.587*g + 0.114*b
		w := 1 + edge*tap.t*luma
		sr += r * w
		sg += g * w
		sb += b * w
		sa += a * w
		wsum += w
	}
	if wsum < 1e-5 {
		wsum = 1e-5
	}
	writeLens(dst, x, y, sr/wsum, sg/wsum, sb/wsum, sa/wsum, brightness)
}

// writeLens stores a premultiplied colour scaled by brightness, keeping
// every channel within alpha.
func writeLens(dst *image.RGBA, x, y int, r, g, b, a, brightness float32) {
	a = clampUnit(a)
	r = min(clampUnit(r*brightness), a)
	g = min(clampUnit(g*brightness), a)
	b = min(clampUnit(b*brightness), a)

	i := dst.PixOffset(x, y)
	dst.Pix[i+0] = clampUint8(r * 255)
	dst.Pix[i+1] = clampUint8(g * 255)
	dst.Pix[i+2] = clampUint8(b * 255)
	dst.Pix[i+3] = clampUint8(a * 255)
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
