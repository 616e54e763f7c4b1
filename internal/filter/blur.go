package filter

import (
	"image"
	"sync"

	"github.com/gogpu/dof/internal/parallel"
)

// EdgeMode selects how pixels outside the source bounds are sampled.
type EdgeMode uint8

const (
	// EdgeTransparent treats pixels outside the source as transparent, so
	// the blur fades out past the image edge.
	EdgeTransparent EdgeMode = iota

	// EdgeClamp repeats the nearest edge pixel.
	EdgeClamp
)

// Gaussian blurs src into dst with a separable Gaussian of standard
// deviation sigma. Every pixel of dst.Bounds() is written. The operation
// uses two passes:
//  1. Horizontal pass: convolve each row with the 1D kernel into a float
//     buffer that extends KernelHalfSize(sigma) rows above and below dst
//  2. Vertical pass: convolve each column of that buffer into dst
func Gaussian(dst, src *image.RGBA, sigma float64, edge EdgeMode) {
	if dst == nil || src == nil {
		return
	}
	db := dst.Bounds()
	if db.Empty() {
		return
	}

	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2

	width := db.Dx()
	rows := db.Dy() + 2*half

	temp := getTempBuffer(width, rows)
	defer putTempBuffer(temp)

	pool := parallel.Default()
	pool.Rows(rows, func(y0, y1 int) {
		blurHorizontal(src, temp, db.Min.X, db.Min.Y-half, width, y0, y1, kernel, edge)
	})
	pool.Rows(db.Dy(), func(y0, y1 int) {
		blurVertical(temp, dst, width, y0, y1, kernel)
	})
}

// sample returns the premultiplied RGBA value of src at (x, y) as floats
// in [0, 255], honoring the edge mode.
func sample(src *image.RGBA, x, y int, edge EdgeMode) (r, g, b, a float32) {
	sb := src.Bounds()
	if sb.Empty() {
		return 0, 0, 0, 0
	}
	if edge == EdgeClamp {
		x = clampInt(x, sb.Min.X, sb.Max.X)
		y = clampInt(y, sb.Min.Y, sb.Max.Y)
	} else if x < sb.Min.X || x >= sb.Max.X || y < sb.Min.Y || y >= sb.Max.Y {
		return 0, 0, 0, 0
	}
	i := src.PixOffset(x, y)
	p := src.Pix[i : i+4 : i+4]
	return float32(p[0]), float32(p[1]), float32(p[2]), float32(p[3])
}

// blurHorizontal convolves temp rows [y0, y1), which hold source rows
// minY+y0 onward restricted to columns [minX, minX+width), into temp.
func blurHorizontal(src *image.RGBA, temp []float32, minX, minY, width, y0, y1 int, kernel []float32, edge EdgeMode) {
	half := len(kernel) / 2

	for y := y0; y < y1; y++ {
		sy := minY + y
		for x := 0; x < width; x++ {
			sx := minX + x

			var r, g, b, a float32
			for k, weight := range kernel {
				pr, pg, pb, pa := sample(src, sx+k-half, sy, edge)
				r += pr * weight
				g += pg * weight
				b += pb * weight
				a += pa * weight
			}

			ti := (y*width + x) * 4
			temp[ti+0] = r
			temp[ti+1] = g
			temp[ti+2] = b
			temp[ti+3] = a
		}
	}
}

// blurVertical convolves the columns of temp into dst rows [y0, y1),
// counted from the top of dst. temp holds len(kernel)-1 more rows than dst.
func blurVertical(temp []float32, dst *image.RGBA, width, y0, y1 int, kernel []float32) {
	db := dst.Bounds()

	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				ti := ((y+k)*width + x) * 4
				r += temp[ti+0] * weight
				g += temp[ti+1] * weight
				b += temp[ti+2] * weight
				a += temp[ti+3] * weight
			}

			di := dst.PixOffset(db.Min.X+x, db.Min.Y+y)
			dst.Pix[di+0] = clampUint8(r)
			dst.Pix[di+1] = clampUint8(g)
			dst.Pix[di+2] = clampUint8(b)
			dst.Pix[di+3] = clampUint8(a)
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// tempBufferPool recycles horizontal pass buffers; the default holds a
// 512x512 RGBA tile.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 512*512*4)}
	},
}

// getTempBuffer returns a zeroed buffer of width*height*4 floats.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}

	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

// putTempBuffer returns a temporary buffer to the pool.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampInt clamps an integer to [minVal, maxVal).
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v >= maxVal {
		return maxVal - 1
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
