package cpu

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/dof/backend"
	"github.com/gogpu/dof/effect"
	"github.com/gogpu/dof/internal/filter"
)

// growTransform expands the output by grow and requests grow more pixels
// of input.
type growTransform struct {
	grow      int32
	kernel    effect.Kernel
	constants effect.ConstantBuffer
}

func (t *growTransform) MapInputRectsToOutputRect(inputs []effect.Rect) effect.Rect {
	if len(inputs) == 0 {
		return effect.Rect{}
	}
	return inputs[0].Inflate(t.grow)
}

func (t *growTransform) MapOutputRectToInputRects(output effect.Rect, inputs []effect.Rect) {
	for i := range inputs {
		inputs[i] = output.Inflate(t.grow)
	}
}

func (t *growTransform) Kernel() effect.Kernel            { return t.kernel }
func (t *growTransform) Constants() effect.ConstantBuffer { return t.constants }

func uniform(r image.Rectangle, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func nearRGBA(a, b color.RGBA, tol int) bool {
	d := func(x, y uint8) bool {
		v := int(x) - int(y)
		if v < 0 {
			v = -v
		}
		return v <= tol
	}
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

var opaqueRed = color.RGBA{R: 255, A: 255}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendCPU) {
		t.Fatal("cpu backend not registered")
	}
	g, closeFn, err := backend.Open(backend.BackendCPU)
	if err != nil {
		t.Fatalf("Open(cpu) error = %v", err)
	}
	defer closeFn()
	if g.Device() != nil {
		t.Error("cpu graph Device() should be nil")
	}
}

func TestNewSourceNegativeOrigin(t *testing.T) {
	g := New()
	r := image.Rect(-5, -3, 5, 7)
	src := g.NewSource(uniform(r, opaqueRed))

	if got, want := src.Bounds(), effect.R(-5, -3, 5, 7); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	px, err := g.Render(src)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := px.RGBAAt(-5, -3); got != opaqueRed {
		t.Errorf("pixel(-5,-3) = %v, want %v", got, opaqueRed)
	}
}

func TestConstantBuffer(t *testing.T) {
	g := New()
	if _, err := g.NewConstantBuffer("bad", 0); err == nil {
		t.Error("NewConstantBuffer(size 0) should fail")
	}

	cb, err := g.NewConstantBuffer("params", 16)
	if err != nil {
		t.Fatalf("NewConstantBuffer() error = %v", err)
	}
	buf := cb.(*ConstantBuffer)

	if err := cb.Write(make([]byte, 17)); err == nil {
		t.Error("Write(17 bytes) into 16-byte buffer should fail")
	}
	if err := cb.Write([]byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if buf.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", buf.Writes())
	}
	if cb.Bytes()[3] != 4 || cb.Size() != 16 {
		t.Errorf("Bytes() = %v, Size() = %d", cb.Bytes(), cb.Size())
	}

	cb.Release()
	if err := cb.Write([]byte{1}); !errors.Is(err, ErrReleased) {
		t.Errorf("Write after Release error = %v, want ErrReleased", err)
	}
}

func TestCustomEffectNoInput(t *testing.T) {
	g := New()
	k, _ := g.NewKernel("k", effect.KernelBinary{1, 2, 3, 4})
	e, err := g.NewCustomEffect("custom", &growTransform{grow: 2, kernel: k})
	if err != nil {
		t.Fatalf("NewCustomEffect() error = %v", err)
	}
	if !e.Output().Bounds().IsEmpty() {
		t.Errorf("output without input = %+v, want empty", e.Output().Bounds())
	}
	if _, err := g.Render(e.Output()); !errors.Is(err, ErrNoInput) {
		t.Errorf("Render() error = %v, want ErrNoInput", err)
	}
}

func TestCustomEffectEmptyKernel(t *testing.T) {
	g := New()
	k, _ := g.NewKernel("empty", nil)
	if !k.Empty() {
		t.Fatal("kernel without code should be empty")
	}

	called := false
	g.kernelFunc = func(dst, src *image.RGBA, constants []byte) error {
		called = true
		return nil
	}

	e, _ := g.NewCustomEffect("custom", &growTransform{grow: 3, kernel: k})
	e.SetInput(0, g.NewSource(uniform(image.Rect(0, 0, 4, 4), opaqueRed)), true)

	px, err := g.Render(e.Output())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if called {
		t.Error("empty kernel should not run the kernel func")
	}
	if got, want := px.Bounds(), image.Rect(-3, -3, 7, 7); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if got := px.RGBAAt(1, 1); got.A != 0 {
		t.Errorf("empty kernel pixel = %v, want transparent", got)
	}
}

func TestCustomEffectKernelRegions(t *testing.T) {
	var gotDst, gotSrc image.Rectangle
	var gotConstants []byte
	g := New(WithKernelFunc(func(dst, src *image.RGBA, constants []byte) error {
		gotDst, gotSrc, gotConstants = dst.Bounds(), src.Bounds(), constants
		return nil
	}))

	k, _ := g.NewKernel("k", effect.KernelBinary{1, 2, 3, 4})
	cb, _ := g.NewConstantBuffer("cb", 4)
	_ = cb.Write([]byte{9, 8, 7, 6})

	e, _ := g.NewCustomEffect("custom", &growTransform{grow: 2, kernel: k, constants: cb})
	e.SetInput(0, g.NewSource(uniform(image.Rect(0, 0, 10, 10), opaqueRed)), true)

	if _, err := g.Render(e.Output()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if want := image.Rect(-2, -2, 12, 12); gotDst != want {
		t.Errorf("dst bounds = %v, want %v", gotDst, want)
	}
	if want := image.Rect(-4, -4, 14, 14); gotSrc != want {
		t.Errorf("src bounds = %v, want %v", gotSrc, want)
	}
	if len(gotConstants) != 4 || gotConstants[0] != 9 {
		t.Errorf("constants = %v, want [9 8 7 6]", gotConstants)
	}
}

func TestCustomEffectKernelError(t *testing.T) {
	boom := errors.New("boom")
	g := New(WithKernelFunc(func(dst, src *image.RGBA, constants []byte) error { return boom }))
	k, _ := g.NewKernel("k", effect.KernelBinary{1, 2, 3, 4})
	e, _ := g.NewCustomEffect("custom", &growTransform{kernel: k})
	e.SetInput(0, g.NewSource(uniform(image.Rect(0, 0, 2, 2), opaqueRed)), false)

	if _, err := g.Render(e.Output()); !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want boom", err)
	}
}

func TestNewCustomEffectNilTransform(t *testing.T) {
	if _, err := New().NewCustomEffect("x", nil); err == nil {
		t.Error("NewCustomEffect(nil) should fail")
	}
}

func TestGaussianBounds(t *testing.T) {
	g := New()
	r := image.Rect(0, 0, 20, 20)

	tests := []struct {
		name   string
		sigma  float32
		border effect.BorderMode
		want   effect.Rect
	}{
		{"zero sigma", 0, effect.BorderSoft, effect.R(0, 0, 20, 20)},
		{"soft", 2, effect.BorderSoft, effect.R(0, 0, 20, 20).Inflate(int32(filter.KernelHalfSize(2)))},
		{"hard", 2, effect.BorderHard, effect.R(0, 0, 20, 20)},
		{"negative sigma", -1, effect.BorderSoft, effect.R(0, 0, 20, 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := g.NewGaussianBlur("blur")
			e.SetInput(0, g.NewSource(uniform(r, opaqueRed)), true)
			e.SetStandardDeviation(tt.sigma)
			e.SetBorderMode(tt.border)

			if got := e.Output().Bounds(); got != tt.want {
				t.Errorf("Bounds() = %+v, want %+v", got, tt.want)
			}
			px, err := g.Render(e.Output())
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if got := effect.FromImage(px.Bounds()); got != tt.want {
				t.Errorf("rendered bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGaussianHardKeepsUniform(t *testing.T) {
	g := New()
	e, _ := g.NewGaussianBlur("blur")
	e.SetInput(0, g.NewSource(uniform(image.Rect(0, 0, 16, 16), opaqueRed)), true)
	e.SetStandardDeviation(3)
	e.SetBorderMode(effect.BorderHard)

	px, err := g.Render(e.Output())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {15, 15}, {8, 3}} {
		if got := px.RGBAAt(p.X, p.Y); !nearRGBA(got, opaqueRed, 1) {
			t.Errorf("pixel %v = %v, want %v", p, got, opaqueRed)
		}
	}
}

func TestGaussianSpeed(t *testing.T) {
	g := New()
	e, _ := g.NewGaussianBlur("blur")
	e.SetInput(0, g.NewSource(uniform(image.Rect(0, 0, 64, 64), opaqueRed)), true)
	e.SetStandardDeviation(6)
	e.SetBorderMode(effect.BorderHard)
	e.SetOptimization(effect.OptimizationSpeed)

	px, err := g.Render(e.Output())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got, want := px.Bounds(), image.Rect(0, 0, 64, 64); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}
	if got := px.RGBAAt(32, 32); !nearRGBA(got, opaqueRed, 2) {
		t.Errorf("center = %v, want %v", got, opaqueRed)
	}
}

func TestHalve(t *testing.T) {
	tests := []struct {
		in, want image.Rectangle
	}{
		{image.Rect(0, 0, 10, 10), image.Rect(0, 0, 5, 5)},
		{image.Rect(-3, -3, 3, 3), image.Rect(-2, -2, 2, 2)},
		{image.Rect(1, 1, 2, 2), image.Rect(0, 0, 1, 1)},
	}
	for _, tt := range tests {
		if got := halve(tt.in); got != tt.want {
			t.Errorf("halve(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLiveCount(t *testing.T) {
	g := New()
	src := g.NewSource(uniform(image.Rect(0, 0, 2, 2), opaqueRed))
	e, _ := g.NewGaussianBlur("blur")
	cb, _ := g.NewConstantBuffer("cb", 16)
	k, _ := g.NewKernel("k", nil)

	// source, blur effect and its output, buffer, kernel
	if got := g.Live(); got != 5 {
		t.Fatalf("Live() = %d, want 5", got)
	}

	e.Output().Release()
	e.Release()
	e.Release()
	cb.Release()
	k.Release()
	src.Release()

	if got := g.Live(); got != 0 {
		t.Errorf("Live() after release = %d, want 0", got)
	}
	if _, err := g.Render(src); !errors.Is(err, ErrReleased) {
		t.Errorf("Render(released) error = %v, want ErrReleased", err)
	}
}

func TestRenderForeignImage(t *testing.T) {
	a, b := New(), New()
	src := a.NewSource(uniform(image.Rect(0, 0, 1, 1), opaqueRed))
	if _, err := b.Render(src); !errors.Is(err, ErrForeignImage) {
		t.Errorf("Render(foreign) error = %v, want ErrForeignImage", err)
	}
}

func TestLensKernel(t *testing.T) {
	if err := LensKernel(image.NewRGBA(image.Rect(0, 0, 1, 1)), image.NewRGBA(image.Rect(0, 0, 1, 1)), []byte{1}); err == nil {
		t.Error("LensKernel with short constants should fail")
	}

	block := effect.ParameterBlock{Radius: 0, Brightness: 1, EdgeStrength: 0, Quality: 8}
	src := uniform(image.Rect(0, 0, 4, 4), opaqueRed)
	dst := image.NewRGBA(src.Bounds())
	if err := LensKernel(dst, src, block.Bytes()); err != nil {
		t.Fatalf("LensKernel() error = %v", err)
	}
	if got := dst.RGBAAt(2, 2); got != opaqueRed {
		t.Errorf("zero radius pixel = %v, want copy %v", got, opaqueRed)
	}
}
