package effect

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// mockGraph records every runtime call made by the nodes under test.
type mockGraph struct {
	events []string

	buffers   []*mockBuffer
	kernels   []*mockKernel
	customs   []*mockEffect
	gaussians []*mockGaussian

	failBuffer bool
	failKernel bool
	failEffect bool
	failWrite  bool
}

var errMock = errors.New("mock failure")

func (g *mockGraph) record(e string) { g.events = append(g.events, e) }

func (g *mockGraph) Device() gpucontext.DeviceProvider { return nil }

func (g *mockGraph) NewConstantBuffer(label string, size int) (ConstantBuffer, error) {
	if g.failBuffer {
		return nil, errMock
	}
	b := &mockBuffer{graph: g, label: label, data: make([]byte, size)}
	g.buffers = append(g.buffers, b)
	return b, nil
}

func (g *mockGraph) NewKernel(label string, code KernelBinary) (Kernel, error) {
	if g.failKernel {
		return nil, errMock
	}
	k := &mockKernel{graph: g, label: label, code: code}
	g.kernels = append(g.kernels, k)
	return k, nil
}

func (g *mockGraph) NewCustomEffect(label string, t Transform) (Effect, error) {
	if g.failEffect {
		return nil, errMock
	}
	e := &mockEffect{graph: g, name: "effect", transform: t}
	e.output = &mockImage{graph: g, name: "output"}
	g.customs = append(g.customs, e)
	return e, nil
}

func (g *mockGraph) NewGaussianBlur(label string) (GaussianBlurEffect, error) {
	if g.failEffect {
		return nil, errMock
	}
	e := &mockGaussian{mockEffect: mockEffect{graph: g, name: "gaussian"}}
	e.output = &mockImage{graph: g, name: "gaussian_output"}
	g.gaussians = append(g.gaussians, e)
	return e, nil
}

type mockBuffer struct {
	graph  *mockGraph
	label  string
	data   []byte
	writes int
}

func (b *mockBuffer) Size() int { return len(b.data) }

func (b *mockBuffer) Write(data []byte) error {
	if b.graph.failWrite {
		return errMock
	}
	copy(b.data, data)
	b.writes++
	b.graph.record("buffer.write")
	return nil
}

func (b *mockBuffer) Bytes() []byte { return b.data }
func (b *mockBuffer) Release()      { b.graph.record("buffer.release") }

type mockKernel struct {
	graph *mockGraph
	label string
	code  KernelBinary
}

func (k *mockKernel) Label() string { return k.label }
func (k *mockKernel) Empty() bool   { return len(k.code) == 0 }
func (k *mockKernel) Release()      { k.graph.record("kernel.release") }

type mockImage struct {
	graph  *mockGraph
	name   string
	bounds Rect
}

func (m *mockImage) Bounds() Rect                   { return m.bounds }
func (m *mockImage) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (m *mockImage) Release()                       { m.graph.record(m.name + ".release") }

type mockEffect struct {
	graph      *mockGraph
	name       string
	transform  Transform
	output     Image
	input      Image
	invalidate bool
	setInputs  int
}

func (e *mockEffect) SetInput(index int, img Image, invalidate bool) {
	e.input = img
	e.invalidate = invalidate
	e.setInputs++
}

func (e *mockEffect) ClearInput(index int) { e.input = nil }
func (e *mockEffect) Output() Image        { return e.output }
func (e *mockEffect) Release()             { e.graph.record(e.name + ".release") }

type mockGaussian struct {
	mockEffect
	sigma        float32
	border       BorderMode
	optimization Optimization
}

func (e *mockGaussian) SetStandardDeviation(sigma float32) { e.sigma = sigma }
func (e *mockGaussian) SetBorderMode(mode BorderMode)      { e.border = mode }
func (e *mockGaussian) SetOptimization(o Optimization)     { e.optimization = o }
