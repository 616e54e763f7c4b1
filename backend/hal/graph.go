package hal

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	whal "github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dof/effect"
)

var (
	// ErrNoHAL is returned when a device provider does not expose wgpu/hal
	// types.
	ErrNoHAL = errors.New("hal: provider does not expose HAL types")

	// ErrNilProvider is returned by New without a device provider.
	ErrNilProvider = errors.New("hal: nil device provider")
)

// halProvider is implemented by device providers backed by wgpu/hal.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Graph is an effect graph whose constant buffers and kernels live on a
// wgpu/hal device.
type Graph struct {
	base     effect.Graph
	provider gpucontext.DeviceProvider
	device   whal.Device
	queue    whal.Queue
	log      *slog.Logger
}

var _ effect.Graph = (*Graph)(nil)

// New creates a Graph on provider's device. base executes the effects.
func New(provider gpucontext.DeviceProvider, base effect.Graph) (*Graph, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if base == nil {
		return nil, effect.ErrNilGraph
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(whal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("hal: provider HalDevice is not hal.Device: %w", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(whal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("hal: provider HalQueue is not hal.Queue: %w", ErrNoHAL)
	}
	return &Graph{
		base:     base,
		provider: provider,
		device:   device,
		queue:    queue,
		log:      effect.Logger(),
	}, nil
}

// Base returns the wrapped graph.
func (g *Graph) Base() effect.Graph { return g.base }

// Device returns the device provider.
func (g *Graph) Device() gpucontext.DeviceProvider { return g.provider }

// NewConstantBuffer creates a uniform buffer on the device mirrored by a
// buffer of the base graph.
func (g *Graph) NewConstantBuffer(label string, size int) (effect.ConstantBuffer, error) {
	shadow, err := g.base.NewConstantBuffer(label, size)
	if err != nil {
		return nil, err
	}
	buf, err := g.device.CreateBuffer(&whal.BufferDescriptor{
		Label: label,
		Size:  alignedSize(size),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		shadow.Release()
		return nil, fmt.Errorf("hal: create buffer %q: %w", label, err)
	}
	return &constantBuffer{graph: g, shadow: shadow, buf: buf}, nil
}

// NewKernel creates a shader module from code. An empty kernel has no
// module.
func (g *Graph) NewKernel(label string, code effect.KernelBinary) (effect.Kernel, error) {
	base, err := g.base.NewKernel(label, code)
	if err != nil {
		return nil, err
	}
	k := &kernel{graph: g, base: base}
	if len(code) == 0 {
		return k, nil
	}
	words := code.Words()
	k.module, err = g.device.CreateShaderModule(&whal.ShaderModuleDescriptor{
		Label:  label,
		Source: whal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		base.Release()
		return nil, fmt.Errorf("hal: create shader module %q: %w", label, err)
	}
	g.log.Debug("hal: kernel module created", "label", label, "words", len(words))
	return k, nil
}

// NewCustomEffect creates the effect in the base graph.
func (g *Graph) NewCustomEffect(label string, t effect.Transform) (effect.Effect, error) {
	return g.base.NewCustomEffect(label, t)
}

// NewGaussianBlur creates the blur in the base graph.
func (g *Graph) NewGaussianBlur(label string) (effect.GaussianBlurEffect, error) {
	return g.base.NewGaussianBlur(label)
}

// alignedSize rounds size up to the 16-byte granularity of uniform buffers.
func alignedSize(size int) uint64 {
	return uint64((size + 15) &^ 15) //nolint:gosec // size validated by the base graph
}
