// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/dof/backend"
	"github.com/gogpu/dof/effect"
)

// Errors returned by the CPU graph.
var (
	// ErrReleased is returned when a released image or effect is rendered.
	ErrReleased = errors.New("cpu: resource released")

	// ErrNoInput is returned when an effect without an input is rendered.
	ErrNoInput = errors.New("cpu: effect has no input")

	// ErrForeignImage is returned when an image from another graph is used.
	ErrForeignImage = errors.New("cpu: image not created by this graph")
)

func init() {
	backend.Register(backend.BackendCPU, func() (effect.Graph, func(), error) {
		return New(), nil, nil
	})
}

// Graph is a software effect graph.
type Graph struct {
	kernelFunc KernelFunc
	live       atomic.Int64
}

var _ effect.Graph = (*Graph)(nil)

// Option configures a Graph.
type Option func(*Graph)

// WithKernelFunc sets the function that executes non-empty kernels.
func WithKernelFunc(fn KernelFunc) Option {
	return func(g *Graph) {
		if fn != nil {
			g.kernelFunc = fn
		}
	}
}

// New creates a CPU graph.
func New(opts ...Option) *Graph {
	g := &Graph{kernelFunc: LensKernel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Device returns nil: the CPU graph has no GPU device.
func (g *Graph) Device() gpucontext.DeviceProvider { return nil }

// Live returns the number of resources created by g and not yet released.
func (g *Graph) Live() int { return int(g.live.Load()) }

func (g *Graph) acquire() { g.live.Add(1) }
func (g *Graph) free()    { g.live.Add(-1) }

// NewConstantBuffer allocates a host-memory constant buffer.
func (g *Graph) NewConstantBuffer(label string, size int) (effect.ConstantBuffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cpu: constant buffer %q: invalid size %d", label, size)
	}
	g.acquire()
	return &ConstantBuffer{graph: g, label: label, data: make([]byte, size)}, nil
}

// NewKernel wraps code. The CPU graph never executes the code itself; a
// non-empty kernel runs the graph's KernelFunc.
func (g *Graph) NewKernel(label string, code effect.KernelBinary) (effect.Kernel, error) {
	g.acquire()
	return &Kernel{graph: g, label: label, size: len(code)}, nil
}

// NewCustomEffect creates an effect driven by t.
func (g *Graph) NewCustomEffect(label string, t effect.Transform) (effect.Effect, error) {
	if t == nil {
		return nil, fmt.Errorf("cpu: custom effect %q: nil transform", label)
	}
	e := &customEffect{node: node{graph: g, label: label}, transform: t}
	e.output = g.newOutput(e)
	g.acquire()
	return e, nil
}

// NewGaussianBlur creates the built-in separable blur.
func (g *Graph) NewGaussianBlur(label string) (effect.GaussianBlurEffect, error) {
	e := &gaussianEffect{node: node{graph: g, label: label}}
	e.output = g.newOutput(e)
	g.acquire()
	return e, nil
}

// Render evaluates img and returns its pixels. The result's bounds are
// img.Bounds().
func (g *Graph) Render(img effect.Image) (*image.RGBA, error) {
	im, err := g.image(img)
	if err != nil {
		return nil, err
	}
	return im.render()
}

func (g *Graph) image(img effect.Image) (*Image, error) {
	im, ok := img.(*Image)
	if !ok || im == nil || im.graph != g {
		return nil, ErrForeignImage
	}
	return im, nil
}
