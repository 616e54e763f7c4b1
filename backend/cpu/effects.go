// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/dof/effect"
	"github.com/gogpu/dof/internal/filter"
)

// node holds the state shared by custom and Gaussian effects.
type node struct {
	graph    *Graph
	label    string
	input    effect.Image
	output   *Image
	released bool
}

// SetInput binds img to slot 0. The CPU graph recomputes outputs on every
// Render, so invalidate needs no extra work. Other slots are ignored.
func (n *node) SetInput(index int, img effect.Image, invalidate bool) {
	if index != 0 || n.released {
		return
	}
	n.input = img
}

// ClearInput unbinds slot 0.
func (n *node) ClearInput(index int) {
	if index != 0 {
		return
	}
	n.input = nil
}

// Output returns the effect's output image.
func (n *node) Output() effect.Image { return n.output }

// Release destroys the effect. The output image is released separately.
func (n *node) Release() {
	if n.released {
		return
	}
	n.released = true
	n.input = nil
	n.graph.free()
}

func (n *node) source() (*image.RGBA, effect.Rect, error) {
	if n.released {
		return nil, effect.Rect{}, ErrReleased
	}
	if n.input == nil {
		return nil, effect.Rect{}, ErrNoInput
	}
	in, err := n.graph.image(n.input)
	if err != nil {
		return nil, effect.Rect{}, err
	}
	src, err := in.render()
	if err != nil {
		return nil, effect.Rect{}, err
	}
	return src, effect.FromImage(src.Bounds()), nil
}

func (n *node) inputBounds() (effect.Rect, bool) {
	if n.input == nil || n.released {
		return effect.Rect{}, false
	}
	return n.input.Bounds(), true
}

// customEffect runs a KernelFunc over the regions its Transform maps.
type customEffect struct {
	node
	transform effect.Transform
}

func (e *customEffect) bounds() effect.Rect {
	in, ok := e.inputBounds()
	if !ok {
		return e.transform.MapInputRectsToOutputRect(nil)
	}
	return e.transform.MapInputRectsToOutputRect([]effect.Rect{in})
}

func (e *customEffect) render() (*image.RGBA, error) {
	src, in, err := e.source()
	if err != nil {
		return nil, err
	}
	out := e.transform.MapInputRectsToOutputRect([]effect.Rect{in})
	needed := []effect.Rect{{}}
	e.transform.MapOutputRectToInputRects(out, needed)

	dst := image.NewRGBA(out.Image())
	k := e.transform.Kernel()
	if k == nil || k.Empty() || out.IsEmpty() {
		return dst, nil
	}

	var constants []byte
	if cb := e.transform.Constants(); cb != nil {
		constants = cb.Bytes()
	}
	if err := e.graph.kernelFunc(dst, crop(src, needed[0].Image()), constants); err != nil {
		return nil, err
	}
	return dst, nil
}

// speedMinSigma is the smallest deviation blurred at half resolution under
// OptimizationSpeed.
const speedMinSigma = 4

// gaussianEffect is the built-in separable blur.
type gaussianEffect struct {
	node
	sigma        float32
	border       effect.BorderMode
	optimization effect.Optimization
}

var _ effect.GaussianBlurEffect = (*gaussianEffect)(nil)

func (e *gaussianEffect) SetStandardDeviation(sigma float32) {
	if !(sigma > 0) {
		sigma = 0
	}
	e.sigma = sigma
}

func (e *gaussianEffect) SetBorderMode(mode effect.BorderMode) { e.border = mode }

func (e *gaussianEffect) SetOptimization(o effect.Optimization) { e.optimization = o }

// StandardDeviation returns the current deviation in pixels.
func (e *gaussianEffect) StandardDeviation() float32 { return e.sigma }

// BorderMode returns the current edge behavior.
func (e *gaussianEffect) BorderMode() effect.BorderMode { return e.border }

// Optimization returns the current quality/speed trade-off.
func (e *gaussianEffect) Optimization() effect.Optimization { return e.optimization }

func (e *gaussianEffect) outputRect(in effect.Rect) effect.Rect {
	if e.border == effect.BorderHard || e.sigma == 0 {
		return in
	}
	return in.Inflate(int32(filter.KernelHalfSize(float64(e.sigma))))
}

func (e *gaussianEffect) bounds() effect.Rect {
	in, ok := e.inputBounds()
	if !ok {
		return effect.Rect{}
	}
	return e.outputRect(in)
}

func (e *gaussianEffect) render() (*image.RGBA, error) {
	src, in, err := e.source()
	if err != nil {
		return nil, err
	}
	out := e.outputRect(in).Image()
	dst := image.NewRGBA(out)

	if e.sigma == 0 {
		draw.Copy(dst, out.Min, src, out, draw.Src, nil)
		return dst, nil
	}

	edge := filter.EdgeTransparent
	if e.border == effect.BorderHard {
		edge = filter.EdgeClamp
	}

	sigma := float64(e.sigma)
	if e.optimization == effect.OptimizationSpeed && sigma >= speedMinSigma {
		halfResolution(dst, src, sigma, edge)
		return dst, nil
	}
	filter.Gaussian(dst, src, sigma, edge)
	return dst, nil
}

// halfResolution blurs src into dst at half scale and upsamples the result.
func halfResolution(dst, src *image.RGBA, sigma float64, edge filter.EdgeMode) {
	small := image.NewRGBA(halve(src.Bounds()))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)

	blurred := image.NewRGBA(halve(dst.Bounds()))
	filter.Gaussian(blurred, small, sigma/2, edge)

	draw.BiLinear.Scale(dst, dst.Bounds(), blurred, blurred.Bounds(), draw.Src, nil)
}

// halve maps r to half-resolution coordinates, rounding outward.
func halve(r image.Rectangle) image.Rectangle {
	return image.Rect(floorHalf(r.Min.X), floorHalf(r.Min.Y), ceilHalf(r.Max.X), ceilHalf(r.Max.Y))
}

func floorHalf(v int) int { return v >> 1 }

func ceilHalf(v int) int { return (v + 1) >> 1 }
