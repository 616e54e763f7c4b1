// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/dof/effect"
)

// producer computes the pixels of an effect output.
type producer interface {
	bounds() effect.Rect
	render() (*image.RGBA, error)
}

// Image is a CPU graph image: either a source with pixels or the output of
// an effect.
type Image struct {
	graph    *Graph
	pixels   *image.RGBA
	producer producer
	released bool
}

var _ effect.Image = (*Image)(nil)

// NewSource copies src into a new source image. The bounds, including any
// negative origin, are preserved.
func (g *Graph) NewSource(src image.Image) *Image {
	b := src.Bounds()
	rgba := image.NewRGBA(b)
	draw.Copy(rgba, b.Min, src, b, draw.Src, nil)
	g.acquire()
	return &Image{graph: g, pixels: rgba}
}

func (g *Graph) newOutput(p producer) *Image {
	g.acquire()
	return &Image{graph: g, producer: p}
}

// Bounds returns the image's pixel bounds. An effect output reports the
// region its effect currently produces.
func (im *Image) Bounds() effect.Rect {
	if im.producer != nil {
		return im.producer.bounds()
	}
	return effect.FromImage(im.pixels.Bounds())
}

// Format returns gputypes.TextureFormatRGBA8Unorm.
func (im *Image) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Release drops the image.
func (im *Image) Release() {
	if im.released {
		return
	}
	im.released = true
	im.graph.free()
}

func (im *Image) render() (*image.RGBA, error) {
	if im.released {
		return nil, ErrReleased
	}
	if im.producer != nil {
		return im.producer.render()
	}
	return im.pixels, nil
}

// crop returns the pixels of src within r. Parts of r outside src are
// transparent.
func crop(src *image.RGBA, r image.Rectangle) *image.RGBA {
	if r.In(src.Bounds()) {
		return src.SubImage(r).(*image.RGBA)
	}
	dst := image.NewRGBA(r)
	inter := r.Intersect(src.Bounds())
	if !inter.Empty() {
		draw.Copy(dst, inter.Min, src, inter, draw.Src, nil)
	}
	return dst
}
