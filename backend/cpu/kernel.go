// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"fmt"
	"image"

	"github.com/gogpu/dof/effect"
	"github.com/gogpu/dof/internal/filter"
)

// KernelFunc executes a custom effect kernel. dst covers the output region
// and must be fully written; src covers the input region requested by the
// effect's Transform; constants are the bytes of its constant buffer.
type KernelFunc func(dst, src *image.RGBA, constants []byte) error

// LensKernel is the software counterpart of the bundled lens blur shader.
// constants must hold an effect.ParameterBlock.
func LensKernel(dst, src *image.RGBA, constants []byte) error {
	p, err := effect.DecodeParameterBlock(constants)
	if err != nil {
		return fmt.Errorf("cpu: lens kernel: %w", err)
	}
	filter.LensBlur(dst, src, filter.LensParams{
		Radius:       float64(p.Radius),
		Brightness:   float64(p.Brightness),
		EdgeStrength: float64(p.EdgeStrength),
		Quality:      float64(p.Quality),
	})
	return nil
}
