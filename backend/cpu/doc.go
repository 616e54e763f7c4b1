// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cpu implements effect.Graph in software on *image.RGBA.
//
// Images are lazy: the output of an effect is evaluated when it is passed to
// Render, pulling its input through the effect chain. Custom effects ask
// their Transform for the output and input regions and hand the cropped
// input, the destination and the constant buffer bytes to a KernelFunc. The
// default KernelFunc is LensKernel.
//
// Importing the package registers the "cpu" backend:
//
//	import _ "github.com/gogpu/dof/backend/cpu"
package cpu
