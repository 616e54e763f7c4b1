// Package dof provides a per-frame depth of field effect for layered 2D
// scene renderers.
//
// # Overview
//
// Each frame the host hands the Processor one rendered layer together with
// the camera transform and the item's position. The Processor measures the
// item's distance to the camera, maps it through a focus band to a blur
// amount and drives one of two blur nodes in an effect graph:
//
//   - BlurGaussian: the runtime's built-in separable Gaussian blur
//   - BlurLens: a custom bokeh kernel with brightness, edge and quality
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/dof"
//		"github.com/gogpu/dof/backend/cpu"
//	)
//
//	g := cpu.New()
//	s := dof.DefaultSettings()
//	p, err := dof.NewProcessor(g, s)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	p.SetInput(g.NewSource(layer))
//	p.Update(desc)
//	img, err := g.Render(p.Output())
//
// # Focus
//
// Distance is measured from the eye point, 1000 units in front of the camera
// along its view axis. FocusSpherical uses the Euclidean distance, and
// FocusPlanar the distance along the view direction only. Items whose
// distance falls inside [FocusDistance-FocusRange/2, FocusDistance+FocusRange/2]
// are sharp; outside the band the blur grows linearly with the near or far
// scale and is clamped to MaxBlur.
//
// # Settings
//
// Settings hold animated parameters sampled at each frame. They can be
// loaded from TOML with LoadSettings:
//
//	blur_type = "lens"
//	focus_mode = "spherical"
//
//	[focus_distance]
//	values = [800.0, 1200.0]
//
// # Logging
//
// dof is silent by default. SetLogger installs a log/slog logger for the
// package and the effect nodes.
package dof
