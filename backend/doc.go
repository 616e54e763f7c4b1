// Package backend selects the effect graph a depth of field processor runs
// in.
//
// Graph implementations register a factory from init(), so importing a
// backend package makes it available:
//
//	import (
//		_ "github.com/gogpu/dof/backend/cpu"
//		_ "github.com/gogpu/dof/backend/hal"
//	)
//
//	g, closeGraph, name, err := backend.OpenDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer closeGraph()
//
// # Available Backends
//
//   - "cpu": software graph on *image.RGBA (always available)
//   - "hal": wgpu/hal device for constant buffers and kernel modules,
//     executing on the CPU graph
package backend
