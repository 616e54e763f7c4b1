// Package effect implements the image-effect nodes used by the depth of
// field processor.
//
// A node sits in an effect graph owned by an external runtime (see [Graph]).
// The runtime owns image resources, asks each node which pixel regions it
// consumes and produces, and executes the per-pixel kernel. Nodes own their
// runtime objects and keep the device-resident parameter block in sync with
// their properties.
//
// # Nodes
//
//   - [LensBlurNode]: custom lens (bokeh) kernel. Implements [Transform]
//     so the runtime can query its region of interest, and pushes a
//     [ParameterBlock] to the device on every parameter change.
//   - [GaussianBlurNode]: wraps the runtime's built-in separable blur and
//     maps a blur amount to its standard deviation.
//
// # Region of interest
//
// A lens blur with radius r reads and writes up to ceil(r) pixels beyond
// any output pixel. [OutputFromInput] and [InputFromOutput] declare that
// coverage; with fix-size set, the output is kept at the input bounds while
// the input side still expands.
//
// # Kernel resource
//
// The lens kernel is bundled as WGSL and compiled to SPIR-V with naga when
// a node is created. A missing or broken resource is not fatal: the node is
// built with an empty kernel and produces no visible effect, and
// [LensBlurNode.KernelErr] reports why.
package effect
