// Package hal places effect constant buffers and kernel modules on a
// wgpu/hal device.
//
// A Graph wraps another effect.Graph that executes the effects, typically
// the CPU graph. Every constant buffer is created as a uniform buffer on the
// device and every write goes to the device queue as well as to the wrapped
// buffer; kernels with code become SPIR-V shader modules.
//
// With the default build the package registers the "hal" backend, which
// opens a Vulkan device. Build with -tags nogpu to leave it unregistered.
package hal
