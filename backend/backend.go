package backend

import (
	"errors"

	"github.com/gogpu/dof/effect"
)

// Backend names.
const (
	// BackendCPU is the software effect graph (always available).
	BackendCPU = "cpu"

	// BackendHAL mirrors constant buffers and kernels on a wgpu/hal device.
	BackendHAL = "hal"
)

var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or cannot be opened.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Factory opens an effect graph. close releases whatever the factory
// acquired (devices, instances) and may be nil.
type Factory func() (g effect.Graph, close func(), err error)
