package effect

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Errors returned by nodes.
var (
	// ErrNilGraph is returned when a node is created without a graph.
	ErrNilGraph = errors.New("effect: nil graph")

	// ErrClosed is returned when a closed node is used.
	ErrClosed = errors.New("effect: node closed")

	// ErrUnknownParameter is returned for an out-of-range ParameterIndex.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// Graph is the effect-graph runtime a node is created in.
//
// The runtime owns image resources and executes kernels; nodes only create
// runtime objects through this interface and release them on Close. Calls
// into a single node are serialized by the runtime.
type Graph interface {
	// Device returns the GPU device the graph runs on, or nil for a
	// CPU-only graph.
	Device() gpucontext.DeviceProvider

	// NewConstantBuffer allocates a device-resident constant buffer of
	// size bytes.
	NewConstantBuffer(label string, size int) (ConstantBuffer, error)

	// NewKernel creates a compute kernel from compiled code. An empty code
	// slice yields a kernel that produces no output.
	NewKernel(label string, code KernelBinary) (Kernel, error)

	// NewCustomEffect creates an effect whose region of interest, kernel
	// and constants are supplied by t.
	NewCustomEffect(label string, t Transform) (Effect, error)

	// NewGaussianBlur creates an instance of the runtime's built-in
	// separable Gaussian blur.
	NewGaussianBlur(label string) (GaussianBlurEffect, error)
}

// Image is an image handle owned by the runtime.
type Image interface {
	// Bounds returns the image's pixel bounds, possibly with a negative
	// origin.
	Bounds() Rect

	// Format returns the pixel format of the image.
	Format() gputypes.TextureFormat

	// Release drops the handle. Releasing twice is a no-op.
	Release()
}

// Effect is a runtime effect instance with a single image output.
type Effect interface {
	// SetInput binds img to input slot index. invalidate asks the runtime
	// to recompute the whole output region.
	SetInput(index int, img Image, invalidate bool)

	// ClearInput unbinds input slot index.
	ClearInput(index int)

	// Output returns the effect's output image. The handle is stable for
	// the effect's lifetime.
	Output() Image

	// Release destroys the effect.
	Release()
}

// Transform is implemented by nodes that drive a custom effect. The runtime
// calls the mapping methods before each draw and reads the kernel and
// constants when it executes.
type Transform interface {
	// MapInputRectsToOutputRect returns the output rectangle produced from
	// the given input rectangles. With no inputs it returns an empty Rect.
	MapInputRectsToOutputRect(inputs []Rect) Rect

	// MapOutputRectToInputRects fills inputs with the rectangles needed to
	// produce output.
	MapOutputRectToInputRects(output Rect, inputs []Rect)

	// Kernel returns the compute kernel to execute.
	Kernel() Kernel

	// Constants returns the constant buffer bound to the kernel.
	Constants() ConstantBuffer
}

// ConstantBuffer is a device-resident block of kernel parameters.
type ConstantBuffer interface {
	// Size returns the buffer size in bytes.
	Size() int

	// Write uploads data to the start of the buffer.
	Write(data []byte) error

	// Bytes returns the last data written.
	Bytes() []byte

	// Release frees the device memory.
	Release()
}

// Kernel is a compiled compute kernel.
type Kernel interface {
	// Label returns the kernel's debug label.
	Label() string

	// Empty reports whether the kernel has no code and is inert.
	Empty() bool

	// Release frees the kernel.
	Release()
}

// BorderMode controls how the Gaussian blur treats the image edge.
type BorderMode uint8

// Border mode constants.
const (
	// BorderSoft lets the blur grow past the input bounds.
	BorderSoft BorderMode = iota

	// BorderHard clips the output to the input bounds.
	BorderHard
)

// String returns a human-readable name for the border mode.
func (m BorderMode) String() string {
	switch m {
	case BorderSoft:
		return "soft"
	case BorderHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Optimization trades Gaussian blur quality against speed.
type Optimization uint8

// Optimization constants.
const (
	OptimizationBalanced Optimization = iota
	OptimizationSpeed
	OptimizationQuality
)

// String returns a human-readable name for the optimization.
func (o Optimization) String() string {
	switch o {
	case OptimizationBalanced:
		return "balanced"
	case OptimizationSpeed:
		return "speed"
	case OptimizationQuality:
		return "quality"
	default:
		return "unknown"
	}
}

// GaussianBlurEffect is the runtime's built-in separable blur.
type GaussianBlurEffect interface {
	Effect

	// SetStandardDeviation sets the blur's standard deviation in pixels.
	SetStandardDeviation(sigma float32)

	// SetBorderMode sets the edge behavior.
	SetBorderMode(mode BorderMode)

	// SetOptimization sets the quality/speed trade-off.
	SetOptimization(o Optimization)
}
