package effect

import (
	"fmt"
	"log/slog"
)

// LensBlurNode drives the custom lens kernel.
//
// The node owns a ParameterBlock mirrored in a device constant buffer.
// Every parameter change rewrites one slot and pushes the whole block, so
// several changes in one frame each trigger an upload. The fix-size flag
// only affects the region of interest.
type LensBlurNode struct {
	effect  Effect
	output  Image
	buffer  ConstantBuffer
	kernel  Kernel
	params  ParameterBlock
	fixSize bool

	kernelErr error
	log       *slog.Logger
	closed    bool
}

var _ Transform = (*LensBlurNode)(nil)

// NewLensBlurNode creates a lens blur node in g.
//
// The kernel is loaded once from the bundled resources (or WithKernelFS).
// If it cannot be loaded the node is still created, with an empty kernel
// that produces no visible output; KernelErr reports the cause. Errors are
// returned only when the runtime fails to create its objects.
func NewLensBlurNode(g Graph, opts ...NodeOption) (*LensBlurNode, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := defaultNodeOptions("lens_blur")
	for _, opt := range opts {
		opt(&o)
	}

	n := &LensBlurNode{params: DefaultParameterBlock(), log: o.log()}

	code, err := LoadKernel(o.kernelFS, o.kernelName)
	if err != nil {
		n.kernelErr = err
		n.log.Warn("effect: lens kernel unavailable, output will be empty",
			"label", o.label, "err", err)
	}

	n.buffer, err = g.NewConstantBuffer(o.label+"_params", ParameterBlockSize)
	if err != nil {
		return nil, fmt.Errorf("effect: create constant buffer: %w", err)
	}

	n.kernel, err = g.NewKernel(o.label+"_kernel", code)
	if err != nil {
		n.Close()
		return nil, fmt.Errorf("effect: create kernel: %w", err)
	}

	n.effect, err = g.NewCustomEffect(o.label, n)
	if err != nil {
		n.Close()
		return nil, fmt.Errorf("effect: create custom effect: %w", err)
	}
	n.output = n.effect.Output()

	if err := n.push(); err != nil {
		n.Close()
		return nil, err
	}

	n.log.Debug("effect: lens blur node created",
		"label", o.label, "kernel_bytes", len(code))
	return n, nil
}

// SetParameter writes v into slot i of the parameter block and pushes the
// whole block to the device.
func (n *LensBlurNode) SetParameter(i ParameterIndex, v float32) error {
	if n.closed {
		return ErrClosed
	}
	if err := n.params.Set(i, v); err != nil {
		return err
	}
	return n.push()
}

// SetRadius sets the blur radius in pixels. Negative values are stored as 0.
func (n *LensBlurNode) SetRadius(r float32) error {
	if !(r > 0) {
		r = 0
	}
	return n.SetParameter(ParamRadius, r)
}

// SetBrightness sets the highlight gain (1 = unchanged).
func (n *LensBlurNode) SetBrightness(v float32) error {
	return n.SetParameter(ParamBrightness, v)
}

// SetEdgeStrength sets the bokeh rim emphasis.
func (n *LensBlurNode) SetEdgeStrength(v float32) error {
	return n.SetParameter(ParamEdgeStrength, v)
}

// SetQuality sets the number of disc samples per pixel.
func (n *LensBlurNode) SetQuality(v float32) error {
	return n.SetParameter(ParamQuality, v)
}

// SetFixSize controls whether the output keeps the input bounds.
// It does not touch the parameter block.
func (n *LensBlurNode) SetFixSize(fix bool) {
	n.fixSize = fix
}

// FixSize reports the fix-size flag.
func (n *LensBlurNode) FixSize() bool { return n.fixSize }

// Parameters returns a copy of the current parameter block.
func (n *LensBlurNode) Parameters() ParameterBlock { return n.params }

// KernelErr returns the kernel load failure, or nil if the kernel loaded.
func (n *LensBlurNode) KernelErr() error { return n.kernelErr }

func (n *LensBlurNode) push() error {
	if err := n.buffer.Write(n.params.Bytes()); err != nil {
		return fmt.Errorf("effect: push parameter block: %w", err)
	}
	return nil
}

// MapInputRectsToOutputRect implements Transform.
func (n *LensBlurNode) MapInputRectsToOutputRect(inputs []Rect) Rect {
	if len(inputs) == 0 {
		return Rect{}
	}
	return OutputFromInput(inputs[0], n.params.Radius, n.fixSize)
}

// MapOutputRectToInputRects implements Transform.
func (n *LensBlurNode) MapOutputRectToInputRects(output Rect, inputs []Rect) {
	in := InputFromOutput(output, n.params.Radius)
	for i := range inputs {
		inputs[i] = in
	}
}

// Kernel implements Transform.
func (n *LensBlurNode) Kernel() Kernel { return n.kernel }

// Constants implements Transform.
func (n *LensBlurNode) Constants() ConstantBuffer { return n.buffer }

// SetInput binds the image to blur.
func (n *LensBlurNode) SetInput(img Image, invalidate bool) {
	if n.closed {
		return
	}
	n.effect.SetInput(0, img, invalidate)
}

// ClearInput unbinds the input image.
func (n *LensBlurNode) ClearInput() {
	if n.closed {
		return
	}
	n.effect.ClearInput(0)
}

// Output returns the node's output image. The handle is stable until Close.
func (n *LensBlurNode) Output() Image { return n.output }

// ReleaseOutput releases the output handle ahead of Close. Output returns
// nil afterwards.
func (n *LensBlurNode) ReleaseOutput() {
	if n.output != nil {
		n.output.Release()
		n.output = nil
	}
}

// Close releases the output, the effect, the kernel and the constant buffer,
// in that order, skipping any the node never created. Close is idempotent.
func (n *LensBlurNode) Close() {
	if n.closed {
		return
	}
	n.closed = true
	n.ReleaseOutput()
	if n.effect != nil {
		n.effect.Release()
	}
	if n.kernel != nil {
		n.kernel.Release()
	}
	n.buffer.Release()
}
