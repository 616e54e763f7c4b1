package effect

import "fmt"

// GaussianDeadZone is the blur amount below which the Gaussian node snaps
// its standard deviation to zero.
const GaussianDeadZone = 0.1

// GaussianBlurNode wraps the runtime's built-in separable Gaussian blur.
type GaussianBlurNode struct {
	effect    GaussianBlurEffect
	output    Image
	deviation float32
	border    BorderMode
	closed    bool
}

// NewGaussianBlurNode creates a Gaussian blur node in g with quality
// optimization and a soft border.
func NewGaussianBlurNode(g Graph, opts ...NodeOption) (*GaussianBlurNode, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := defaultNodeOptions("gaussian_blur")
	for _, opt := range opts {
		opt(&o)
	}

	e, err := g.NewGaussianBlur(o.label)
	if err != nil {
		return nil, fmt.Errorf("effect: create gaussian blur: %w", err)
	}
	e.SetOptimization(OptimizationQuality)
	e.SetBorderMode(BorderSoft)
	e.SetStandardDeviation(0)

	return &GaussianBlurNode{
		effect: e,
		output: e.Output(),
		border: BorderSoft,
	}, nil
}

// SetBlurAmount sets the standard deviation from a blur amount. Amounts
// below GaussianDeadZone (including negative ones) become exactly 0.
func (n *GaussianBlurNode) SetBlurAmount(amount float32) {
	if n.closed {
		return
	}
	if !(amount >= GaussianDeadZone) {
		amount = 0
	}
	n.deviation = amount
	n.effect.SetStandardDeviation(amount)
}

// SetFixSize selects a hard border when set and a soft border otherwise.
func (n *GaussianBlurNode) SetFixSize(fix bool) {
	if n.closed {
		return
	}
	n.border = BorderSoft
	if fix {
		n.border = BorderHard
	}
	n.effect.SetBorderMode(n.border)
}

// StandardDeviation returns the last standard deviation pushed.
func (n *GaussianBlurNode) StandardDeviation() float32 { return n.deviation }

// BorderMode returns the current border mode.
func (n *GaussianBlurNode) BorderMode() BorderMode { return n.border }

// SetInput binds the image to blur.
func (n *GaussianBlurNode) SetInput(img Image, invalidate bool) {
	if n.closed {
		return
	}
	n.effect.SetInput(0, img, invalidate)
}

// ClearInput unbinds the input image.
func (n *GaussianBlurNode) ClearInput() {
	if n.closed {
		return
	}
	n.effect.ClearInput(0)
}

// Output returns the node's output image. The handle is stable until Close.
func (n *GaussianBlurNode) Output() Image { return n.output }

// ReleaseOutput releases the output handle ahead of Close, letting an owner
// of several nodes drop every output before any effect. Output returns nil
// afterwards.
func (n *GaussianBlurNode) ReleaseOutput() {
	if n.output != nil {
		n.output.Release()
		n.output = nil
	}
}

// Close releases the output and then the effect. Close is idempotent.
func (n *GaussianBlurNode) Close() {
	if n.closed {
		return
	}
	n.closed = true
	n.ReleaseOutput()
	n.effect.Release()
}
