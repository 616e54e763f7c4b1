package dof

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gogpu/dof/effect"
)

// Processor is one depth of field effect instance.
//
// It owns a Gaussian and a lens blur node for its whole lifetime and drives
// the one selected by Settings.BlurType on every Update. A Processor is not
// safe for concurrent use; the host calls it from its render thread.
type Processor struct {
	id       uuid.UUID
	settings *Settings
	gaussian *effect.GaussianBlurNode
	lens     *effect.LensBlurNode
	input    effect.Image
	log      *slog.Logger
	blur     float64
	closed   bool
}

// NewProcessor creates a Processor in g. A nil s uses DefaultSettings.
func NewProcessor(g effect.Graph, s *Settings, opts ...Option) (*Processor, error) {
	if g == nil {
		return nil, effect.ErrNilGraph
	}
	var o processorOptions
	for _, opt := range opts {
		opt(&o)
	}
	if s == nil {
		s = DefaultSettings()
	}

	id := uuid.New()
	l := o.log().With("processor", id.String())

	gaussian, err := effect.NewGaussianBlurNode(g,
		effect.WithLabel("dof_gaussian_"+id.String()),
		effect.WithNodeLogger(l))
	if err != nil {
		return nil, fmt.Errorf("dof: create gaussian node: %w", err)
	}

	lensOpts := []effect.NodeOption{
		effect.WithLabel("dof_lens_" + id.String()),
		effect.WithNodeLogger(l),
	}
	if o.kernelFS != nil {
		lensOpts = append(lensOpts, effect.WithKernelFS(o.kernelFS))
	}
	lens, err := effect.NewLensBlurNode(g, lensOpts...)
	if err != nil {
		gaussian.Close()
		return nil, fmt.Errorf("dof: create lens node: %w", err)
	}

	l.Info("dof: processor created", "blur_type", s.BlurType, "focus_mode", s.Mode)
	return &Processor{
		id:       id,
		settings: s,
		gaussian: gaussian,
		lens:     lens,
		log:      l,
	}, nil
}

// ID returns the instance ID used in runtime labels and log records.
func (p *Processor) ID() uuid.UUID { return p.id }

// Settings returns the live settings. Changes take effect on the next
// Update.
func (p *Processor) Settings() *Settings { return p.settings }

// SetSettings replaces the settings. A nil s is ignored.
func (p *Processor) SetSettings(s *Settings) {
	if s != nil {
		p.settings = s
	}
}

// SetInput sets the layer to blur. It is bound to the active node on the
// next Update.
func (p *Processor) SetInput(img effect.Image) { p.input = img }

// ClearInput removes the layer and unbinds it from both nodes.
func (p *Processor) ClearInput() {
	p.input = nil
	if p.closed {
		return
	}
	p.gaussian.ClearInput()
	p.lens.ClearInput()
}

// LensKernelErr reports why the lens kernel could not be loaded, if it
// could not.
func (p *Processor) LensKernelErr() error { return p.lens.KernelErr() }

// BlurAmount returns the blur amount computed by the last Update that had
// an input.
func (p *Processor) BlurAmount() float64 { return p.blur }

// Update configures the active node for a frame and returns desc.Draw
// unchanged. Without an input, or after Close, nothing is touched.
func (p *Processor) Update(desc EffectDescription) DrawDescription {
	if p.input == nil || p.closed {
		return desc.Draw
	}

	s := p.settings
	fc := desc.Frame()
	distance := EvaluateDistance(fc.Camera, fc.ItemPosition, s.Mode)
	blur := ComputeBlurAmount(distance, s.Focus(fc))
	p.blur = blur

	switch s.BlurType {
	case BlurLens:
		p.updateLens(fc, blur)
	default:
		p.gaussian.SetInput(p.input, true)
		p.gaussian.SetBlurAmount(float32(blur))
		p.gaussian.SetFixSize(s.FixSize)
	}

	p.log.Debug("dof: frame",
		"frame", fc.FrameIndex, "blur_type", s.BlurType,
		"distance", distance, "blur", blur)
	return desc.Draw
}

func (p *Processor) updateLens(fc FrameContext, blur float64) {
	s := p.settings
	lp := s.Lens(fc)

	p.lens.SetInput(p.input, true)
	err := errors.Join(
		p.lens.SetRadius(float32(blur)),
		p.lens.SetBrightness(float32(lp.Brightness)),
		p.lens.SetEdgeStrength(float32(lp.EdgeStrength)),
		p.lens.SetQuality(float32(lp.Quality)),
	)
	if err != nil {
		p.log.Warn("dof: lens parameter upload failed", "frame", fc.FrameIndex, "err", err)
	}
	p.lens.SetFixSize(s.FixSize)
}

// Output returns the output of the node selected by the current BlurType.
// It is nil after Close.
func (p *Processor) Output() effect.Image {
	if p.closed {
		return nil
	}
	if p.settings.BlurType == BlurLens {
		return p.lens.Output()
	}
	return p.gaussian.Output()
}

// Close releases both outputs and then both nodes. Close is idempotent and
// always returns nil.
func (p *Processor) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.input = nil

	p.gaussian.ReleaseOutput()
	p.lens.ReleaseOutput()
	p.gaussian.Close()
	p.lens.Close()

	p.log.Info("dof: processor closed")
	return nil
}
