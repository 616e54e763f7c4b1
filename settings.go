package dof

// Settings holds the user-facing configuration of one depth of field
// effect instance.
//
// The animated parameters are ValueSources sampled once per frame. Hosts
// with their own animation system assign their sources directly; settings
// files decode into Animation values. A nil source samples as the
// parameter's default, and every sample is clamped to the parameter's
// range.
type Settings struct {
	// BlurType selects the active blur node.
	BlurType BlurMode

	// Mode selects the distance metric.
	Mode FocusMode

	// FixSize keeps the blurred output inside the item's original bounds.
	// Edges may look transparent when set.
	FixSize bool

	FocusDistance ValueSource
	FocusRange    ValueSource
	NearBlurScale ValueSource
	FarBlurScale  ValueSource
	MaxBlur       ValueSource

	// BokehBrightness is a percentage; 100 leaves the image unchanged.
	BokehBrightness ValueSource
	BokehEdge       ValueSource
	BokehQuality    ValueSource
}

// paramRange is the default value and allowed range of an animated parameter.
type paramRange struct {
	def, min, max float64
}

func (r paramRange) animation() Animation {
	return NewAnimation(r.def, r.min, r.max)
}

func (r paramRange) sample(src ValueSource, fc FrameContext) float64 {
	if src == nil {
		return r.def
	}
	return clamp(src.Value(fc.FrameIndex, fc.TotalFrames, fc.FPS), r.min, r.max)
}

var (
	focusDistanceRange   = paramRange{def: 1000, min: 0, max: 100000}
	focusRangeRange      = paramRange{def: 0, min: 0, max: 100000}
	nearBlurScaleRange   = paramRange{def: 0.01, min: 0, max: 1}
	farBlurScaleRange    = paramRange{def: 0.01, min: 0, max: 1}
	maxBlurRange         = paramRange{def: 20, min: 0, max: 500}
	bokehBrightnessRange = paramRange{def: 100, min: 0, max: 1000}
	bokehEdgeRange       = paramRange{def: 2, min: 0, max: 20}
	bokehQualityRange    = paramRange{def: 16, min: 1, max: 512}
)

// parameterRanges lists the ranges in the order of Settings.sources.
var parameterRanges = [...]paramRange{
	focusDistanceRange,
	focusRangeRange,
	nearBlurScaleRange,
	farBlurScaleRange,
	maxBlurRange,
	bokehBrightnessRange,
	bokehEdgeRange,
	bokehQualityRange,
}

// sources returns the animated parameters in declaration order.
func (s *Settings) sources() []*ValueSource {
	return []*ValueSource{
		&s.FocusDistance,
		&s.FocusRange,
		&s.NearBlurScale,
		&s.FarBlurScale,
		&s.MaxBlur,
		&s.BokehBrightness,
		&s.BokehEdge,
		&s.BokehQuality,
	}
}

// DefaultSettings returns settings with every parameter at its default:
// Gaussian blur, planar focus, focus distance 1000, max blur 20.
func DefaultSettings() *Settings {
	s := &Settings{
		BlurType: BlurGaussian,
		Mode:     FocusPlanar,
	}
	for i, src := range s.sources() {
		*src = parameterRanges[i].animation()
	}
	return s
}

// Focus samples the focus parameters for a frame.
func (s *Settings) Focus(fc FrameContext) FocusParameters {
	return FocusParameters{
		FocusDistance: focusDistanceRange.sample(s.FocusDistance, fc),
		FocusRange:    focusRangeRange.sample(s.FocusRange, fc),
		NearBlurScale: nearBlurScaleRange.sample(s.NearBlurScale, fc),
		FarBlurScale:  farBlurScaleRange.sample(s.FarBlurScale, fc),
		MaxBlur:       maxBlurRange.sample(s.MaxBlur, fc),
	}
}

// LensParameters holds the lens-only scalars pushed to the lens kernel.
type LensParameters struct {
	// Brightness is a gain factor (1 = unchanged).
	Brightness   float64
	EdgeStrength float64
	Quality      float64
}

// Lens samples the lens parameters for a frame. Brightness is converted
// from percent to a gain factor.
func (s *Settings) Lens(fc FrameContext) LensParameters {
	return LensParameters{
		Brightness:   bokehBrightnessRange.sample(s.BokehBrightness, fc) / 100,
		EdgeStrength: bokehEdgeRange.sample(s.BokehEdge, fc),
		Quality:      bokehQualityRange.sample(s.BokehQuality, fc),
	}
}
