package dof

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrNotEncodable is returned by MarshalTOML when a parameter's source is
// neither an Animation nor a Constant.
var ErrNotEncodable = errors.New("dof: value source cannot be encoded")

// settingsFile is the TOML form of Settings.
type settingsFile struct {
	BlurType BlurMode  `toml:"blur_type"`
	Mode     FocusMode `toml:"focus_mode"`
	FixSize  bool      `toml:"fix_size"`

	FocusDistance   Animation `toml:"focus_distance"`
	FocusRange      Animation `toml:"focus_range"`
	NearBlurScale   Animation `toml:"near_blur_scale"`
	FarBlurScale    Animation `toml:"far_blur_scale"`
	MaxBlur         Animation `toml:"max_blur"`
	BokehBrightness Animation `toml:"bokeh_brightness"`
	BokehEdge       Animation `toml:"bokeh_edge"`
	BokehQuality    Animation `toml:"bokeh_quality"`
}

// animations returns the animated parameters in the order of
// Settings.sources.
func (f *settingsFile) animations() []*Animation {
	return []*Animation{
		&f.FocusDistance,
		&f.FocusRange,
		&f.NearBlurScale,
		&f.FarBlurScale,
		&f.MaxBlur,
		&f.BokehBrightness,
		&f.BokehEdge,
		&f.BokehQuality,
	}
}

// ParseSettings decodes TOML settings over DefaultSettings.
//
// Keys that are absent keep their defaults. Parameter ranges are fixed by
// the parameter definitions and are re-applied after decoding:
//
//	blur_type = "lens"
//	focus_mode = "spherical"
//	fix_size = true
//
//	[focus_distance]
//	values = [800, 1200]
func ParseSettings(data []byte) (*Settings, error) {
	f := settingsFile{BlurType: BlurGaussian, Mode: FocusPlanar}
	for i, a := range f.animations() {
		*a = parameterRanges[i].animation()
	}
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("dof: parse settings: %w", err)
	}

	s := &Settings{BlurType: f.BlurType, Mode: f.Mode, FixSize: f.FixSize}
	srcs := s.sources()
	for i, a := range f.animations() {
		r := parameterRanges[i]
		a.Min, a.Max = r.min, r.max
		if len(a.Values) == 0 {
			a.Values = []float64{r.def}
		}
		*srcs[i] = *a
	}
	return s, nil
}

// LoadSettings reads and decodes a TOML settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dof: load settings: %w", err)
	}
	return ParseSettings(data)
}

// MarshalTOML encodes the settings as TOML. Animation and Constant sources
// are encoded as keyframe lists and nil sources as the default value; any
// other source yields ErrNotEncodable.
func (s *Settings) MarshalTOML() ([]byte, error) {
	f := settingsFile{BlurType: s.BlurType, Mode: s.Mode, FixSize: s.FixSize}
	anims := f.animations()
	for i, src := range s.sources() {
		switch v := (*src).(type) {
		case nil:
			*anims[i] = parameterRanges[i].animation()
		case Animation:
			*anims[i] = v
		case Constant:
			*anims[i] = Animation{Values: []float64{float64(v)}}
		default:
			return nil, fmt.Errorf("%w: %T", ErrNotEncodable, v)
		}
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("dof: encode settings: %w", err)
	}
	return data, nil
}
