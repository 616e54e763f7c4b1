package dof

import "fmt"

// BlurMode selects which blur node produces the processor output.
type BlurMode uint8

// Blur mode constants.
const (
	// BlurGaussian uses the runtime's built-in separable Gaussian blur.
	BlurGaussian BlurMode = iota

	// BlurLens uses the custom lens (bokeh) kernel.
	BlurLens
)

// String returns a human-readable name for the blur mode.
func (m BlurMode) String() string {
	switch m {
	case BlurGaussian:
		return "gaussian"
	case BlurLens:
		return "lens"
	default:
		return unknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m BlurMode) MarshalText() ([]byte, error) {
	if m > BlurLens {
		return nil, fmt.Errorf("dof: invalid blur mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BlurMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "gaussian":
		*m = BlurGaussian
	case "lens":
		*m = BlurLens
	default:
		return fmt.Errorf("dof: unknown blur mode %q", text)
	}
	return nil
}

// FocusMode selects the distance metric between camera and item.
type FocusMode uint8

// Focus mode constants.
const (
	// FocusSpherical measures the straight-line distance from the eye.
	FocusSpherical FocusMode = iota

	// FocusPlanar measures depth along the camera's view axis only,
	// ignoring lateral offset.
	FocusPlanar
)

// String returns a human-readable name for the focus mode.
func (m FocusMode) String() string {
	switch m {
	case FocusSpherical:
		return "spherical"
	case FocusPlanar:
		return "planar"
	default:
		return unknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m FocusMode) MarshalText() ([]byte, error) {
	if m > FocusPlanar {
		return nil, fmt.Errorf("dof: invalid focus mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FocusMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "spherical":
		*m = FocusSpherical
	case "planar":
		*m = FocusPlanar
	default:
		return fmt.Errorf("dof: unknown focus mode %q", text)
	}
	return nil
}

const unknownStr = "unknown"
