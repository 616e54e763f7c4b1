package dof

import "testing"

func TestBlurModeText(t *testing.T) {
	tests := []struct {
		mode BlurMode
		text string
	}{
		{BlurGaussian, "gaussian"},
		{BlurLens, "lens"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			b, err := tt.mode.MarshalText()
			if err != nil || string(b) != tt.text {
				t.Errorf("MarshalText() = %q, %v", b, err)
			}
			var m BlurMode
			if err := m.UnmarshalText([]byte(tt.text)); err != nil || m != tt.mode {
				t.Errorf("UnmarshalText(%q) = %v, %v", tt.text, m, err)
			}
		})
	}

	if BlurMode(9).String() != "unknown" {
		t.Errorf("BlurMode(9).String() = %q", BlurMode(9).String())
	}
	if _, err := BlurMode(9).MarshalText(); err == nil {
		t.Error("MarshalText of invalid mode should fail")
	}
	var m BlurMode
	if err := m.UnmarshalText([]byte("bokeh")); err == nil {
		t.Error("UnmarshalText(bokeh) should fail")
	}
}

func TestFocusModeText(t *testing.T) {
	tests := []struct {
		mode FocusMode
		text string
	}{
		{FocusSpherical, "spherical"},
		{FocusPlanar, "planar"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.text {
				t.Errorf("String() = %q, want %q", got, tt.text)
			}
			var m FocusMode
			if err := m.UnmarshalText([]byte(tt.text)); err != nil || m != tt.mode {
				t.Errorf("UnmarshalText(%q) = %v, %v", tt.text, m, err)
			}
		})
	}

	var m FocusMode
	if err := m.UnmarshalText([]byte("radial")); err == nil {
		t.Error("UnmarshalText(radial) should fail")
	}
}
