package dof

import (
	"math"
	"testing"
)

func TestComputeBlurAmount(t *testing.T) {
	base := FocusParameters{
		FocusDistance: 1000,
		FocusRange:    0,
		NearBlurScale: 0.01,
		FarBlurScale:  0.01,
		MaxBlur:       20,
	}

	tests := []struct {
		name     string
		distance float64
		modify   func(*FocusParameters)
		want     float64
	}{
		{"in focus", 1000, nil, 0},
		{"far side", 1500, func(p *FocusParameters) { p.FarBlurScale = 0.03 }, 15},
		{"far side ignores near scale", 1500, func(p *FocusParameters) { p.NearBlurScale = 0.5 }, 5},
		{"near side", 500, func(p *FocusParameters) { p.NearBlurScale = 0.02 }, 10},
		{"clamped to max", 10000, nil, 20},
		{"inside band near", 950, func(p *FocusParameters) { p.FocusRange = 200 }, 0},
		{"inside band far", 1100, func(p *FocusParameters) { p.FocusRange = 200 }, 0},
		{"beyond band", 1150, func(p *FocusParameters) { p.FocusRange = 200; p.FarBlurScale = 0.1 }, 5},
		{"negative scale", 1500, func(p *FocusParameters) { p.FarBlurScale = -1 }, 0},
		{"negative max", 1500, func(p *FocusParameters) { p.MaxBlur = -5 }, 0},
		{"zero max", 1500, func(p *FocusParameters) { p.MaxBlur = 0 }, 0},
		{"nan distance", math.NaN(), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			if tt.modify != nil {
				tt.modify(&p)
			}
			got := ComputeBlurAmount(tt.distance, p)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeBlurAmount(%v) = %v, want %v", tt.distance, got, tt.want)
			}
		})
	}
}

func TestComputeBlurAmountRange(t *testing.T) {
	p := FocusParameters{FocusDistance: 800, FocusRange: 300, NearBlurScale: 0.5, FarBlurScale: 0.2, MaxBlur: 40}
	for d := -2000.0; d <= 5000; d += 37 {
		got := ComputeBlurAmount(d, p)
		if got < 0 || got > p.MaxBlur {
			t.Fatalf("ComputeBlurAmount(%v) = %v outside [0, %v]", d, got, p.MaxBlur)
		}
	}
}

func TestFocusParametersBounds(t *testing.T) {
	near, far := FocusParameters{FocusDistance: 1000, FocusRange: 400}.Bounds()
	if near != 800 || far != 1200 {
		t.Errorf("Bounds() = (%v, %v), want (800, 1200)", near, far)
	}
}
