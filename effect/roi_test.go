package effect

import (
	"math"
	"testing"
)

func TestExpansion(t *testing.T) {
	tests := []struct {
		radius float32
		want   int32
	}{
		{0, 0},
		{-3, 0},
		{float32(math.NaN()), 0},
		{0.2, 1},
		{1, 1},
		{12.4, 13},
		{20, 20},
		{float32(math.Inf(1)), math.MaxInt32 / 4},
	}
	for _, tt := range tests {
		if got := Expansion(tt.radius); got != tt.want {
			t.Errorf("Expansion(%v) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}

func TestOutputFromInput(t *testing.T) {
	in := R(0, 0, 100, 100)

	tests := []struct {
		name    string
		radius  float32
		fixSize bool
		want    Rect
	}{
		{"grows by ceil radius", 12.4, false, R(-13, -13, 113, 113)},
		{"fix size keeps input", 12.4, true, in},
		{"zero radius", 0, false, in},
		{"negative radius", -5, false, in},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputFromInput(in, tt.radius, tt.fixSize); got != tt.want {
				t.Errorf("OutputFromInput() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInputFromOutputAlwaysGrows(t *testing.T) {
	out := R(0, 0, 100, 100)
	if got, want := InputFromOutput(out, 12.4), R(-13, -13, 113, 113); got != want {
		t.Errorf("InputFromOutput() = %+v, want %+v", got, want)
	}
	if got := InputFromOutput(out, 0); got != out {
		t.Errorf("InputFromOutput(radius 0) = %+v, want %+v", got, out)
	}
}

func TestRegionRoundTripContains(t *testing.T) {
	rects := []Rect{R(0, 0, 100, 100), R(-50, -20, 10, 300), R(7, 7, 8, 8)}
	radii := []float32{0, 0.5, 1, 3.7, 12.4, 40}

	for _, r := range rects {
		for _, radius := range radii {
			for _, fix := range []bool{false, true} {
				out := OutputFromInput(r, radius, fix)
				need := InputFromOutput(out, radius)
				if !need.Contains(r) {
					t.Errorf("rect %+v radius %v fix %v: needed %+v does not contain input", r, radius, fix, need)
				}
			}
		}
	}
}

func TestLensNodeRegionMapping(t *testing.T) {
	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(nil))
	if err != nil {
		t.Fatalf("NewLensBlurNode() error = %v", err)
	}
	defer n.Close()

	if got := n.MapInputRectsToOutputRect(nil); got != (Rect{}) {
		t.Errorf("no inputs = %+v, want empty", got)
	}

	if err := n.SetRadius(12.4); err != nil {
		t.Fatal(err)
	}
	if got, want := n.MapInputRectsToOutputRect([]Rect{R(0, 0, 100, 100)}), R(-13, -13, 113, 113); got != want {
		t.Errorf("output = %+v, want %+v", got, want)
	}

	n.SetFixSize(true)
	if got, want := n.MapInputRectsToOutputRect([]Rect{R(0, 0, 100, 100)}), R(0, 0, 100, 100); got != want {
		t.Errorf("fixed output = %+v, want %+v", got, want)
	}

	inputs := make([]Rect, 2)
	n.MapOutputRectToInputRects(R(0, 0, 100, 100), inputs)
	for i, in := range inputs {
		if want := R(-13, -13, 113, 113); in != want {
			t.Errorf("inputs[%d] = %+v, want %+v", i, in, want)
		}
	}
	// Zero slots is a no-op.
	n.MapOutputRectToInputRects(R(0, 0, 1, 1), nil)
}
