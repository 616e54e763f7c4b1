package effect

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"testing/fstest"
)

func stubFS() fstest.MapFS {
	return fstest.MapFS{PrecompiledName(LensKernelName): {Data: spirvStub(5)}}
}

func TestNewLensBlurNode(t *testing.T) {
	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(stubFS()), WithLabel("lens"))
	if err != nil {
		t.Fatalf("NewLensBlurNode() error = %v", err)
	}
	defer n.Close()

	if n.KernelErr() != nil {
		t.Errorf("KernelErr() = %v, want nil", n.KernelErr())
	}
	if len(g.buffers) != 1 || g.buffers[0].Size() != ParameterBlockSize || g.buffers[0].label != "lens_params" {
		t.Fatalf("constant buffer not created as expected: %+v", g.buffers)
	}
	if len(g.kernels) != 1 || g.kernels[0].Empty() || g.kernels[0].label != "lens_kernel" {
		t.Fatalf("kernel not created as expected: %+v", g.kernels)
	}
	if len(g.customs) != 1 || g.customs[0].transform != n {
		t.Fatal("node should be the custom effect's transform")
	}
	if n.Kernel() != g.kernels[0] || n.Constants() != g.buffers[0] {
		t.Error("Transform should expose the node's kernel and buffer")
	}
	// The initial block is uploaded once.
	if g.buffers[0].writes != 1 {
		t.Errorf("writes after construction = %d, want 1", g.buffers[0].writes)
	}
	if got := n.Parameters(); got != DefaultParameterBlock() {
		t.Errorf("Parameters() = %+v, want defaults", got)
	}
}

func TestNewLensBlurNodeNilGraph(t *testing.T) {
	if _, err := NewLensBlurNode(nil); !errors.Is(err, ErrNilGraph) {
		t.Errorf("error = %v, want ErrNilGraph", err)
	}
}

func TestLensBlurNodeMissingKernel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(fstest.MapFS{}), WithNodeLogger(logger))
	if err != nil {
		t.Fatalf("NewLensBlurNode() error = %v", err)
	}
	defer n.Close()

	if !errors.Is(n.KernelErr(), fs.ErrNotExist) {
		t.Errorf("KernelErr() = %v, want fs.ErrNotExist", n.KernelErr())
	}
	if !g.kernels[0].Empty() {
		t.Error("kernel should be empty when the resource is missing")
	}
	if n.Output() == nil {
		t.Error("Output() should stay valid with an empty kernel")
	}
	if !strings.Contains(buf.String(), "lens kernel unavailable") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestLensBlurNodeCreateFailures(t *testing.T) {
	tests := []struct {
		name   string
		g      *mockGraph
		events []string
	}{
		{"buffer", &mockGraph{failBuffer: true}, nil},
		{"kernel", &mockGraph{failKernel: true}, []string{"buffer.release"}},
		{"effect", &mockGraph{failEffect: true}, []string{"kernel.release", "buffer.release"}},
		{"initial push", &mockGraph{failWrite: true},
			[]string{"output.release", "effect.release", "kernel.release", "buffer.release"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewLensBlurNode(tt.g, WithKernelFS(stubFS()))
			if !errors.Is(err, errMock) {
				t.Errorf("error = %v, want mock failure", err)
			}
			if n != nil {
				t.Error("node should be nil on failure")
			}
			if !slices.Equal(tt.g.events, tt.events) {
				t.Errorf("events = %v, want %v", tt.g.events, tt.events)
			}
		})
	}
}

func TestLensBlurNodePushPerSet(t *testing.T) {
	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(stubFS()))
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()
	buf := g.buffers[0]
	start := buf.writes

	steps := []struct {
		name string
		set  func() error
		want ParameterBlock
	}{
		{"radius", func() error { return n.SetRadius(7.5) }, ParameterBlock{7.5, 1, 2, 16}},
		{"brightness", func() error { return n.SetBrightness(0.5) }, ParameterBlock{7.5, 0.5, 2, 16}},
		{"edge", func() error { return n.SetEdgeStrength(4) }, ParameterBlock{7.5, 0.5, 4, 16}},
		{"quality", func() error { return n.SetQuality(32) }, ParameterBlock{7.5, 0.5, 4, 32}},
		{"same value again", func() error { return n.SetQuality(32) }, ParameterBlock{7.5, 0.5, 4, 32}},
		{"negative radius", func() error { return n.SetRadius(-3) }, ParameterBlock{0, 0.5, 4, 32}},
	}
	for i, step := range steps {
		if err := step.set(); err != nil {
			t.Fatalf("%s: error = %v", step.name, err)
		}
		if got := buf.writes - start; got != i+1 {
			t.Errorf("%s: writes = %d, want %d", step.name, got, i+1)
		}
		want := step.want
		if !bytes.Equal(buf.data, want.Bytes()) {
			t.Errorf("%s: buffer = %v, want %v", step.name, buf.data, want.Bytes())
		}
	}

	if err := n.SetParameter(ParameterIndex(9), 1); !errors.Is(err, ErrUnknownParameter) {
		t.Errorf("SetParameter(9) error = %v, want ErrUnknownParameter", err)
	}

	writes := buf.writes
	n.SetFixSize(true)
	if !n.FixSize() || buf.writes != writes {
		t.Error("SetFixSize must not touch the parameter block")
	}
}

func TestLensBlurNodeWriteFailure(t *testing.T) {
	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(stubFS()))
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()

	g.failWrite = true
	if err := n.SetRadius(3); !errors.Is(err, errMock) {
		t.Errorf("SetRadius() error = %v, want mock failure", err)
	}
}

func TestLensBlurNodeInput(t *testing.T) {
	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(stubFS()))
	if err != nil {
		t.Fatal(err)
	}
	defer n.Close()

	img := &mockImage{graph: g, name: "src", bounds: R(0, 0, 10, 10)}
	n.SetInput(img, true)
	e := g.customs[0]
	if e.input != img || !e.invalidate {
		t.Errorf("SetInput not forwarded: input=%v invalidate=%v", e.input, e.invalidate)
	}
	n.ClearInput()
	if e.input != nil {
		t.Error("ClearInput not forwarded")
	}
}

func TestLensBlurNodeClose(t *testing.T) {
	g := &mockGraph{}
	n, err := NewLensBlurNode(g, WithKernelFS(stubFS()))
	if err != nil {
		t.Fatal(err)
	}
	g.events = nil

	n.Close()
	n.Close()

	want := []string{"output.release", "effect.release", "kernel.release", "buffer.release"}
	if !slices.Equal(g.events, want) {
		t.Errorf("release order = %v, want %v", g.events, want)
	}
	if err := n.SetRadius(1); !errors.Is(err, ErrClosed) {
		t.Errorf("SetRadius after Close error = %v, want ErrClosed", err)
	}
	n.SetInput(&mockImage{graph: g}, true)
	if g.customs[0].setInputs != 0 {
		t.Error("SetInput after Close should be ignored")
	}
}
