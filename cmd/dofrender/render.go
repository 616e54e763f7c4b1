package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/gogpu/dof"
	"github.com/gogpu/dof/backend/cpu"
	"github.com/gogpu/dof/backend/hal"
	"github.com/gogpu/dof/effect"
)

// graphHandle is an opened effect graph.
type graphHandle struct {
	effect.Graph
}

// executor returns the CPU graph that evaluates g's effects.
func (g graphHandle) executor() (*cpu.Graph, error) {
	switch v := g.Graph.(type) {
	case *cpu.Graph:
		return v, nil
	case *hal.Graph:
		if base, ok := v.Base().(*cpu.Graph); ok {
			return base, nil
		}
	}
	return nil, fmt.Errorf("dofrender: backend %T cannot be rendered", g.Graph)
}

type renderer struct {
	exec   *cpu.Graph
	proc   *dof.Processor
	source *cpu.Image
}

func newRenderer(g graphHandle, s *dof.Settings) (*renderer, error) {
	exec, err := g.executor()
	if err != nil {
		return nil, err
	}
	proc, err := dof.NewProcessor(g.Graph, s)
	if err != nil {
		return nil, err
	}
	if kerr := proc.LensKernelErr(); kerr != nil {
		dof.Logger().Warn("lens kernel unavailable", "err", kerr)
	}
	return &renderer{exec: exec, proc: proc}, nil
}

func (r *renderer) setLayer(img image.Image) {
	if r.source != nil {
		r.source.Release()
	}
	r.source = r.exec.NewSource(img)
	r.proc.SetInput(r.source)
}

func (r *renderer) renderAll(cfg config, logger *slog.Logger) error {
	frames := max(cfg.frames, 1)
	for i := range frames {
		t := 0.0
		if frames > 1 {
			t = float64(i) / float64(frames-1)
		}
		desc := dof.EffectDescription{
			ItemFrame:  int64(i),
			ItemLength: int64(frames),
			FPS:        cfg.fps,
			Draw: dof.DrawDescription{
				Draw:    dof.V3(cfg.x, 0, cfg.z+(cfg.zEnd-cfg.z)*t),
				Camera:  dof.Identity4(),
				Zoom:    1,
				Opacity: 1,
			},
		}
		r.proc.Update(desc)

		out, err := r.exec.Render(r.proc.Output())
		if err != nil {
			return fmt.Errorf("dofrender: frame %d: %w", i, err)
		}
		path := fmt.Sprintf(cfg.output, i)
		if err := writePNG(path, out); err != nil {
			return err
		}
		logger.Info("frame written", "frame", i, "blur", r.proc.BlurAmount(), "path", path)
	}
	return nil
}

func (r *renderer) close() {
	_ = r.proc.Close()
	if r.source != nil {
		r.source.Release()
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dofrender: create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("dofrender: encode png: %w", err)
	}
	return f.Close()
}
