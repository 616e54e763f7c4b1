// Command dofrender applies the depth of field effect to an image over a
// range of frames and writes one PNG per frame.
//
// The item is moved along the camera axis from -z to -z-end, so the blur
// follows the focus band configured in the settings file:
//
//	dofrender -input layer.png -settings dof.toml -frames 30 -z 0 -z-end -2000
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gogpu/dof"
	"github.com/gogpu/dof/backend"
)

type config struct {
	input    string
	settings string
	output   string
	backend  string
	blur     string
	frames   int
	fps      float64
	x        float64
	z        float64
	zEnd     float64
	verbose  bool
	watch    bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "input", "", "input image (png, jpeg, bmp, tiff, webp)")
	flag.StringVar(&cfg.settings, "settings", "", "TOML settings file")
	flag.StringVar(&cfg.output, "output", "frame_%04d.png", "output file pattern")
	flag.StringVar(&cfg.backend, "backend", "", "effect graph backend (cpu, hal); default picks the best available")
	flag.StringVar(&cfg.blur, "blur", "", "override blur type (gaussian, lens)")
	flag.IntVar(&cfg.frames, "frames", 1, "number of frames")
	flag.Float64Var(&cfg.fps, "fps", 30, "frame rate")
	flag.Float64Var(&cfg.x, "x", 0, "item X position")
	flag.Float64Var(&cfg.z, "z", -500, "item Z position at the first frame")
	flag.Float64Var(&cfg.zEnd, "z-end", -500, "item Z position at the last frame")
	flag.BoolVar(&cfg.verbose, "v", false, "debug logging")
	flag.BoolVar(&cfg.watch, "watch", false, "re-render when the settings file changes")
	flag.Parse()

	logger := newLogger(cfg.verbose)
	dof.SetLogger(logger)

	if cfg.input == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("dofrender failed", "err", err)
		os.Exit(1)
	}
}

// newLogger returns a slog logger writing through charmbracelet/log.
func newLogger(verbose bool) *slog.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "dofrender",
	})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return slog.New(l)
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	settings, err := loadSettings(cfg)
	if err != nil {
		return err
	}

	layer, err := decodeImage(cfg.input)
	if err != nil {
		return err
	}

	graph, closeGraph, name, err := openBackend(cfg.backend)
	if err != nil {
		return err
	}
	defer closeGraph()
	logger.Info("backend ready", "backend", name)

	r, err := newRenderer(graph, settings)
	if err != nil {
		return err
	}
	defer r.close()

	r.setLayer(layer)
	if err := r.renderAll(cfg, logger); err != nil {
		return err
	}

	if !cfg.watch {
		return nil
	}
	if cfg.settings == "" {
		return fmt.Errorf("-watch requires -settings")
	}
	return watchSettings(ctx, cfg.settings, logger, func() error {
		s, err := loadSettings(cfg)
		if err != nil {
			return err
		}
		r.proc.SetSettings(s)
		return r.renderAll(cfg, logger)
	})
}

func loadSettings(cfg config) (*dof.Settings, error) {
	s := dof.DefaultSettings()
	if cfg.settings != "" {
		var err error
		if s, err = dof.LoadSettings(cfg.settings); err != nil {
			return nil, err
		}
	}
	if cfg.blur != "" {
		if err := s.BlurType.UnmarshalText([]byte(cfg.blur)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// openBackend opens the named backend, or the best available one when name
// is empty.
func openBackend(name string) (graphHandle, func(), string, error) {
	if name == "" {
		graph, closeFn, chosen, err := backend.OpenDefault()
		return graphHandle{graph}, closeFn, chosen, err
	}
	graph, closeFn, err := backend.Open(name)
	return graphHandle{graph}, closeFn, name, err
}
