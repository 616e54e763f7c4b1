package dof

import (
	"io/fs"
	"log/slog"
)

// Option configures a Processor during creation.
//
// Example:
//
//	p, err := dof.NewProcessor(graph, dof.DefaultSettings(),
//	    dof.WithLogger(logger))
type Option func(*processorOptions)

// processorOptions holds optional configuration for Processor creation.
type processorOptions struct {
	logger   *slog.Logger
	kernelFS fs.FS
}

// WithLogger sets the logger for the processor and its nodes instead of the
// package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *processorOptions) {
		o.logger = l
	}
}

// WithKernelFS loads the lens kernel from fsys instead of the bundled
// resources.
//
// Example:
//
//	// Use a precompiled kernel shipped next to the binary.
//	p, err := dof.NewProcessor(graph, s, dof.WithKernelFS(os.DirFS("kernels")))
func WithKernelFS(fsys fs.FS) Option {
	return func(o *processorOptions) {
		o.kernelFS = fsys
	}
}

func (o *processorOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}
