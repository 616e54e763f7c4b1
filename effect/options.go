package effect

import (
	"io/fs"
	"log/slog"
)

// NodeOption configures a node during creation.
type NodeOption func(*nodeOptions)

type nodeOptions struct {
	label      string
	kernelFS   fs.FS
	kernelName string
	logger     *slog.Logger
}

func defaultNodeOptions(label string) nodeOptions {
	return nodeOptions{
		label:      label,
		kernelFS:   bundledKernels,
		kernelName: LensKernelName,
	}
}

// WithLabel sets the debug label used for the node's runtime objects.
func WithLabel(label string) NodeOption {
	return func(o *nodeOptions) {
		if label != "" {
			o.label = label
		}
	}
}

// WithKernelFS loads the lens kernel from fsys instead of the bundled
// resources. The kernel is looked up under LensKernelName unless
// WithKernelName is also given.
func WithKernelFS(fsys fs.FS) NodeOption {
	return func(o *nodeOptions) {
		o.kernelFS = fsys
	}
}

// WithKernelName sets the kernel's logical name inside the kernel FS.
func WithKernelName(name string) NodeOption {
	return func(o *nodeOptions) {
		o.kernelName = name
	}
}

// WithNodeLogger sets a logger for this node instead of the package logger.
func WithNodeLogger(l *slog.Logger) NodeOption {
	return func(o *nodeOptions) {
		o.logger = l
	}
}

func (o *nodeOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}
