package effect

import (
	"embed"
	"encoding/binary"
	"errors"
	"io/fs"
	"path"
	"strings"

	"github.com/gogpu/naga"
)

// LensKernelName is the logical name of the bundled lens kernel.
const LensKernelName = "shaders/lens_blur.wgsl"

//go:embed shaders
var bundledKernels embed.FS

// BundledKernels returns the file system holding the bundled kernels: the
// WGSL sources and any .spv files built from them by mage build:kernels.
func BundledKernels() fs.FS {
	return bundledKernels
}

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// KernelBinary is compiled SPIR-V code. An empty KernelBinary denotes an
// inert kernel.
type KernelBinary []byte

// Words returns the code as little-endian SPIR-V words.
func (k KernelBinary) Words() []uint32 {
	words := make([]uint32, len(k)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(k[i*4:])
	}
	return words
}

var (
	errEmptyKernel = errors.New("empty kernel source")
	errBadSPIRV    = errors.New("not a SPIR-V module")
)

// LoadError reports why a kernel resource could not be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return "effect: load kernel " + e.Name + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadKernel reads the named kernel from fsys and returns its SPIR-V code.
//
// Files ending in .spv are taken as precompiled SPIR-V; anything else is
// compiled from WGSL with naga. A .wgsl name is first looked up as its .spv
// sibling (see PrecompiledName). Every failure is returned as a *LoadError;
// a missing resource unwraps to fs.ErrNotExist.
func LoadKernel(fsys fs.FS, name string) (KernelBinary, error) {
	if fsys == nil {
		return nil, &LoadError{Name: name, Err: fs.ErrNotExist}
	}
	if spv := PrecompiledName(name); spv != name {
		if _, err := fs.Stat(fsys, spv); err == nil {
			return LoadKernel(fsys, spv)
		}
	}
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	if len(src) == 0 {
		return nil, &LoadError{Name: name, Err: errEmptyKernel}
	}

	if path.Ext(name) == ".spv" {
		if len(src)%4 != 0 || binary.LittleEndian.Uint32(src) != spirvMagic {
			return nil, &LoadError{Name: name, Err: errBadSPIRV}
		}
		return KernelBinary(src), nil
	}

	code, err := naga.Compile(string(src))
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return KernelBinary(code), nil
}

// PrecompiledName returns the name of the precompiled SPIR-V file for a WGSL
// kernel name. Other names are returned unchanged.
func PrecompiledName(name string) string {
	if path.Ext(name) != ".wgsl" {
		return name
	}
	return strings.TrimSuffix(name, ".wgsl") + ".spv"
}
