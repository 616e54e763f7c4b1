//go:build mage

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/naga"
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const shaderDir = "effect/shaders"

// Compiles every bundled WGSL kernel to a .spv file next to it.
func (Build) Kernels() error {
	return filepath.WalkDir(shaderDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".wgsl" {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		spirv, err := naga.Compile(string(src))
		if err != nil {
			return fmt.Errorf("compile %s: %w", path, err)
		}
		out := strings.TrimSuffix(path, ".wgsl") + ".spv"
		if err := os.WriteFile(out, spirv, 0o644); err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%d bytes)\n", path, out, len(spirv))
		return nil
	})
}

// Builds the dofrender command into ./bin.
func (Build) Cmd() error {
	mg.Deps(Build.Kernels)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/dofrender", "./cmd/dofrender"), withStream())
	return err
}
