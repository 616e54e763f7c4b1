// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package cpu

import (
	"fmt"

	"github.com/gogpu/dof/effect"
)

// ConstantBuffer is a constant buffer in host memory.
type ConstantBuffer struct {
	graph    *Graph
	label    string
	data     []byte
	writes   int
	released bool
}

var _ effect.ConstantBuffer = (*ConstantBuffer)(nil)

// Size returns the buffer size in bytes.
func (b *ConstantBuffer) Size() int { return len(b.data) }

// Write copies data to the start of the buffer.
func (b *ConstantBuffer) Write(data []byte) error {
	if b.released {
		return fmt.Errorf("cpu: write %q: %w", b.label, ErrReleased)
	}
	if len(data) > len(b.data) {
		return fmt.Errorf("cpu: write %q: %d bytes exceeds size %d", b.label, len(data), len(b.data))
	}
	copy(b.data, data)
	b.writes++
	return nil
}

// Bytes returns the buffer contents.
func (b *ConstantBuffer) Bytes() []byte { return b.data }

// Writes returns how many times Write succeeded.
func (b *ConstantBuffer) Writes() int { return b.writes }

// Release frees the buffer.
func (b *ConstantBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.graph.free()
}

// Kernel records a kernel's label and code size.
type Kernel struct {
	graph    *Graph
	label    string
	size     int
	released bool
}

var _ effect.Kernel = (*Kernel)(nil)

// Label returns the kernel's debug label.
func (k *Kernel) Label() string { return k.label }

// Empty reports whether the kernel was created without code.
func (k *Kernel) Empty() bool { return k.size == 0 }

// Release frees the kernel.
func (k *Kernel) Release() {
	if k.released {
		return
	}
	k.released = true
	k.graph.free()
}
