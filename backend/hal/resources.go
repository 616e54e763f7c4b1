package hal

import (
	"fmt"

	whal "github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dof/effect"
)

// constantBuffer is a device uniform buffer with a base-graph shadow.
type constantBuffer struct {
	graph  *Graph
	shadow effect.ConstantBuffer
	buf    whal.Buffer
}

func (b *constantBuffer) Size() int { return b.shadow.Size() }

// Write updates the shadow first so size errors never reach the queue.
func (b *constantBuffer) Write(data []byte) error {
	if err := b.shadow.Write(data); err != nil {
		return err
	}
	if b.buf == nil {
		return nil
	}
	if err := b.graph.queue.WriteBuffer(b.buf, 0, data); err != nil {
		return fmt.Errorf("hal: write buffer: %w", err)
	}
	return nil
}

func (b *constantBuffer) Bytes() []byte { return b.shadow.Bytes() }

func (b *constantBuffer) Release() {
	if b.buf != nil {
		b.graph.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
	b.shadow.Release()
}

// kernel pairs a base-graph kernel with its shader module.
type kernel struct {
	graph  *Graph
	base   effect.Kernel
	module whal.ShaderModule
}

func (k *kernel) Label() string { return k.base.Label() }

func (k *kernel) Empty() bool { return k.module == nil }

func (k *kernel) Release() {
	if k.module != nil {
		k.graph.device.DestroyShaderModule(k.module)
		k.module = nil
	}
	k.base.Release()
}
