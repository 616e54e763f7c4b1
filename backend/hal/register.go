//go:build !nogpu

package hal

import (
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/dof/backend"
	"github.com/gogpu/dof/backend/cpu"
	"github.com/gogpu/dof/effect"
)

func init() {
	backend.Register(backend.BackendHAL, func() (effect.Graph, func(), error) {
		dev, err := Open()
		if err != nil {
			return nil, nil, err
		}
		g, err := New(dev, cpu.New())
		if err != nil {
			dev.Close()
			return nil, nil, err
		}
		return g, dev.Close, nil
	})
}
