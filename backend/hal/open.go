package hal

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	whal "github.com/gogpu/wgpu/hal"

	"github.com/gogpu/dof/effect"
)

// Device is a wgpu/hal device opened by Open. It implements
// gpucontext.DeviceProvider and exposes the HAL device and queue.
type Device struct {
	instance whal.Instance
	device   whal.Device
	queue    whal.Queue
	info     gputypes.AdapterInfo
}

var _ gpucontext.DeviceProvider = (*Device)(nil)

// Open opens the first discrete or integrated GPU of the Vulkan backend,
// falling back to the first adapter.
func Open() (*Device, error) {
	backend, ok := whal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("hal: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&whal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("hal: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("hal: no GPU adapters found")
	}
	var selected *whal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("hal: open device: %w", err)
	}
	effect.Logger().Info("hal: device opened", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     selected.Info,
	}, nil
}

// Name returns the adapter name.
func (d *Device) Name() string { return d.info.Name }

// AdapterInfo returns the adapter name and type.
func (d *Device) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: d.info.Name, Type: adapterType(d.info.DeviceType)}
}

// adapterType maps a HAL device type to its gpucontext adapter type.
func adapterType(t gputypes.DeviceType) gpucontext.AdapterType {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		return gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		return gpucontext.AdapterTypeSoftware
	default:
		return gpucontext.AdapterTypeUnknown
	}
}

// HalDevice returns the hal.Device.
func (d *Device) HalDevice() any { return d.device }

// HalQueue returns the hal.Queue.
func (d *Device) HalQueue() any { return d.queue }

func (d *Device) Device() gpucontext.Device             { return deviceHandle{d} }
func (d *Device) Queue() gpucontext.Queue               { return queueHandle{} }
func (d *Device) Adapter() gpucontext.Adapter           { return adapterHandle{} }
func (d *Device) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// Close destroys the device and its instance.
func (d *Device) Close() {
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
}

type deviceHandle struct{ d *Device }

func (h deviceHandle) Poll(wait bool) {}
func (h deviceHandle) Destroy()       { h.d.Close() }

type queueHandle struct{}

type adapterHandle struct{}
