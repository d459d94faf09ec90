// Package haltest provides HAL devices for tests: a noop device and a
// recording wrapper that logs resource creation and destruction.
package haltest

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// ErrInjected is the default error returned by injected failures.
var ErrInjected = errors.New("haltest: injected failure")

// NewNoopDevice opens a noop device and queue, destroyed at test cleanup.
func NewNoopDevice(t testing.TB) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

// Event names recorded by Device.
const (
	CreateShaderModule  = "CreateShaderModule"
	DestroyShaderModule = "DestroyShaderModule"
	CreateTexture       = "CreateTexture"
	DestroyTexture      = "DestroyTexture"
	CreateTextureView   = "CreateTextureView"
	DestroyTextureView  = "DestroyTextureView"
	CreateSampler       = "CreateSampler"
	DestroySampler      = "DestroySampler"
	CreateBuffer        = "CreateBuffer"
	DestroyBuffer       = "DestroyBuffer"
)

// Device wraps a hal.Device, recording resource calls in order. Create
// calls can be made to fail with Fail.
type Device struct {
	hal.Device

	// OnDestroy, if set, is called at the start of every Destroy* call
	// with the event name.
	OnDestroy func(event string)

	mu     sync.Mutex
	events []string
	fail   map[string]int
}

// NewDevice wraps d.
func NewDevice(d hal.Device) *Device {
	return &Device{Device: d, fail: make(map[string]int)}
}

// Fail makes the n-th (1-based) future call of the named create event
// return ErrInjected.
func (d *Device) Fail(event string, n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fail[event] = n
}

// Events returns a copy of the recorded events.
func (d *Device) Events() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

// Count returns how many times event was recorded.
func (d *Device) Count(event string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, e := range d.events {
		if e == event {
			n++
		}
	}
	return n
}

// Reset clears the recorded events.
func (d *Device) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}

func (d *Device) record(event string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.fail[event]; ok {
		if n <= 1 {
			delete(d.fail, event)
			return ErrInjected
		}
		d.fail[event] = n - 1
	}
	d.events = append(d.events, event)
	return nil
}

func (d *Device) destroyed(event string) {
	if d.OnDestroy != nil {
		d.OnDestroy(event)
	}
	_ = d.record(event)
}

func (d *Device) CreateShaderModule(desc *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	if err := d.record(CreateShaderModule); err != nil {
		return nil, err
	}
	return d.Device.CreateShaderModule(desc)
}

func (d *Device) DestroyShaderModule(m hal.ShaderModule) {
	d.destroyed(DestroyShaderModule)
	d.Device.DestroyShaderModule(m)
}

func (d *Device) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if err := d.record(CreateTexture); err != nil {
		return nil, err
	}
	return d.Device.CreateTexture(desc)
}

func (d *Device) DestroyTexture(t hal.Texture) {
	d.destroyed(DestroyTexture)
	d.Device.DestroyTexture(t)
}

func (d *Device) CreateTextureView(t hal.Texture, desc *hal.TextureViewDescriptor) (hal.TextureView, error) {
	if err := d.record(CreateTextureView); err != nil {
		return nil, err
	}
	return d.Device.CreateTextureView(t, desc)
}

func (d *Device) DestroyTextureView(v hal.TextureView) {
	d.destroyed(DestroyTextureView)
	d.Device.DestroyTextureView(v)
}

func (d *Device) CreateSampler(desc *hal.SamplerDescriptor) (hal.Sampler, error) {
	if err := d.record(CreateSampler); err != nil {
		return nil, err
	}
	return d.Device.CreateSampler(desc)
}

func (d *Device) DestroySampler(s hal.Sampler) {
	d.destroyed(DestroySampler)
	d.Device.DestroySampler(s)
}

func (d *Device) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if err := d.record(CreateBuffer); err != nil {
		return nil, err
	}
	return d.Device.CreateBuffer(desc)
}

func (d *Device) DestroyBuffer(b hal.Buffer) {
	d.destroyed(DestroyBuffer)
	d.Device.DestroyBuffer(b)
}
