package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/renderq/internal/cache"

	// Register the Vulkan backend for OpenDefault.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DefaultMaxTextureSize is the WebGPU default for maxTextureDimension2D.
const DefaultMaxTextureSize = 8192

// DefaultTextureUnits is the number of texture units tracked by default.
const DefaultTextureUnits = 8

// DefaultShaderCacheSize is the number of checked WGSL sources remembered
// per context.
const DefaultShaderCacheSize = 64

// Context is the graphics context every wrapper is created on. It is
// passed explicitly to each constructor.
type Context struct {
	device   hal.Device
	queue    hal.Queue
	instance hal.Instance
	owned    bool

	adapterName     string
	textureUnits    int
	maxTextureSize  uint32
	validateShaders bool
	shaderCacheSize int
	stages          *cache.Cache[stageKey, stageResult]
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithTextureUnits sets the number of texture units (minimum 1).
func WithTextureUnits(n int) ContextOption {
	return func(c *Context) {
		c.textureUnits = max(1, n)
	}
}

// WithMaxTextureSize sets the largest texture dimension accepted.
// Zero keeps the default.
func WithMaxTextureSize(size uint32) ContextOption {
	return func(c *Context) {
		if size > 0 {
			c.maxTextureSize = size
		}
	}
}

// WithShaderValidation enables naga IR validation of shader sources.
// Parsing and lowering always run; validation is off by default.
func WithShaderValidation(enabled bool) ContextOption {
	return func(c *Context) {
		c.validateShaders = enabled
	}
}

// WithShaderCacheSize sets how many checked WGSL sources are remembered.
// Zero disables the cache.
func WithShaderCacheSize(n int) ContextOption {
	return func(c *Context) {
		c.shaderCacheSize = max(0, n)
	}
}

func newContext(device hal.Device, queue hal.Queue, opts []ContextOption) *Context {
	c := &Context{
		device:          device,
		queue:           queue,
		textureUnits:    DefaultTextureUnits,
		maxTextureSize:  DefaultMaxTextureSize,
		shaderCacheSize: DefaultShaderCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.shaderCacheSize > 0 {
		c.stages = cache.New[stageKey, stageResult](c.shaderCacheSize)
	}
	return c
}

// NewContext wraps a device and queue owned by the caller. Destroy does
// not release them.
func NewContext(device hal.Device, queue hal.Queue, opts ...ContextOption) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	return newContext(device, queue, opts), nil
}

// NewContextFromProvider borrows the HAL device of a gpucontext provider
// such as a gogpu application. The provider must also expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func NewContextFromProvider(provider gpucontext.DeviceProvider, opts ...ContextOption) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoDevice)
	}
	return newContext(device, queue, opts), nil
}

// OpenDefault creates a Vulkan instance and opens a device on the first
// discrete or integrated adapter, falling back to the first adapter found.
// The returned context owns the device; call Destroy when done.
func OpenDefault(opts ...ContextOption) (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan", ErrBackendUnavailable)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return openOn(instance, opts)
}

// OpenNoop opens a device on the noop HAL backend. Every call succeeds and
// nothing is rendered; it is used for dry runs and tests.
func OpenNoop(opts ...ContextOption) (*Context, error) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("create noop instance: %w", err)
	}
	return openOn(instance, opts)
}

func openOn(instance hal.Instance, opts []ContextOption) (*Context, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: no GPU adapters found", ErrBackendUnavailable)
	}

	var selected *hal.ExposedAdapter
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
		return nil, fmt.Errorf("open device: %w", err)
	}

	c := newContext(openDev.Device, openDev.Queue, opts)
	c.instance = instance
	c.owned = true
	c.adapterName = selected.Info.Name
	slogger().Info("gpu: device opened", "adapter", c.adapterName)
	return c, nil
}

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// AdapterName returns the adapter name for owned devices, or "".
func (c *Context) AdapterName() string { return c.adapterName }

// TextureUnits returns the number of texture units.
func (c *Context) TextureUnits() int { return c.textureUnits }

// MaxTextureSize returns the largest accepted texture dimension.
func (c *Context) MaxTextureSize() uint32 { return c.maxTextureSize }

// ValidatesShaders reports whether shader sources are validated.
func (c *Context) ValidatesShaders() bool { return c.validateShaders }

// ShaderCacheStats reports how often shader sources skipped the front end.
// It is the zero value when the cache is disabled.
func (c *Context) ShaderCacheStats() ShaderCacheStats {
	if c.stages == nil {
		return ShaderCacheStats{}
	}
	s := c.stages.Stats()
	return ShaderCacheStats{Entries: s.Len, Hits: s.Hits, Misses: s.Misses}
}

// ShaderCacheStats counts lookups in the checked-source cache.
type ShaderCacheStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
}

// Owned reports whether Destroy releases the device.
func (c *Context) Owned() bool { return c.owned }

// Destroy releases the device and instance if the context owns them.
// Borrowed devices are left untouched. Wrappers created on the context
// must be destroyed first.
func (c *Context) Destroy() {
	if c.owned {
		if c.device != nil {
			c.device.Destroy()
		}
		if c.instance != nil {
			c.instance.Destroy()
		}
	}
	c.device = nil
	c.queue = nil
	c.instance = nil
	c.owned = false
}
