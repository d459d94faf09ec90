// Package gpu realizes renderq resource descriptors as native objects on a
// gogpu/wgpu HAL device.
//
// A [Context] wraps the hal.Device and hal.Queue every wrapper is created
// on. It can borrow a device owned by the host application (NewContext,
// NewContextFromProvider) or open its own (OpenDefault).
//
// Three wrappers implement the handle interfaces of package resource:
//
//   - [Shader]: a vertex and a fragment shader module, compiled from WGSL.
//     Sources are checked with gogpu/naga before they reach the driver.
//   - [Texture]: a 2D texture with a default view and a sampler derived
//     from the descriptor's filter and wrap modes. CPU formats the GPU
//     cannot sample directly are expanded on upload; mip chains are
//     generated on the CPU.
//   - [Mesh]: a vertex buffer and an optional index buffer.
//
// Construction either succeeds completely or returns an error after
// releasing everything it created. Destroy releases the native objects;
// the render command processor calls it exactly once per wrapper.
//
// All functions must be called from the goroutine that owns the device.
package gpu
