// Package resource defines the logical, backend-agnostic descriptions of
// renderable resources: shaders, textures, meshes and material groups.
//
// A descriptor carries the attributes a graphics backend needs to build a
// native object (dimensions, pixel format, vertex layout, ...) plus a typed
// extra-data [Slot] in which the backend stores the realized GPU wrapper.
// Descriptors are owned by the producer (the render preparation stage); the
// wrapper stored in a slot is owned by the slot and is only ever set or
// cleared by the render command processor.
//
// # Slots
//
// Each slot holds at most one handle of a single kind:
//
//	tex := resource.NewRenderTexture("atlas", resource.TextureDesc{
//	    Width: 256, Height: 256, Format: resource.ImageFormatRGBA8888,
//	})
//	if h, ok := tex.ExtraData().Get(); ok {
//	    _ = h.View()
//	}
//
// A slot is set if and only if a load for the descriptor has been processed
// and no matching unload has been processed since.
package resource
