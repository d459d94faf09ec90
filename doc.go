// Package renderq executes queues of render commands against a gogpu/wgpu
// HAL device.
//
// # Overview
//
// A render preparation stage decides which shaders, textures and meshes
// must be resident on the GPU and records that decision as commands
// (package command) that reference logical descriptors (package resource).
// The Processor consumes those commands on the goroutine that owns the
// device, builds or releases the native objects (package gpu), attaches
// them to the descriptors, and keeps the device state cache (package
// state) consistent with what is alive.
//
// # Quick Start
//
//	ctx, err := gpu.OpenDefault()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	p := renderq.NewProcessor(ctx)
//
//	shader := resource.NewRenderShader("sprite")
//	list := command.NewList("frame 0")
//	list.AddLoadShader(shader, spriteWGSL, spriteWGSL)
//
//	if err := p.Process(command.NewQueue(list)); err != nil {
//	    log.Fatal(err)
//	}
//	program, _ := shader.ExtraData().Get()
//
// # Command semantics
//
// Loads build the wrapper, store it in the descriptor's extra-data slot and
// clear the cache entry of that kind. Unloads clear the cache entry first,
// then destroy the wrapper and empty the slot, so the cache never refers
// to a destroyed object. Material group commands are accepted and ignored.
//
// # Errors
//
// Errors are fatal to the processor. Protocol violations (unknown command
// types, unloads of resources that are not loaded) match
// ErrProtocolViolation; failures to build a native object match
// ErrConstruction. After either, every call to Process returns
// ErrProcessorFailed.
//
// # Logging
//
// renderq is silent by default. Use SetLogger to route diagnostics to any
// slog.Handler.
package renderq
