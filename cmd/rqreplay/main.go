// Command rqreplay loads a scene manifest, turns it into render command
// queues and replays them through a renderq processor.
//
// Usage:
//
//	rqreplay -manifest scene.toml [-noop] [-frames N] [-watch] [-v]
//
// Frame 0 loads every resource, the last frame unloads them. With -watch,
// the tool keeps running after the load frame and reloads any shader whose
// source file changes, until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/gogpu/renderq"
	"github.com/gogpu/renderq/command"
	"github.com/gogpu/renderq/gpu"
)

func init() {
	// The HAL device must be driven from a single OS thread.
	runtime.LockOSThread()
}

func main() {
	var (
		manifestPath = flag.String("manifest", "scene.toml", "scene manifest (.toml, .yaml)")
		useNoop      = flag.Bool("noop", false, "use the noop HAL device instead of Vulkan")
		frames       = flag.Int("frames", 2, "number of frames to replay (minimum 2)")
		watch        = flag.Bool("watch", false, "reload shaders when their source files change")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		renderq.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	m, err := LoadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}
	scene, err := NewScene(m)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	open := gpu.OpenDefault
	if *useNoop {
		open = gpu.OpenNoop
	}
	ctx, err := open()
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}
	p := renderq.NewProcessor(ctx)

	var hold func() error
	if *watch {
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		hold = func() error { return watchShaders(sigCtx, p, scene) }
	}

	if err := replay(p, scene, *frames, hold); err != nil {
		ctx.Destroy()
		log.Fatalf("Replay failed: %v", err)
	}
	printStats(os.Stdout, p.Stats())
	cs := ctx.ShaderCacheStats()
	fmt.Printf("shader cache entries %d hits %d misses %d\n", cs.Entries, cs.Hits, cs.Misses)
	ctx.Destroy()
}

// replay processes the load frame, empty frames, then the unload frame.
// hold, if not nil, runs after the load frame.
func replay(p *renderq.Processor, scene *Scene, frames int, hold func() error) error {
	load, err := scene.LoadList()
	if err != nil {
		return err
	}
	if err := p.Process(command.NewQueue(load)); err != nil {
		return fmt.Errorf("frame 0: %w", err)
	}
	for f := 1; f < frames-1; f++ {
		if err := p.Process(command.NewQueue()); err != nil {
			return fmt.Errorf("frame %d: %w", f, err)
		}
	}
	if hold != nil {
		if err := hold(); err != nil {
			return err
		}
	}
	if err := p.Process(command.NewQueue(scene.UnloadList())); err != nil {
		return fmt.Errorf("unload frame: %w", err)
	}
	return nil
}

func printStats(w io.Writer, s renderq.Stats) {
	fmt.Fprintf(w, "queues %d, commands %d, material group commands %d\n",
		s.Queues, s.Commands, s.MaterialGroupCommands)
	fmt.Fprintf(w, "shaders  loaded %d unloaded %d live %d\n", s.Shaders.Loaded, s.Shaders.Unloaded, s.Shaders.Live)
	fmt.Fprintf(w, "textures loaded %d unloaded %d live %d\n", s.Textures.Loaded, s.Textures.Unloaded, s.Textures.Live)
	fmt.Fprintf(w, "meshes   loaded %d unloaded %d live %d\n", s.Meshes.Loaded, s.Meshes.Unloaded, s.Meshes.Live)
}
