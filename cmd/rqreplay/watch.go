package main

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/renderq"
	"github.com/gogpu/renderq/command"
	"github.com/gogpu/renderq/gpu"
)

// watchShaders reloads shaders whose source files change until ctx is done.
// Commands are processed on the calling goroutine.
func watchShaders(ctx context.Context, p *renderq.Processor, scene *Scene) error {
	watcher, dirs, err := newShaderWatcher(scene)
	if err != nil {
		return err
	}
	defer watcher.Close()

	log.Printf("Watching %d shader directories, interrupt to stop", dirs)
	return watchLoop(ctx, watcher, func(path string) error {
		return reloadShader(p, scene, path)
	})
}

// newShaderWatcher watches the directory of every shader source. Directories
// are watched rather than files so that editors that replace files by
// rename keep being observed. It returns the number of directories added.
func newShaderWatcher(scene *Scene) (*fsnotify.Watcher, int, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, 0, fmt.Errorf("create watcher: %w", err)
	}
	dirs := make(map[string]bool)
	for _, path := range scene.ShaderPaths() {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, 0, fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	return watcher, len(dirs), nil
}

// watchLoop calls reload for every written or created file until ctx is
// done or the watcher is closed. An error from reload ends the loop.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, reload func(path string) error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := reload(event.Name); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// reloadShader processes an unload/load pair for every shader reading path.
// Sources that do not compile are skipped and the loaded program stays in
// place, so a save that briefly leaves the file empty does not stop the
// processor.
func reloadShader(p *renderq.Processor, scene *Scene, path string) error {
	check := func(vs, fs string) error {
		return gpu.CheckShader(p.Context(), vs, fs)
	}
	l, err := scene.ReloadList(path, check)
	if err != nil {
		log.Printf("Skipping reload of %s: %v", path, err)
		return nil
	}
	if l == nil {
		return nil
	}
	if err := p.Process(command.NewQueue(l)); err != nil {
		return fmt.Errorf("reload %s: %w", path, err)
	}
	log.Printf("Reloaded %s (%d shaders)", filepath.Base(path), l.Len()/2)
	return nil
}
