package renderq

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/renderq/command"
	"github.com/gogpu/renderq/gpu"
	"github.com/gogpu/renderq/resource"
	"github.com/gogpu/renderq/state"
)

// Processor executes render command queues against a graphics context.
//
// Process must be called from the goroutine that owns the context's
// device. It is not reentrant. A Processor that has returned an error
// refuses further work.
type Processor struct {
	ctx    *gpu.Context
	cache  *state.Cache
	logger *slog.Logger

	running atomic.Bool
	failed  error
	stats   Stats
}

// NewProcessor creates a processor bound to ctx. It panics if ctx is nil.
func NewProcessor(ctx *gpu.Context, opts ...Option) *Processor {
	if ctx == nil {
		panic("renderq: NewProcessor with nil context")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = state.NewCache(ctx.TextureUnits())
	}
	return &Processor{ctx: ctx, cache: o.cache, logger: o.logger}
}

func (p *Processor) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}

// Context returns the graphics context.
func (p *Processor) Context() *gpu.Context { return p.ctx }

// State returns the device state cache maintained by the processor.
func (p *Processor) State() *state.Cache { return p.cache }

// Stats returns cumulative counters.
func (p *Processor) Stats() Stats { return p.stats }

// Err returns the error that stopped the processor, or nil.
func (p *Processor) Err() error { return p.failed }

// Process executes every command of every list in q, in order, and
// returns once all of them have taken effect. A nil queue is a no-op.
//
// The first failing command stops processing; commands before it keep
// their effects. The returned error is a *ProtocolError or a
// *ConstructionError, and every later call returns ErrProcessorFailed.
func (p *Processor) Process(q *command.Queue) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrReentrantProcess
	}
	defer p.running.Store(false)

	if p.failed != nil {
		return fmt.Errorf("%w: %w", ErrProcessorFailed, p.failed)
	}
	if q == nil {
		return nil
	}

	l := p.log()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		counts := command.Count(q)
		l.Debug("renderq: processing queue",
			"lists", q.Len(), "commands", q.CommandCount(),
			"loads", counts.Loads(), "unloads", counts.Unloads())
	}

	for li, list := range q.Lists() {
		for ci, cmd := range list.Commands() {
			if err := p.execute(cmd); err != nil {
				err = locate(err, Position{List: li, Command: ci, Type: cmd.Type()})
				p.failed = err
				l.Error("renderq: queue failed", "list", list.Label(), "error", err)
				return err
			}
			p.stats.Commands++
		}
	}
	p.stats.Queues++
	return nil
}

// execute dispatches a single command on its type tag.
func (p *Processor) execute(cmd command.Command) error {
	switch t := cmd.Type(); t {
	case command.TypeLoadShader:
		c, ok := cmd.(command.LoadShaderCommand)
		if !ok {
			return mismatch(cmd)
		}
		return p.loadShader(c)
	case command.TypeLoadTexture:
		c, ok := cmd.(command.LoadTextureCommand)
		if !ok {
			return mismatch(cmd)
		}
		return p.loadTexture(c)
	case command.TypeLoadMesh:
		c, ok := cmd.(command.LoadMeshCommand)
		if !ok {
			return mismatch(cmd)
		}
		return p.loadMesh(c)
	case command.TypeUnloadShader:
		c, ok := cmd.(command.UnloadShaderCommand)
		if !ok {
			return mismatch(cmd)
		}
		if c.Shader == nil {
			return protocolError(ErrNilResource)
		}
		return unload(p, c.Shader.ExtraData(), state.KindShader, c.Shader.Label())
	case command.TypeUnloadTexture:
		c, ok := cmd.(command.UnloadTextureCommand)
		if !ok {
			return mismatch(cmd)
		}
		if c.Texture == nil {
			return protocolError(ErrNilResource)
		}
		return unload(p, c.Texture.ExtraData(), state.KindTexture, c.Texture.Label())
	case command.TypeUnloadMesh:
		c, ok := cmd.(command.UnloadMeshCommand)
		if !ok {
			return mismatch(cmd)
		}
		if c.Mesh == nil {
			return protocolError(ErrNilResource)
		}
		return unload(p, c.Mesh.ExtraData(), state.KindMesh, c.Mesh.Label())
	case command.TypeLoadMaterialGroup, command.TypeUnloadMaterialGroup:
		// Material groups have no native object at this tier.
		p.stats.MaterialGroupCommands++
		return nil
	default:
		return protocolError(fmt.Errorf("%w: %d", ErrUnknownCommand, uint8(t)))
	}
}

func mismatch(cmd command.Command) error {
	return protocolError(fmt.Errorf("%w: %s tag on %T", ErrCommandMismatch, cmd.Type(), cmd))
}

func (p *Processor) loadShader(c command.LoadShaderCommand) error {
	if c.Shader == nil {
		return protocolError(ErrNilResource)
	}
	s, err := gpu.NewShader(p.ctx, c.Shader.Label(), c.VertexSource, c.FragmentSource)
	if err != nil {
		return constructionError(c.Shader.Label(), err)
	}
	attach(p, c.Shader.ExtraData(), resource.ShaderHandle(s), state.KindShader, c.Shader.Label())
	return nil
}

func (p *Processor) loadTexture(c command.LoadTextureCommand) error {
	if c.Texture == nil {
		return protocolError(ErrNilResource)
	}
	t, err := gpu.NewTexture(p.ctx, c.Texture.Label(), c.Data, c.Texture.Desc())
	if err != nil {
		return constructionError(c.Texture.Label(), err)
	}
	attach(p, c.Texture.ExtraData(), resource.TextureHandle(t), state.KindTexture, c.Texture.Label())
	return nil
}

func (p *Processor) loadMesh(c command.LoadMeshCommand) error {
	if c.Mesh == nil {
		return protocolError(ErrNilResource)
	}
	m, err := gpu.NewMesh(p.ctx, c.Mesh.Label(), c.Mesh.Desc(), c.VertexData, c.IndexData)
	if err != nil {
		return constructionError(c.Mesh.Label(), err)
	}
	attach(p, c.Mesh.ExtraData(), resource.MeshHandle(m), state.KindMesh, c.Mesh.Label())
	return nil
}

// attach stores a freshly built wrapper in its descriptor slot and
// invalidates the cache entry for its kind. A wrapper already in the slot
// is released first.
func attach[H resource.Handle](p *Processor, slot *resource.Slot[H], h H, kind state.Kind, label string) {
	if old, ok := slot.Take(); ok {
		p.cache.Clear(kind)
		old.Destroy()
		p.stats.kind(kind).Live--
		p.log().Warn("renderq: load replaced a loaded resource", "kind", kind.String(), "label", label)
	}
	slot.Set(h)
	p.cache.Clear(kind)

	ks := p.stats.kind(kind)
	ks.Loaded++
	ks.Live++
}

// unload invalidates the cache entry for kind, then destroys the wrapper
// held by slot and leaves the slot empty.
func unload[H resource.Handle](p *Processor, slot *resource.Slot[H], kind state.Kind, label string) error {
	p.cache.Clear(kind)
	h, ok := slot.Take()
	if !ok {
		return protocolError(fmt.Errorf("%w: %s %q", ErrSlotEmpty, kind, label))
	}
	h.Destroy()

	ks := p.stats.kind(kind)
	ks.Unloaded++
	ks.Live--
	return nil
}
