package renderq

import (
	"log/slog"

	"github.com/gogpu/renderq/state"
)

// Option configures a Processor during creation.
//
// Example:
//
//	cache := state.NewCache(ctx.TextureUnits())
//	p := renderq.NewProcessor(ctx, renderq.WithStateCache(cache))
type Option func(*options)

type options struct {
	cache  *state.Cache
	logger *slog.Logger
}

// WithStateCache shares an existing state cache with the processor, for
// example the one owned by the draw path. By default the processor creates
// a cache sized to the context's texture units.
func WithStateCache(c *state.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithLogger sets a logger for this processor only, overriding the
// package logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
