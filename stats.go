package renderq

import "github.com/gogpu/renderq/state"

// KindStats counts loads and unloads of one resource kind.
type KindStats struct {
	Loaded   int
	Unloaded int
	// Live is the number of wrappers currently held in descriptor slots.
	Live int
}

// Stats are cumulative processor counters.
type Stats struct {
	Queues                int
	Commands              int
	MaterialGroupCommands int

	Shaders  KindStats
	Textures KindStats
	Meshes   KindStats
}

func (s *Stats) kind(k state.Kind) *KindStats {
	switch k {
	case state.KindShader:
		return &s.Shaders
	case state.KindTexture:
		return &s.Textures
	default:
		return &s.Meshes
	}
}

// Live returns the total number of live wrappers.
func (s Stats) Live() int {
	return s.Shaders.Live + s.Textures.Live + s.Meshes.Live
}
