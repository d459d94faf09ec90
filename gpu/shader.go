package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/wgpu/hal"
)

// Shader is a linked vertex/fragment program: one shader module per stage.
// It implements resource.ShaderHandle.
type Shader struct {
	device hal.Device

	vertex   hal.ShaderModule
	fragment hal.ShaderModule

	vertexEntry   string
	fragmentEntry string
}

// NewShader compiles a program from WGSL vertex and fragment sources. The
// vertex source must declare a @vertex entry point and the fragment source
// a @fragment entry point. Both sources may be the same string.
func NewShader(ctx *Context, label, vertexSource, fragmentSource string) (*Shader, error) {
	if ctx == nil || ctx.device == nil {
		return nil, ErrNoDevice
	}

	vsEntry, err := ctx.checkStage(vertexSource, ir.StageVertex)
	if err != nil {
		return nil, fmt.Errorf("shader %q vertex: %w", label, err)
	}
	fsEntry, err := ctx.checkStage(fragmentSource, ir.StageFragment)
	if err != nil {
		return nil, fmt.Errorf("shader %q fragment: %w", label, err)
	}

	s := &Shader{device: ctx.device, vertexEntry: vsEntry, fragmentEntry: fsEntry}

	s.vertex, err = ctx.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_vs",
		Source: hal.ShaderSource{WGSL: vertexSource},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module %q vertex: %w", label, err)
	}
	s.fragment, err = ctx.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_fs",
		Source: hal.ShaderSource{WGSL: fragmentSource},
	})
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("create shader module %q fragment: %w", label, err)
	}

	slogger().Debug("gpu: shader created", "label", label, "vs", vsEntry, "fs", fsEntry)
	return s, nil
}

// CheckShader runs the naga front end on both sources without creating
// any GPU object. It reports the same errors NewShader would for bad WGSL
// or a missing entry point.
func CheckShader(ctx *Context, vertexSource, fragmentSource string) error {
	if ctx == nil || ctx.device == nil {
		return ErrNoDevice
	}
	if _, err := ctx.checkStage(vertexSource, ir.StageVertex); err != nil {
		return fmt.Errorf("vertex: %w", err)
	}
	if _, err := ctx.checkStage(fragmentSource, ir.StageFragment); err != nil {
		return fmt.Errorf("fragment: %w", err)
	}
	return nil
}

type stageKey struct {
	source   string
	stage    ir.ShaderStage
	validate bool
}

type stageResult struct {
	entry string
	err   error
}

// checkStage runs the naga front end on src, reusing an earlier result for
// the same source and stage. Failures are cached as well.
func (c *Context) checkStage(src string, stage ir.ShaderStage) (string, error) {
	if c.stages == nil {
		return frontEnd(src, stage, c.validateShaders)
	}
	key := stageKey{source: src, stage: stage, validate: c.validateShaders}
	r := c.stages.GetOrCreate(key, func() stageResult {
		entry, err := frontEnd(src, stage, c.validateShaders)
		return stageResult{entry: entry, err: err}
	})
	return r.entry, r.err
}

// frontEnd parses and lowers src with naga and returns the name of its
// first entry point for stage.
func frontEnd(src string, stage ir.ShaderStage, validate bool) (string, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: parse: %w", ErrShaderCompile, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return "", fmt.Errorf("%w: lower: %w", ErrShaderCompile, err)
	}
	if validate {
		verrs, err := naga.Validate(module)
		if err != nil {
			return "", fmt.Errorf("%w: validate: %w", ErrShaderCompile, err)
		}
		if len(verrs) > 0 {
			errs := make([]error, len(verrs))
			for i := range verrs {
				errs[i] = verrs[i]
			}
			return "", fmt.Errorf("%w: validate: %w", ErrShaderCompile, errors.Join(errs...))
		}
	}
	for _, ep := range module.EntryPoints {
		if ep.Stage == stage {
			return ep.Name, nil
		}
	}
	return "", fmt.Errorf("%w: no %s entry point", ErrMissingEntryPoint, stageName(stage))
}

func stageName(stage ir.ShaderStage) string {
	switch stage {
	case ir.StageVertex:
		return "@vertex"
	case ir.StageFragment:
		return "@fragment"
	default:
		return "@compute"
	}
}

// VertexModule returns the vertex stage module.
func (s *Shader) VertexModule() hal.ShaderModule { return s.vertex }

// FragmentModule returns the fragment stage module.
func (s *Shader) FragmentModule() hal.ShaderModule { return s.fragment }

// VertexEntryPoint returns the name of the vertex entry point.
func (s *Shader) VertexEntryPoint() string { return s.vertexEntry }

// FragmentEntryPoint returns the name of the fragment entry point.
func (s *Shader) FragmentEntryPoint() string { return s.fragmentEntry }

// Destroy releases both shader modules.
func (s *Shader) Destroy() {
	if s.device == nil {
		return
	}
	if s.fragment != nil {
		s.device.DestroyShaderModule(s.fragment)
		s.fragment = nil
	}
	if s.vertex != nil {
		s.device.DestroyShaderModule(s.vertex)
		s.vertex = nil
	}
	s.device = nil
}
