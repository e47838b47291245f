// Package module implements the pipeline module
package module

import (
	"brandwatch/internal/modkit"
	"brandwatch/internal/services/pipeline/domain"
	"brandwatch/internal/services/pipeline/service"
)

// Ports exposed by the pipeline module
type Ports struct {
	Orchestrator *service.Service
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new pipeline module
// Callers inject the two pipeline runners via WithPorts(domain.Ports{...})
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("pipeline"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("pipeline module: expected WithPorts(pipeline/domain.Ports)")
	}
	if ports.Explicit == nil {
		panic("pipeline module: Ports missing Explicit runner")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.WindowMinutes != 0 {
		cfg.WindowMinutes = overrides.WindowMinutes
	}

	orch := service.New(ports.Explicit, ports.Images, service.Config{
		WindowMinutes: cfg.WindowMinutes,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Orchestrator: orch}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "pipeline" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
