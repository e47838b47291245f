// Package module implements the explicit-text pipeline module
package module

import (
	"brandwatch/internal/brand"
	"brandwatch/internal/modkit"
	"brandwatch/internal/services/explicit/domain"
	"brandwatch/internal/services/explicit/service"
	pipedom "brandwatch/internal/services/pipeline/domain"
)

// Ports exposed by the explicit module
type Ports struct {
	Runner pipedom.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new explicit module
// Callers inject the search client and watermark store via
// WithPorts(explicit/domain.Ports{...})
func New(deps modkit.Deps, bc *brand.Config, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("explicit"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("explicit module: expected WithPorts(explicit/domain.Ports)")
	}
	if ports.Search == nil {
		panic("explicit module: Ports missing Search")
	}
	if ports.Marks == nil {
		panic("explicit module: Ports missing Marks")
	}
	if bc == nil {
		panic("explicit module: brand config required")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.MentionPages != 0 {
		cfg.MentionPages = overrides.MentionPages
	}
	if overrides.KeywordPages != 0 {
		cfg.KeywordPages = overrides.KeywordPages
	}

	svc := service.New(ports.Search, ports.Marks, bc, service.Config{
		MentionPages: cfg.MentionPages,
		KeywordPages: cfg.KeywordPages,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "explicit" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
