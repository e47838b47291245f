// Package module implements the image pipeline module
package module

import (
	"brandwatch/internal/brand"
	"brandwatch/internal/modkit"
	"brandwatch/internal/services/images/domain"
	"brandwatch/internal/services/images/service"
	pipedom "brandwatch/internal/services/pipeline/domain"
)

// Ports exposed by the images module
type Ports struct {
	Runner pipedom.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new images module
// Callers inject the search client, vision backend and watermark store
// via WithPorts(images/domain.Ports{...})
func New(deps modkit.Deps, bc *brand.Config, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("images"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("images module: expected WithPorts(images/domain.Ports)")
	}
	if ports.Search == nil {
		panic("images module: Ports missing Search")
	}
	if ports.Vision == nil {
		panic("images module: Ports missing Vision")
	}
	if ports.Marks == nil {
		panic("images module: Ports missing Marks")
	}
	if bc == nil {
		panic("images module: brand config required")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.Pages != 0 {
		cfg.Pages = overrides.Pages
	}

	svc := service.New(ports.Search, ports.Vision, ports.Marks, bc, service.Config{
		Pages: cfg.Pages,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "images" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
