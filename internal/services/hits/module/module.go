// Package module implements the hits module
package module

import (
	"brandwatch/internal/brand"
	"brandwatch/internal/modkit"
	"brandwatch/internal/services/hits/domain"
	"brandwatch/internal/services/hits/repo"
	"brandwatch/internal/services/hits/service"
)

// Ports exposed by the hits module
type Ports struct {
	Hits   *service.Service
	Writer domain.WriterPort // nil when archiving is disabled
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new hits module
// The archive writer is wired only when the clickhouse seam is present
func New(deps modkit.Deps, bc *brand.Config, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{
		modkit.WithName("hits"),
	}, opts...)...)

	if bc == nil {
		panic("hits module: brand config required")
	}

	var writer domain.WriterPort
	if deps.CH != nil {
		writer = repo.NewCH(deps.CH)
	}

	m := &Module{deps: deps}
	m.ports = Ports{
		Hits:   service.New(writer, bc),
		Writer: writer,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "hits" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
