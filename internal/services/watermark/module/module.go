// Package module implements the watermark module
package module

import (
	"brandwatch/internal/modkit"
	"brandwatch/internal/modkit/repokit"
	"brandwatch/internal/services/watermark/domain"
	"brandwatch/internal/services/watermark/repo"
)

// Ports exposed by the watermark module
type Ports struct {
	Store domain.StorePort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a watermark module, selecting the backend from
// STATE_BACKEND (pg|file). The file backend needs no store at all
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{
		modkit.WithName("watermark"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var st domain.StorePort
	switch cfg.Backend {
	case "pg":
		st = repokit.MustBind(repo.NewPG(), deps.PG)
	case "file":
		st = repo.NewFile(cfg.FilePath)
	default:
		panic("watermark module: STATE_BACKEND must be pg or file, got " + cfg.Backend)
	}

	m := &Module{deps: deps}
	m.ports = Ports{Store: st}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "watermark" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
