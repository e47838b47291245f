// Package module implements the notify module
package module

import (
	"time"

	"brandwatch/internal/brand"
	"brandwatch/internal/modkit"
	"brandwatch/internal/services/notify/domain"
	"brandwatch/internal/services/notify/service"
)

// Ports exposed by the notify module
type Ports struct {
	Notifier *service.Notifier
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new notify module, building one sender per webhook
// configured on the brand
func New(deps modkit.Deps, bc *brand.Config, overrides Options, opts ...modkit.Option) *Module {
	modkit.Build(append([]modkit.Option{
		modkit.WithName("notify"),
	}, opts...)...)

	if bc == nil {
		panic("notify module: brand config required")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.TimeoutMS != 0 {
		cfg.TimeoutMS = overrides.TimeoutMS
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond

	var senders []domain.SenderPort
	if url := bc.Notifications.SlackWebhookURL; url != "" {
		senders = append(senders, service.NewSlack(url, timeout))
	}
	if url := bc.Notifications.DiscordWebhookURL; url != "" {
		senders = append(senders, service.NewDiscord(url, timeout))
	}

	m := &Module{deps: deps}
	m.ports = Ports{Notifier: service.New(senders...)}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "notify" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }
