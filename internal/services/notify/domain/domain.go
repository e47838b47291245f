// Package domain defines the notification sink contract
package domain

import (
	"context"

	hitsdom "brandwatch/internal/services/hits/domain"
)

// SenderPort delivers one run's worth of hits to a single sink
type SenderPort interface {
	Name() string
	Send(ctx context.Context, hits []hitsdom.Hit) error
}
