// Package service fans hit notifications out to the configured sinks
package service

import (
	"context"
	"time"

	"brandwatch/internal/core/score"
	"brandwatch/internal/platform/logger"
	ptime "brandwatch/internal/platform/time"
	hitsdom "brandwatch/internal/services/hits/domain"
	"brandwatch/internal/services/notify/domain"
)

// Notifier delivers notify-decision hits to every configured sender
// Sink failures are recorded on the hits, never returned; delivery is
// at-least-once and a dead sink must not fail the run
type Notifier struct {
	Senders []domain.SenderPort

	now func() time.Time
}

// New constructs a Notifier over the given senders
func New(senders ...domain.SenderPort) *Notifier {
	return &Notifier{Senders: senders, now: time.Now}
}

// Notify sends the notify-decision subset of hits to every sender and
// returns the hits annotated with delivery state
// NotifiedAt is set when at least one sink accepted the batch
func (n *Notifier) Notify(ctx context.Context, hits []hitsdom.Hit) []hitsdom.Hit {
	out := make([]hitsdom.Hit, len(hits))
	copy(out, hits)

	var idx []int
	for i, h := range out {
		if h.Decision == score.DecisionNotify {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 || len(n.Senders) == 0 {
		return out
	}

	batch := make([]hitsdom.Hit, 0, len(idx))
	for _, i := range idx {
		batch = append(batch, out[i])
	}

	log := logger.C(ctx)
	var sinkErrs []string
	delivered := false
	for _, s := range n.Senders {
		if err := s.Send(ctx, batch); err != nil {
			log.Warn().Err(err).Str("sink", s.Name()).Int("hits", len(batch)).
				Msg("notification sink failed")
			sinkErrs = append(sinkErrs, s.Name()+": "+err.Error())
			continue
		}
		delivered = true
	}

	at := n.now().UTC()
	for _, i := range idx {
		if delivered {
			out[i].NotifiedAt = ptime.Ptr(at)
		}
		out[i].NotifyErrors = append(out[i].NotifyErrors, sinkErrs...)
	}
	return out
}
