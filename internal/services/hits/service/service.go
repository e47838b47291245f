// Package service maps pipeline detections into hit records and
// archives the ones worth keeping
package service

import (
	"context"
	"time"

	"brandwatch/internal/brand"
	"brandwatch/internal/core/score"
	"brandwatch/internal/platform/logger"
	pstrings "brandwatch/internal/platform/strings"
	"brandwatch/internal/services/hits/domain"
	pipedom "brandwatch/internal/services/pipeline/domain"
)

// Service implements the detection-to-hit mapping and the archive write
type Service struct {
	Writer domain.WriterPort
	Brand  *brand.Config
}

// New constructs a new hits service
// Writer may be nil when archiving is disabled; Archive becomes a no-op
func New(writer domain.WriterPort, bc *brand.Config) *Service {
	return &Service{Writer: writer, Brand: bc}
}

// FromDetection maps one detection to its hit record, deciding its fate
// from the configured thresholds
func (s *Service) FromDetection(d pipedom.Detection, runID string, now time.Time) domain.Hit {
	return domain.Hit{
		RunID:           runID,
		CapturedAt:      now.UTC(),
		PostID:          d.Post.ID,
		PostURL:         d.Post.URL,
		AuthorID:        d.Post.Author.ID,
		AuthorHandle:    d.Post.Author.Handle,
		AuthorName:      d.Post.Author.Name,
		AuthorFollowers: d.Post.Author.Followers,
		Text:            d.Post.Text,
		Language:        pstrings.OrDefault(d.Post.Language, s.Brand.LanguageFallback),
		MediaURLs:       d.Post.MediaURLs(),
		Reason:          string(d.Reason),
		Terms:           d.Terms,
		ImageNotes:      d.ImageNotes,
		Confidence:      d.Confidence,
		Decision: score.Decide(d.Confidence, score.Thresholds{
			Notify:  s.Brand.Thresholds.Notify,
			LogOnly: s.Brand.Thresholds.LogOnly,
		}),
	}
}

// FromDetections maps a whole run's detections, preserving order
func (s *Service) FromDetections(ds []pipedom.Detection, runID string, now time.Time) []domain.Hit {
	out := make([]domain.Hit, 0, len(ds))
	for _, d := range ds {
		out = append(out, s.FromDetection(d, runID, now))
	}
	return out
}

// Archive writes every non-ignore hit to the archive sink
// Ignored hits are dropped here, not earlier, so the decision stays
// visible in run logs
func (s *Service) Archive(ctx context.Context, hits []domain.Hit) error {
	keep := make([]domain.Hit, 0, len(hits))
	for _, h := range hits {
		if h.Decision == score.DecisionIgnore {
			continue
		}
		keep = append(keep, h)
	}
	if len(keep) == 0 || s.Writer == nil {
		return nil
	}
	if err := s.Writer.WriteBatch(ctx, keep); err != nil {
		return err
	}
	logger.C(ctx).Debug().Int("archived", len(keep)).Msg("hits archived")
	return nil
}
