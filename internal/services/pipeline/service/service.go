// Package service implements the pipeline orchestrator
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"brandwatch/internal/platform/logger"
	"brandwatch/internal/services/pipeline/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Config for the orchestrator
type Config struct {
	WindowMinutes int // 0 = default 35
}

// Service implements one listening cycle over both pipelines
type Service struct {
	Explicit domain.RunnerPort
	Images   domain.RunnerPort // nil disables the image pipeline
	Cfg      Config

	now func() time.Time // test seam
}

// New constructs the orchestrator
func New(explicit, images domain.RunnerPort, cfg Config) *Service {
	if cfg.WindowMinutes <= 0 {
		cfg.WindowMinutes = 35
	}
	return &Service{
		Explicit: explicit,
		Images:   images,
		Cfg:      cfg,
		now:      time.Now,
	}
}

// Run executes both pipelines against one shared context and merges
// their outputs. Any pipeline failure aborts the run; partial-result
// handling stays inside the pipelines themselves
func (s *Service) Run(ctx context.Context) (string, []domain.Detection, error) {
	now := s.now().UTC()
	runID := fmt.Sprintf("run_%d_%s", now.UnixMilli(), uuid.NewString()[:8])
	windowStart := now.Add(-time.Duration(s.Cfg.WindowMinutes) * time.Minute)

	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)
	log.Info().
		Time("window_start", windowStart).
		Int("window_minutes", s.Cfg.WindowMinutes).
		Msg("listening cycle started")

	run := domain.NewContext(runID, windowStart)

	var explicitOut, imageOut []domain.Detection
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.Explicit.Run(gctx, run)
		explicitOut = out
		return err
	})
	if s.Images != nil {
		g.Go(func() error {
			out, err := s.Images.Run(gctx, run)
			imageOut = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return runID, nil, err
	}

	merged := Merge(append(explicitOut, imageOut...))
	log.Info().
		Int("explicit", len(explicitOut)).
		Int("images", len(imageOut)).
		Int("merged", len(merged)).
		Msg("listening cycle finished")
	return runID, merged, nil
}

// Merge resolves cross-pipeline duplicates keeping the highest
// confidence per post id and sorts by creation time, most recent first
func Merge(in []domain.Detection) []domain.Detection {
	best := make(map[string]domain.Detection, len(in))
	order := make([]string, 0, len(in))
	for _, d := range in {
		prev, ok := best[d.Post.ID]
		if !ok {
			best[d.Post.ID] = d
			order = append(order, d.Post.ID)
			continue
		}
		if d.Confidence > prev.Confidence {
			best[d.Post.ID] = d
		}
	}

	out := make([]domain.Detection, 0, len(best))
	for _, id := range order {
		out = append(out, best[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Post.CreatedAt.After(out[j].Post.CreatedAt)
	})
	return out
}
