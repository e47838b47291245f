// Package service implements the image-only detection pipeline
package service

import (
	"context"
	"time"

	"brandwatch/internal/brand"
	"brandwatch/internal/core/query"
	"brandwatch/internal/platform/logger"
	ptime "brandwatch/internal/platform/time"
	"brandwatch/internal/services/images/domain"
	pipedom "brandwatch/internal/services/pipeline/domain"
	wmdom "brandwatch/internal/services/watermark/domain"
)

// Config bounds pagination for the image query
type Config struct {
	Pages int // default 15
}

// Service implements pipedom.RunnerPort for logo-in-image matches
// It only ever considers posts that carry photos and do not mention the
// brand textually; the query itself excludes explicit mentions
type Service struct {
	Search pipedom.SearchPort
	Vision domain.VisionPort
	Marks  wmdom.StorePort
	Brand  *brand.Config
	Cfg    Config
}

var _ pipedom.RunnerPort = (*Service)(nil)

// New constructs the image pipeline
func New(search pipedom.SearchPort, vision domain.VisionPort, marks wmdom.StorePort, bc *brand.Config, cfg Config) *Service {
	if cfg.Pages <= 0 {
		cfg.Pages = 15
	}
	return &Service{Search: search, Vision: vision, Marks: marks, Brand: bc, Cfg: cfg}
}

// Run pages through image-bearing posts, sends each photo to the vision
// backend, and keeps posts whose best logo verdict clears the threshold
// Page-fetch failures stop pagination; vision failures only demote the
// single image to a no-match; state store failures propagate
func (s *Service) Run(ctx context.Context, run *pipedom.Context) ([]pipedom.Detection, error) {
	log := logger.C(ctx).With().Str("pipeline", "images").Logger()

	marker, err := s.marker(ctx, run)
	if err != nil {
		return nil, err
	}
	q := query.ImageOnly(s.Brand.ExcludeTerms(), s.Brand.Language, marker)

	var out []pipedom.Detection
	cursor := ""
	for page := 0; page < s.Cfg.Pages; page++ {
		pg, err := s.Search.Search(ctx, q, cursor)
		if err != nil {
			log.Warn().Err(err).Int("page", page).Msg("image page fetch failed")
			break
		}
		for _, post := range pg.Posts {
			if run.Seen(post.ID) {
				continue
			}
			if !query.WithinWindow(post.CreatedAt, run.WindowStart) {
				continue
			}
			photos := post.PhotoURLs()
			if len(photos) == 0 {
				continue
			}
			if !run.TryAdd(post.ID) {
				continue
			}
			if d, ok := s.judge(ctx, post, photos, &log); ok {
				out = append(out, d)
			}
		}
		cursor = pg.NextCursor
		if cursor == "" {
			break
		}
	}

	if err := s.advanceWatermark(ctx, out); err != nil {
		return nil, err
	}

	log.Info().Int("detections", len(out)).Msg("image pipeline done")
	return out, nil
}

// judge runs every photo through the vision backend and accepts the post
// when at least one image matches and the best confidence clears the
// configured logo threshold
func (s *Service) judge(
	ctx context.Context, post pipedom.Post, photos []string, log *logger.Logger,
) (pipedom.Detection, bool) {
	var (
		matched bool
		best    float64
		notes   []string
	)
	for _, url := range photos {
		v, err := s.Vision.Analyze(ctx, url, s.Brand.Brand.Keywords)
		if err != nil {
			// one broken image must not sink the whole post
			log.Warn().Err(err).Str("post_id", post.ID).Str("image", url).
				Msg("vision analysis failed, treating as no-match")
			continue
		}
		if !v.LogoMatch {
			continue
		}
		matched = true
		if v.Confidence > best {
			best = v.Confidence
		}
		notes = append(notes, v.Explanations...)
	}

	if !matched || best < s.Brand.Image.LogoThreshold {
		log.Debug().Str("post_id", post.ID).Float64("best", best).
			Msg("image post below logo threshold")
		return pipedom.Detection{}, false
	}
	return pipedom.Detection{
		Post:       post,
		Reason:     pipedom.ReasonImageOnly,
		Confidence: best,
		ImageNotes: notes,
	}, true
}

// marker reads the image watermark, falling back to the window start
func (s *Service) marker(ctx context.Context, run *pipedom.Context) (string, error) {
	v, ok, err := s.Marks.Get(ctx, wmdom.KeyImages)
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}
	return query.WatermarkString(run.WindowStart), nil
}

// advanceWatermark moves the image watermark to the most recent accepted
// post, skipping when the run produced nothing
func (s *Service) advanceWatermark(ctx context.Context, results []pipedom.Detection) error {
	var latest time.Time
	for _, d := range results {
		latest = ptime.Latest(latest, d.Post.CreatedAt)
	}
	if latest.IsZero() {
		return nil
	}
	return s.Marks.Set(ctx, wmdom.KeyImages, query.WatermarkString(latest))
}
