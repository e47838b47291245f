// Package service implements the explicit-text detection pipeline
package service

import (
	"context"
	"strconv"
	"time"

	"brandwatch/internal/brand"
	"brandwatch/internal/core/normalize"
	"brandwatch/internal/core/query"
	"brandwatch/internal/core/score"
	"brandwatch/internal/platform/logger"
	ptime "brandwatch/internal/platform/time"
	pipedom "brandwatch/internal/services/pipeline/domain"
	wmdom "brandwatch/internal/services/watermark/domain"
)

// Config bounds pagination per logical query
type Config struct {
	MentionPages int // default 10
	KeywordPages int // default 20
}

// Service implements pipedom.RunnerPort for explicit textual matches
type Service struct {
	Search pipedom.SearchPort
	Marks  wmdom.StorePort
	Brand  *brand.Config
	Cfg    Config
}

var _ pipedom.RunnerPort = (*Service)(nil)

// New constructs the explicit pipeline
func New(search pipedom.SearchPort, marks wmdom.StorePort, bc *brand.Config, cfg Config) *Service {
	if cfg.MentionPages <= 0 {
		cfg.MentionPages = 10
	}
	if cfg.KeywordPages <= 0 {
		cfg.KeywordPages = 20
	}
	return &Service{Search: search, Marks: marks, Brand: bc, Cfg: cfg}
}

// Run collects handle mentions then keyword matches, filters them
// through the shared seen-set and window, and advances both explicit
// watermarks to the most recent post produced
// Page-fetch failures stop only their own pagination loop; state store
// failures propagate and abort the run
func (s *Service) Run(ctx context.Context, run *pipedom.Context) ([]pipedom.Detection, error) {
	log := logger.C(ctx).With().Str("pipeline", "explicit").Logger()

	out := make([]pipedom.Detection, 0, 32)

	mentions, err := s.runMentions(ctx, run, &log)
	if err != nil {
		return nil, err
	}
	out = append(out, mentions...)

	keywords, err := s.runKeywords(ctx, run, &log)
	if err != nil {
		return nil, err
	}
	out = append(out, keywords...)

	if err := s.advanceWatermarks(ctx, out); err != nil {
		return nil, err
	}

	log.Info().
		Int("mentions", len(mentions)).
		Int("keywords", len(keywords)).
		Msg("explicit pipeline done")
	return out, nil
}

// runMentions pages through mentions of every configured handle
func (s *Service) runMentions(
	ctx context.Context, run *pipedom.Context, log *logger.Logger,
) ([]pipedom.Detection, error) {
	since, err := s.mentionsSince(ctx, run)
	if err != nil {
		return nil, err
	}

	var out []pipedom.Detection
	for _, handle := range s.Brand.Brand.Handles {
		term := "@" + handle
		cursor := ""
		for page := 0; page < s.Cfg.MentionPages; page++ {
			pg, err := s.Search.Mentions(ctx, handle, since, cursor)
			if err != nil {
				// one handle failing must not starve the others
				log.Warn().Err(err).Str("handle", handle).Int("page", page).
					Msg("mentions page fetch failed")
				break
			}
			for _, post := range pg.Posts {
				if run.Seen(post.ID) {
					continue
				}
				if !query.WithinWindow(post.CreatedAt, run.WindowStart) {
					continue
				}
				if !run.TryAdd(post.ID) {
					continue
				}
				out = append(out, pipedom.Detection{
					Post:       post,
					Reason:     pipedom.ReasonExplicitText,
					Terms:      []string{term},
					Confidence: score.Text([]string{term}, post.Text),
				})
			}
			cursor = pg.NextCursor
			if cursor == "" {
				break
			}
		}
	}
	return out, nil
}

// runKeywords runs one combined query over all configured keywords
func (s *Service) runKeywords(
	ctx context.Context, run *pipedom.Context, log *logger.Logger,
) ([]pipedom.Detection, error) {
	if len(s.Brand.Brand.Keywords) == 0 {
		return nil, nil
	}

	marker, err := s.keywordsMarker(ctx, run)
	if err != nil {
		return nil, err
	}
	q := query.Explicit(s.Brand.Brand.Keywords, s.Brand.Language, marker)

	var out []pipedom.Detection
	cursor := ""
	for page := 0; page < s.Cfg.KeywordPages; page++ {
		pg, err := s.Search.Search(ctx, q, cursor)
		if err != nil {
			log.Warn().Err(err).Int("page", page).Msg("keyword page fetch failed")
			break
		}
		for _, post := range pg.Posts {
			if run.Seen(post.ID) {
				continue
			}
			if !query.WithinWindow(post.CreatedAt, run.WindowStart) {
				continue
			}
			if s.excludedByNegativeKeyword(post.Text) {
				continue
			}
			if !run.TryAdd(post.ID) {
				continue
			}
			terms := s.matchedKeywords(post.Text)
			out = append(out, pipedom.Detection{
				Post:       post,
				Reason:     pipedom.ReasonExplicitText,
				Terms:      terms,
				Confidence: score.Text(terms, post.Text),
			})
		}
		cursor = pg.NextCursor
		if cursor == "" {
			break
		}
	}
	return out, nil
}

// mentionsSince reads the epoch-seconds mentions watermark, falling back
// to the window start
func (s *Service) mentionsSince(ctx context.Context, run *pipedom.Context) (int64, error) {
	v, ok, err := s.Marks.Get(ctx, wmdom.KeyExplicitMentions)
	if err != nil {
		return 0, err
	}
	if ok {
		if secs, perr := strconv.ParseInt(v, 10, 64); perr == nil {
			return secs, nil
		}
		// unreadable watermark falls back rather than failing the run
	}
	return run.WindowStart.Unix(), nil
}

// keywordsMarker reads the formatted keyword watermark, falling back to
// the window start
func (s *Service) keywordsMarker(ctx context.Context, run *pipedom.Context) (string, error) {
	v, ok, err := s.Marks.Get(ctx, wmdom.KeyExplicitKeywords)
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}
	return query.WatermarkString(run.WindowStart), nil
}

func (s *Service) excludedByNegativeKeyword(text string) bool {
	for _, nk := range s.Brand.Brand.NegativeKeywords {
		if normalize.ContainsFold(text, nk) {
			return true
		}
	}
	return false
}

// matchedKeywords returns the configured keywords present in text as a
// folded substring, in configuration order
func (s *Service) matchedKeywords(text string) []string {
	var out []string
	for _, kw := range s.Brand.Brand.Keywords {
		if normalize.ContainsFold(text, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// advanceWatermarks moves both explicit watermarks to the most recent
// post produced this run, skipping entirely when the run was empty so a
// dry spell never rewinds or pins the marks
func (s *Service) advanceWatermarks(ctx context.Context, results []pipedom.Detection) error {
	latest := latestCreated(results)
	if latest.IsZero() {
		return nil
	}
	return s.Marks.SetMulti(ctx, map[string]string{
		wmdom.KeyExplicitMentions: strconv.FormatInt(latest.Unix(), 10),
		wmdom.KeyExplicitKeywords: query.WatermarkString(latest),
	})
}

func latestCreated(results []pipedom.Detection) time.Time {
	var latest time.Time
	for _, d := range results {
		latest = ptime.Latest(latest, d.Post.CreatedAt)
	}
	return latest
}
