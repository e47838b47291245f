// Package domain defines the archived hit record
package domain

import (
	"time"

	"brandwatch/internal/core/score"
)

// Hit is the flattened delivery record one detection becomes
// It is what gets archived and what notification sinks render, so it
// carries everything downstream needs without reaching back into the
// canonical post
type Hit struct {
	RunID      string
	CapturedAt time.Time // UTC, when this run recorded the hit

	PostID  string
	PostURL string

	AuthorID        string
	AuthorHandle    string
	AuthorName      string
	AuthorFollowers int

	Text     string
	Language string // post language, or the configured fallback when absent

	// MediaURLs is every attachment URL in encounter order, no dedup
	MediaURLs []string

	Reason     string
	Terms      []string
	ImageNotes []string
	Confidence float64
	Decision   score.Decision

	NotifiedAt   *time.Time
	NotifyErrors []string
}
