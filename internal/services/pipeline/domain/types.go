// Package domain defines the canonical post model and the shared run
// context both detection pipelines operate on
package domain

import (
	"sync"
	"time"
)

// MediaType classifies an attached media item
type MediaType string

// MediaType values
const (
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
	MediaGIF   MediaType = "animated_gif"
)

// Media is one attached media item
type Media struct {
	Type MediaType
	URL  string
}

// Author is the post author
type Author struct {
	ID        string
	Handle    string
	Name      string
	Followers int
}

// Post is the canonical, read-only post shape
// Adapters normalize raw payloads into this single form before the
// pipelines ever see them; in particular Media is the union of every
// attachment location the source populates, in encounter order
type Post struct {
	ID        string
	URL       string
	Text      string
	CreatedAt time.Time // UTC
	Author    Author
	Language  string // empty when the source omits it
	Media     []Media
}

// PhotoURLs returns the URLs of photo attachments in order
func (p Post) PhotoURLs() []string {
	var out []string
	for _, m := range p.Media {
		if m.Type == MediaPhoto {
			out = append(out, m.URL)
		}
	}
	return out
}

// MediaURLs returns every attachment URL in encounter order, no dedup
func (p Post) MediaURLs() []string {
	out := make([]string, 0, len(p.Media))
	for _, m := range p.Media {
		out = append(out, m.URL)
	}
	return out
}

// Reason tags which pipeline produced a detection
type Reason string

// Reason values
const (
	ReasonExplicitText Reason = "explicit_text"
	ReasonImageOnly    Reason = "image_only"
)

// Detection is the transient per-run output of a pipeline
type Detection struct {
	Post       Post
	Reason     Reason
	Confidence float64
	Terms      []string
	ImageNotes []string
}

// Context is the per-run shared state: the run identity, the window
// lower bound, and the seen-set both pipelines insert into
type Context struct {
	RunID       string
	WindowStart time.Time

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewContext builds a run context with an empty seen-set
func NewContext(runID string, windowStart time.Time) *Context {
	return &Context{
		RunID:       runID,
		WindowStart: windowStart,
		seen:        make(map[string]struct{}),
	}
}

// TryAdd records id and reports whether it was newly added
// This is the one atomic primitive both pipelines use, so a post can
// never be processed twice even when the pipelines interleave
func (c *Context) TryAdd(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[id]; ok {
		return false
	}
	c.seen[id] = struct{}{}
	return true
}

// Seen reports whether id has been recorded
func (c *Context) Seen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[id]
	return ok
}
