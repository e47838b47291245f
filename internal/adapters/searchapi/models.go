package searchapi

import (
	"time"

	pipedom "brandwatch/internal/services/pipeline/domain"
)

// rawPage is the wire shape shared by both endpoints
type rawPage struct {
	Tweets      []rawTweet `json:"tweets"`
	HasNextPage bool       `json:"has_next_page"`
	NextCursor  string     `json:"next_cursor"`
}

// rawTweet carries only the fields the pipelines consume
// Media shows up in two places depending on the tweet; both are read
type rawTweet struct {
	ID        string      `json:"id"`
	URL       string      `json:"url"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"createdAt"`
	Lang      string      `json:"lang"`
	Author    rawAuthor   `json:"author"`
	Entities  rawEntities `json:"entities"`
	Media     []rawMedia  `json:"media"`
}

type rawEntities struct {
	Media []rawMedia `json:"media"`
}

type rawAuthor struct {
	ID        string `json:"id"`
	UserName  string `json:"userName"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
}

type rawMedia struct {
	Type          string `json:"type"`
	MediaURLHTTPS string `json:"media_url_https"`
	URL           string `json:"url"`
}

func (m rawMedia) bestURL() string {
	if m.MediaURLHTTPS != "" {
		return m.MediaURLHTTPS
	}
	return m.URL
}

// createdAt layouts the upstream emits; ISO-8601 and the legacy ruby
// style date are both seen in the wild
var createdAtLayouts = []string{
	time.RFC3339,
	"Mon Jan 02 15:04:05 -0700 2006",
}

func parseCreatedAt(s string) time.Time {
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// toPost normalizes one raw tweet into the canonical post shape
// Media is the union of entities.media and the top-level media list in
// encounter order, deduped by URL
func (t rawTweet) toPost() pipedom.Post {
	seen := make(map[string]struct{})
	var media []pipedom.Media
	add := func(m rawMedia) {
		u := m.bestURL()
		if u == "" {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		media = append(media, pipedom.Media{Type: pipedom.MediaType(m.Type), URL: u})
	}
	for _, m := range t.Entities.Media {
		add(m)
	}
	for _, m := range t.Media {
		add(m)
	}

	return pipedom.Post{
		ID:        t.ID,
		URL:       t.URL,
		Text:      t.Text,
		CreatedAt: parseCreatedAt(t.CreatedAt),
		Author: pipedom.Author{
			ID:        t.Author.ID,
			Handle:    t.Author.UserName,
			Name:      t.Author.Name,
			Followers: t.Author.Followers,
		},
		Language: t.Lang,
		Media:    media,
	}
}
