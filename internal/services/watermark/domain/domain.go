// Package domain defines the watermark persistence contract
// Watermarks remember the latest-seen timestamp per query channel so
// repeated runs fetch incrementally instead of re-reading history
package domain

import "context"

// Well-known watermark keys, one per query channel
const (
	KeyExplicitMentions = "sinceTime_explicit_mentions" // unix epoch seconds
	KeyExplicitKeywords = "sinceISO_explicit_keywords"  // formatted UTC string
	KeyImages           = "sinceISO_images"             // formatted UTC string
)

// StorePort is the key/value persistence capability
// Get of a never-set key reports ok=false, never an error
type StorePort interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	GetMulti(ctx context.Context, keys []string) (map[string]string, error)
	SetMulti(ctx context.Context, values map[string]string) error
}
