package domain

import "context"

// Page is one page of search results with an opaque continuation cursor
// An empty NextCursor means the result set is exhausted
type Page struct {
	Posts      []Post
	NextCursor string
}

// SearchPort is the transport capability the pipelines consume
// Implementations surface transport failures as errors; retry policy for
// transient failures lives behind this port, not in the pipelines
type SearchPort interface {
	// Search runs an advanced search query, optionally continuing from cursor
	Search(ctx context.Context, query, cursor string) (Page, error)

	// Mentions pages through mentions of handle (without the @ sigil)
	// sinceTime is a unix-seconds lower bound, 0 means unbounded
	Mentions(ctx context.Context, handle string, sinceTime int64, cursor string) (Page, error)
}

// RunnerPort is one detection pipeline run against a shared context
type RunnerPort interface {
	Run(ctx context.Context, run *Context) ([]Detection, error)
}

// Ports are the dependencies injected into the pipeline module
type Ports struct {
	Explicit RunnerPort // required
	Images   RunnerPort // optional, nil disables the image pipeline
}
