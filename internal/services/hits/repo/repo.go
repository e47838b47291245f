// Package repo provides the hit archive repository
package repo

import (
	"context"

	"brandwatch/internal/modkit/repokit"
	perr "brandwatch/internal/platform/errors"
	"brandwatch/internal/services/hits/domain"
)

// Table is the append-only archive table
const Table = "brand_hits"

// Columns in insert order; row values must match
var Columns = []string{
	"run_id",
	"captured_at",
	"post_id",
	"post_url",
	"author_id",
	"author_handle",
	"author_name",
	"author_followers",
	"text",
	"language",
	"media_urls",
	"reason",
	"terms",
	"image_notes",
	"confidence",
	"decision",
	"notified_at",
	"notify_errors",
}

// CH archives hits into clickhouse
type CH struct {
	conn repokit.Clickhouse
}

// NewCH constructs the clickhouse-backed hit writer
func NewCH(conn repokit.Clickhouse) *CH { return &CH{conn: conn} }

var _ domain.WriterPort = (*CH)(nil)

// WriteBatch implements domain.WriterPort
func (r *CH) WriteBatch(ctx context.Context, xs []domain.Hit) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, h := range xs {
		rows = append(rows, []any{
			h.RunID,
			h.CapturedAt,
			h.PostID,
			h.PostURL,
			h.AuthorID,
			h.AuthorHandle,
			h.AuthorName,
			int32(h.AuthorFollowers),
			h.Text,
			h.Language,
			emptyNotNil(h.MediaURLs),
			h.Reason,
			emptyNotNil(h.Terms),
			emptyNotNil(h.ImageNotes),
			h.Confidence,
			string(h.Decision),
			h.NotifiedAt,
			emptyNotNil(h.NotifyErrors),
		})
	}
	if err := r.conn.InsertRows(ctx, Table, Columns, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "archive hits")
	}
	return nil
}

// emptyNotNil keeps Array(String) columns happy; the native client
// rejects nil slices
func emptyNotNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
