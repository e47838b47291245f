package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"brandwatch/internal/core/score"
	"brandwatch/internal/platform/store"
	"brandwatch/internal/services/hits/domain"
)

type fakeCH struct {
	table   string
	columns []string
	rows    [][]any
	err     error
	calls   int
}

func (f *fakeCH) InsertRows(_ context.Context, table string, columns []string, rows [][]any) error {
	f.calls++
	f.table, f.columns, f.rows = table, columns, rows
	return f.err
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, errors.New("not used")
}

func (f *fakeCH) Close() error { return nil }

func TestWriteBatch_RowShape(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	ch := &fakeCH{}
	h := domain.Hit{
		RunID:           "run_1",
		CapturedAt:      now,
		PostID:          "p1",
		PostURL:         "https://x.test/p1",
		AuthorID:        "a1",
		AuthorHandle:    "fan",
		AuthorName:      "A Fan",
		AuthorFollowers: 42,
		Text:            "acmeco mug",
		Language:        "en",
		MediaURLs:       []string{"img-1"},
		Reason:          "explicit_text",
		Terms:           []string{"acmeco"},
		Confidence:      0.95,
		Decision:        score.DecisionNotify,
	}

	if err := NewCH(ch).WriteBatch(context.Background(), []domain.Hit{h}); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}
	if ch.table != Table {
		t.Fatalf("table mismatch: %q", ch.table)
	}
	if len(ch.columns) != len(Columns) {
		t.Fatalf("column count mismatch: %d", len(ch.columns))
	}
	if len(ch.rows) != 1 || len(ch.rows[0]) != len(Columns) {
		t.Fatalf("row shape mismatch: %d rows", len(ch.rows))
	}
	row := ch.rows[0]
	if row[0] != "run_1" || row[2] != "p1" || row[15] != "notify" {
		t.Fatalf("row values mismatch: %#v", row)
	}
	// nil slices become empty slices so Array columns accept them
	if notes, ok := row[13].([]string); !ok || notes == nil {
		t.Fatalf("nil image notes should become empty slice: %#v", row[13])
	}
}

func TestWriteBatch_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	if err := NewCH(ch).WriteBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch must be a no-op: %v", err)
	}
	if ch.calls != 0 {
		t.Fatalf("insert should not have been called")
	}
}

func TestWriteBatch_ErrorWrapped(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{err: errors.New("refused")}
	err := NewCH(ch).WriteBatch(context.Background(), []domain.Hit{{PostID: "p1"}})
	if err == nil {
		t.Fatalf("expected insert error to surface")
	}
}
