package repokit

import (
	"context"
	"errors"
	"testing"
)

type fakeTx struct {
	nopQueryer
	calls int
	err   error
}

func (f *fakeTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(f)
}

func TestWithTx_RunsFn(t *testing.T) {
	t.Parallel()

	tx := &fakeTx{}
	ran := false
	err := WithTx(context.Background(), tx, func(q Queryer) error {
		ran = true
		if q == nil {
			t.Fatalf("nil queryer inside tx")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithTx err: %v", err)
	}
	if !ran || tx.calls != 1 {
		t.Fatalf("tx not executed: ran=%v calls=%d", ran, tx.calls)
	}
}

func TestWithTx_PropagatesError(t *testing.T) {
	t.Parallel()

	tx := &fakeTx{err: errors.New("begin failed")}
	err := WithTx(context.Background(), tx, func(Queryer) error { return nil })
	if err == nil || err.Error() != "begin failed" {
		t.Fatalf("expected begin error, got %v", err)
	}
}
