// Package repo provides the watermark store backends
package repo

import (
	"context"

	"brandwatch/internal/modkit/repokit"
	perr "brandwatch/internal/platform/errors"
	"brandwatch/internal/services/watermark/domain"
)

type (
	// PG is a Postgres binder for domain.StorePort
	// backing table: watermarks(name text primary key, value text, updated_at timestamptz)
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.StorePort = (*queries)(nil)

// NewPG returns a Postgres binder for the watermark store
func NewPG() repokit.Binder[domain.StorePort] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.StorePort { return &queries{q: q} }

func (r *queries) Get(ctx context.Context, key string) (string, bool, error) {
	rows, err := r.q.Query(ctx, `SELECT value FROM watermarks WHERE name = $1`, key)
	if err != nil {
		return "", false, perr.Wrapf(err, perr.ErrorCodeDB, "watermark get %s", key)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", false, perr.Wrapf(err, perr.ErrorCodeDB, "watermark get %s", key)
		}
		return "", false, nil
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", false, perr.Wrapf(err, perr.ErrorCodeDB, "watermark scan %s", key)
	}
	return v, true, nil
}

func (r *queries) Set(ctx context.Context, key, value string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO watermarks (name, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeDB, "watermark set %s", key)
	}
	return nil
}

func (r *queries) GetMulti(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT name, value FROM watermarks WHERE name = ANY($1::text[])`, keys)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "watermark get multi")
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "watermark scan multi")
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "watermark get multi")
	}
	return out, nil
}

func (r *queries) SetMulti(ctx context.Context, values map[string]string) error {
	for k, v := range values {
		if err := r.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}
