package domain

import "context"

// WriterPort archives hits
type WriterPort interface {
	WriteBatch(ctx context.Context, xs []Hit) error
}
