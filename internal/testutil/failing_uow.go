package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/capstonehub/internal/db"
)

// FailingWriteUoW wraps a real unit of work and returns Err from the write
// that follows the first After writes of each transaction. Reads pass
// through, so a failed option-set save can be checked for rollback.
type FailingWriteUoW struct {
	Inner db.UnitOfWork
	After int
	Err   error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, remaining: u.After, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	remaining int
	err       error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.remaining == 0 {
		return nil, f.err
	}
	f.remaining--
	return f.DBTX.ExecContext(ctx, query, args...)
}
