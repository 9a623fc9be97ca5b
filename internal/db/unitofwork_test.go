package db_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alexanderramin/capstonehub/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func readValue(uow *db.SQLiteUnitOfWork, key string) (string, bool) {
	var val string
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT value FROM kv_entries WHERE key = ?`, key)
		if err := row.Scan(&val); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return val, found
}

func insertKV(ctx context.Context, tx db.DBTX, key, value string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO kv_entries (key, value, updated_at) VALUES (?, ?, 'now')`, key, value)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertKV(ctx, tx, "departments", `["Sales"]`); err != nil {
			return err
		}
		return insertKV(ctx, tx, "automation", `["High"]`)
	})
	require.NoError(t, err)

	val, found := readValue(uow, "departments")
	assert.True(t, found)
	assert.Equal(t, `["Sales"]`, val)
	_, found = readValue(uow, "automation")
	assert.True(t, found)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := newUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertKV(ctx, tx, "departments", `["Sales"]`); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	_, found := readValue(uow, "departments")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := newUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertKV(ctx, tx, "theme", "dark")
			panic("boom")
		})
	})

	_, found := readValue(uow, "theme")
	assert.False(t, found, "row should not exist after panic rollback")
}

func TestWithinTx_CancelledContext(t *testing.T) {
	uow := newUoW(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := uow.WithinTx(ctx, func(context.Context, db.DBTX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestWithinTx_SerializesReadModifyWrite(t *testing.T) {
	uow := newUoW(t)
	ctx := context.Background()
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertKV(ctx, tx, "counter", "0")
	}))

	const workers = 8
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				var n int
				if err := tx.QueryRowContext(ctx, `SELECT CAST(value AS INTEGER) FROM kv_entries WHERE key = 'counter'`).Scan(&n); err != nil {
					return err
				}
				_, err := tx.ExecContext(ctx, `UPDATE kv_entries SET value = ? WHERE key = 'counter'`, fmt.Sprint(n+1))
				return err
			})
		}()
	}
	wg.Wait()

	val, found := readValue(uow, "counter")
	require.True(t, found)
	assert.Equal(t, fmt.Sprint(workers), val)
}
