package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func (fakeDB) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func TestGetExecutor(t *testing.T) {
	db := fakeDB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, db, GetExecutor(ctx, db))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *recorder
	assert.NotPanics(t, func() {
		done := r.start("query")
		done(sql.ErrConnDone)
	})
}
