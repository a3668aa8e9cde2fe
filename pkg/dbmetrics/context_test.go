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
	db := &fakeDB{}

	t.Run("без транзакции возвращается db", func(t *testing.T) {
		ctx := context.Background()
		assert.False(t, IsInTransaction(ctx))
		assert.Same(t, db, GetExecutor(ctx, db))
	})

	t.Run("транзакция из контекста имеет приоритет", func(t *testing.T) {
		tx := &fakeTx{}
		ctx := WithTx(context.Background(), tx)
		assert.True(t, IsInTransaction(ctx))
		assert.Same(t, tx, GetExecutor(ctx, db))
	})
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM lessons"))
	assert.Equal(t, "insert", operation("\n  INSERT INTO lessons"))
	assert.Equal(t, "unknown", operation("   "))
}
