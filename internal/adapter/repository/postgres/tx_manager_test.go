package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/gostatement/internal/usecase"
)

func newMockTxManager(t *testing.T) (*TxManager, pgxmock.PgxPoolIface) {
	t.Helper()

	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return newTxManagerWithPool(pool), pool
}

func TestTxManagerCommit(t *testing.T) {
	manager, pool := newMockTxManager(t)
	pool.ExpectBegin()
	pool.ExpectCommit()

	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	// The statement use case works against this interface, never pgx directly.
	var _ usecase.Transaction = tx

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestTxManagerRollback(t *testing.T) {
	manager, pool := newMockTxManager(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestTxManagerBeginError(t *testing.T) {
	manager, pool := newMockTxManager(t)
	beginErr := errors.New("begin failed")
	pool.ExpectBegin().WillReturnError(beginErr)

	if _, err := manager.Begin(context.Background()); !errors.Is(err, beginErr) {
		t.Fatalf("expected begin error, got %v", err)
	}
}

func TestTxExposesUnderlyingPgxTx(t *testing.T) {
	manager, pool := newMockTxManager(t)
	pool.ExpectBegin()
	pool.ExpectRollback()

	tx, err := manager.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	defer tx.Rollback(context.Background())

	pgTx, ok := tx.(*Tx)
	if !ok {
		t.Fatalf("expected *Tx, got %T", tx)
	}
	if pgTx.PgxTx() == nil {
		t.Fatalf("expected underlying pgx.Tx")
	}
}
