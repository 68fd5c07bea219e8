// Package memory provides in-memory implementations of the statement core's
// storage capabilities. They satisfy the same contracts as the PostgreSQL
// repositories and back the property tests and local development.
package memory

import (
	"context"
	"sync"

	"github.com/iho/gostatement/internal/usecase"
)

// TxManager implements usecase.TransactionManager with a single mutex: the
// whole store is one serialization point, which trivially satisfies the
// read-validate-write atomicity the write path requires.
type TxManager struct {
	mu sync.Mutex
}

// NewTxManager creates a new TxManager.
func NewTxManager() *TxManager {
	return &TxManager{}
}

// Begin acquires the store lock. The lock is held until Commit or Rollback.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	m.mu.Lock()

	return &Tx{mgr: m}, nil
}

// Tx is an in-memory transaction. It only tracks lock ownership; writes
// performed through the repositories are applied directly.
type Tx struct {
	mgr  *TxManager
	once sync.Once
}

// Commit releases the store lock.
func (t *Tx) Commit(ctx context.Context) error {
	t.once.Do(t.mgr.mu.Unlock)

	return nil
}

// Rollback releases the store lock. Rollback after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.once.Do(t.mgr.mu.Unlock)

	return nil
}
