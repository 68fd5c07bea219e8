package usecase

import (
	"context"
	"time"

	"github.com/iho/gostatement/internal/domain"
)

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByIDsForUpdate locks the user rows for the duration of the
	// transaction. This is the per-account serialization point for
	// statement writes.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.User, error)
}

// StatementRepository defines data access for statement entries. Entries are
// append-only: there are no update or delete operations.
type StatementRepository interface {
	Append(ctx context.Context, tx Transaction, entry *domain.StatementEntry) error
	// AppendPair writes both sides of a transfer inside the given
	// transaction. Either both entries persist or neither does.
	AppendPair(ctx context.Context, tx Transaction, debit, credit *domain.StatementEntry) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.StatementEntry, error)
	// ListByOwnerTx reads the owner's entries inside the given transaction,
	// after the owner's row lock has been taken.
	ListByOwnerTx(ctx context.Context, tx Transaction, ownerID string) ([]*domain.StatementEntry, error)
	GetByOwnerAndID(ctx context.Context, ownerID, id string) (*domain.StatementEntry, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
