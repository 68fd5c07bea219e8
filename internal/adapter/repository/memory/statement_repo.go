package memory

import (
	"context"
	"sync"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// StatementRepository is an in-memory implementation of
// usecase.StatementRepository. Entries are kept per owner in append order.
type StatementRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]*domain.StatementEntry
}

// NewStatementRepository creates an empty StatementRepository.
func NewStatementRepository() *StatementRepository {
	return &StatementRepository{
		byOwner: make(map[string][]*domain.StatementEntry),
	}
}

// Append stores a single entry.
func (r *StatementRepository) Append(
	ctx context.Context, tx usecase.Transaction, entry *domain.StatementEntry,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(entry)

	return nil
}

// AppendPair stores the two legs of a transfer under one lock acquisition,
// so either both entries become visible or neither does.
func (r *StatementRepository) AppendPair(
	ctx context.Context, tx usecase.Transaction, debit, credit *domain.StatementEntry,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.append(debit)
	r.append(credit)

	return nil
}

func (r *StatementRepository) append(entry *domain.StatementEntry) {
	e := *entry
	r.byOwner[e.OwnerID] = append(r.byOwner[e.OwnerID], &e)
}

// ListByOwner returns all entries for the given owner in append order.
func (r *StatementRepository) ListByOwner(
	ctx context.Context, ownerID string,
) ([]*domain.StatementEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyEntries(ownerID), nil
}

// ListByOwnerTx returns all entries for the given owner. The in-memory store
// has no transaction-local view, so this is equivalent to ListByOwner.
func (r *StatementRepository) ListByOwnerTx(
	ctx context.Context, tx usecase.Transaction, ownerID string,
) ([]*domain.StatementEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.copyEntries(ownerID), nil
}

// GetByOwnerAndID returns the owner's entry with the given ID.
func (r *StatementRepository) GetByOwnerAndID(
	ctx context.Context, ownerID, entryID string,
) (*domain.StatementEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.byOwner[ownerID] {
		if entry.ID == entryID {
			e := *entry

			return &e, nil
		}
	}

	return nil, domain.ErrStatementNotFound
}

func (r *StatementRepository) copyEntries(ownerID string) []*domain.StatementEntry {
	entries := r.byOwner[ownerID]

	out := make([]*domain.StatementEntry, 0, len(entries))

	for _, entry := range entries {
		e := *entry
		out = append(out, &e)
	}

	return out
}
