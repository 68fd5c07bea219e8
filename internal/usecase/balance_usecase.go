
package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/infrastructure/metrics"
)

// BalanceUseCase answers statement lookups: full statement with derived
// balance, and single-entry retrieval.
type BalanceUseCase struct {
	userRepo      UserRepository
	statementRepo StatementRepository
	cache         Cache
	metrics       *metrics.Metrics
}

// NewBalanceUseCase creates a new BalanceUseCase. The cache and metrics are
// optional.
func NewBalanceUseCase(userRepo UserRepository, statementRepo StatementRepository, cache Cache, m *metrics.Metrics) *BalanceUseCase {
	return &BalanceUseCase{
		userRepo:      userRepo,
		statementRepo: statementRepo,
		cache:         cache,
		metrics:       m,
	}
}

// BalanceStatement is an owner's full statement with the derived balance.
type BalanceStatement struct {
	Entries []*domain.StatementEntry `json:"entries"`
	Balance decimal.Decimal          `json:"balance"`
}

func balanceCacheKey(ownerID string) string {
	return "balance:" + ownerID
}

// GetBalance returns all entries owned by ownerID together with the balance
// derived from them.
func (uc *BalanceUseCase) GetBalance(ctx context.Context, ownerID string) (*BalanceStatement, error) {
	if uc.metrics != nil {
		uc.metrics.BalanceReads.Inc()
	}

	if cached := uc.fromCache(ctx, ownerID); cached != nil {
		if uc.metrics != nil {
			uc.metrics.BalanceCacheHits.Inc()
		}

		return cached, nil
	}

	if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	entries, err := uc.statementRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := &BalanceStatement{
		Entries: entries,
		Balance: domain.ComputeBalance(entries),
	}

	uc.toCache(ctx, ownerID, result)

	return result, nil
}

// GetStatementOperation returns a single entry by ID, only if it belongs to
// ownerID. Entries owned by other users are reported as not found rather
// than disclosed.
func (uc *BalanceUseCase) GetStatementOperation(ctx context.Context, ownerID, statementID string) (*domain.StatementEntry, error) {
	if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	return uc.statementRepo.GetByOwnerAndID(ctx, ownerID, statementID)
}

func (uc *BalanceUseCase) fromCache(ctx context.Context, ownerID string) *BalanceStatement {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, balanceCacheKey(ownerID))
	if err != nil {
		return nil
	}

	var result BalanceStatement
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}

	if result.Entries == nil {
		result.Entries = []*domain.StatementEntry{}
	}

	return &result
}

func (uc *BalanceUseCase) toCache(ctx context.Context, ownerID string, result *BalanceStatement) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	uc.cache.Set(ctx, balanceCacheKey(ownerID), data, BalanceCacheTTL)
}
