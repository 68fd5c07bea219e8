
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/infrastructure/metrics"
)

// StatementUseCase orchestrates the validator and the statement store to
// execute deposits, withdrawals and transfers as single logical units.
type StatementUseCase struct {
	txManager     TransactionManager
	statementRepo StatementRepository
	validator     *OperationValidator
	idGen         IDGenerator
	retrier       Retrier
	cache         Cache
	metrics       *metrics.Metrics
}

// NewStatementUseCase creates a new StatementUseCase. The retrier, cache and
// metrics are optional; pass nil to disable transaction retries, balance
// caching and instrumentation.
func NewStatementUseCase(
	txManager TransactionManager,
	userRepo UserRepository,
	statementRepo StatementRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
	m *metrics.Metrics,
) *StatementUseCase {
	return &StatementUseCase{
		txManager:     txManager,
		statementRepo: statementRepo,
		validator:     NewOperationValidator(userRepo, statementRepo),
		idGen:         idGen,
		retrier:       retrier,
		cache:         cache,
		metrics:       m,
	}
}

// CreateDepositInput represents input for creating a deposit.
type CreateDepositInput struct {
	ActorID     string
	Description string
	Amount      decimal.Decimal
}

// CreateDeposit records a deposit on the actor's account.
func (uc *StatementUseCase) CreateDeposit(ctx context.Context, input CreateDepositInput) (*domain.StatementEntry, error) {
	return uc.execute(ctx, OperationRequest{
		ActorID:     input.ActorID,
		Kind:        OperationKindDeposit,
		Amount:      input.Amount,
		Description: input.Description,
	})
}

// CreateWithdrawInput represents input for creating a withdrawal.
type CreateWithdrawInput struct {
	ActorID     string
	Description string
	Amount      decimal.Decimal
}

// CreateWithdraw records a withdrawal on the actor's account.
func (uc *StatementUseCase) CreateWithdraw(ctx context.Context, input CreateWithdrawInput) (*domain.StatementEntry, error) {
	return uc.execute(ctx, OperationRequest{
		ActorID:     input.ActorID,
		Kind:        OperationKindWithdraw,
		Amount:      input.Amount,
		Description: input.Description,
	})
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	ActorID     string
	ReceiverID  string
	Description string
	Amount      decimal.Decimal
}

// CreateTransfer moves amount from the actor to the receiver, writing a
// debit entry and a credit entry atomically.
//
// It returns the credit-side entry, the one owned by the receiver. This
// mirrors the behavior callers have depended on since the first release:
// the second-created entry of the pair is what the API returns. Use
// CounterpartyID on the returned entry to reach the debit side.
func (uc *StatementUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.StatementEntry, error) {
	return uc.execute(ctx, OperationRequest{
		ActorID:     input.ActorID,
		ReceiverID:  input.ReceiverID,
		Kind:        OperationKindTransfer,
		Amount:      input.Amount,
		Description: input.Description,
	})
}

func (uc *StatementUseCase) execute(ctx context.Context, req OperationRequest) (*domain.StatementEntry, error) {
	start := time.Now()

	var created *domain.StatementEntry

	operation := func() error {
		entry, err := uc.executeOnce(ctx, req)
		if err != nil {
			return err
		}

		created = entry

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, operation)
	} else {
		err = operation()
	}

	if err != nil {
		if uc.metrics != nil {
			uc.metrics.StatementErrors.WithLabelValues(string(req.Kind), errorReason(err)).Inc()
		}

		return nil, err
	}

	if uc.metrics != nil {
		kind := string(req.Kind)
		uc.metrics.StatementsCreated.WithLabelValues(kind).Inc()
		uc.metrics.OperationAmount.WithLabelValues(kind).Observe(req.Amount.InexactFloat64())
		uc.metrics.OperationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}

	uc.invalidateBalances(ctx, req)

	return created, nil
}

// errorReason collapses operation failures into a bounded label set.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrOperationNotPermitted):
		return "not_permitted"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAmountTooLarge):
		return "invalid_amount"
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return "invalid_description"
	default:
		return "internal"
	}
}

func (uc *StatementUseCase) executeOnce(ctx context.Context, req OperationRequest) (*domain.StatementEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, OperationTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.validator.Validate(ctx, tx, req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var created *domain.StatementEntry

	switch req.Kind {
	case OperationKindDeposit, OperationKindWithdraw:
		opType := domain.OperationDeposit
		if req.Kind == OperationKindWithdraw {
			opType = domain.OperationWithdraw
		}

		entry := uc.newEntry(req.ActorID, opType, req, nil, now)
		if err := entry.Validate(); err != nil {
			return nil, err
		}

		if err := uc.statementRepo.Append(ctx, tx, entry); err != nil {
			return nil, err
		}

		created = entry

	case OperationKindTransfer:
		debit := uc.newEntry(req.ActorID, domain.OperationTransferDebit, req, &req.ReceiverID, now)
		credit := uc.newEntry(req.ReceiverID, domain.OperationTransferCredit, req, &req.ActorID, now)

		if err := debit.Validate(); err != nil {
			return nil, err
		}

		if err := credit.Validate(); err != nil {
			return nil, err
		}

		if err := uc.statementRepo.AppendPair(ctx, tx, debit, credit); err != nil {
			return nil, err
		}

		created = credit

	default:
		return nil, domain.ErrInvalidOperationType
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

func (uc *StatementUseCase) newEntry(ownerID string, opType domain.OperationType, req OperationRequest, counterparty *string, now time.Time) *domain.StatementEntry {
	return &domain.StatementEntry{
		ID:             uc.idGen.Generate(),
		OwnerID:        ownerID,
		Type:           opType,
		Amount:         req.Amount,
		Description:    req.Description,
		CounterpartyID: counterparty,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// invalidateBalances drops cached balances for every owner touched by the
// request. Best effort: a failed delete only means a stale read until the
// cache TTL expires.
func (uc *StatementUseCase) invalidateBalances(ctx context.Context, req OperationRequest) {
	if uc.cache == nil {
		return
	}

	uc.cache.Delete(ctx, balanceCacheKey(req.ActorID))

	if req.Kind == OperationKindTransfer {
		uc.cache.Delete(ctx, balanceCacheKey(req.ReceiverID))
	}
}
