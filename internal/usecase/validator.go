
package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
)

// OperationKind classifies a requested operation before it is admitted.
type OperationKind string

const (
	OperationKindDeposit  OperationKind = "deposit"
	OperationKindWithdraw OperationKind = "withdraw"
	OperationKindTransfer OperationKind = "transfer"
)

// OperationRequest describes a requested statement operation.
type OperationRequest struct {
	ActorID     string
	ReceiverID  string
	Description string
	Kind        OperationKind
	Amount      decimal.Decimal
}

// InvolvedUserIDs returns the sorted, deduplicated set of user IDs touched by
// the request. Locking in sorted order prevents deadlocks between concurrent
// transfers in opposite directions.
func (r OperationRequest) InvolvedUserIDs() []string {
	ids := []string{r.ActorID}
	if r.Kind == OperationKindTransfer && r.ReceiverID != r.ActorID {
		ids = append(ids, r.ReceiverID)
	}

	sort.Strings(ids)

	return ids
}

// OperationValidator enforces the admissibility rules for statement
// operations. It performs reads only; the row locks it takes are what make
// the subsequent write safe against concurrent overdraws.
type OperationValidator struct {
	userRepo      UserRepository
	statementRepo StatementRepository
}

// NewOperationValidator creates a new OperationValidator.
func NewOperationValidator(userRepo UserRepository, statementRepo StatementRepository) *OperationValidator {
	return &OperationValidator{
		userRepo:      userRepo,
		statementRepo: statementRepo,
	}
}

// Validate checks the request against the current store state inside tx.
// Rules are evaluated in a fixed order and the first failing rule wins:
//
//  1. the actor must exist
//  2. for transfers, the receiver must exist
//  3. transfers must not target the acting account
//  4. withdrawals and transfers require balance >= amount
//  5. the amount must be positive and within the allowed maximum
//  6. the description must fit the storage limit
func (v *OperationValidator) Validate(ctx context.Context, tx Transaction, req OperationRequest) error {
	ids := req.InvolvedUserIDs()

	users, err := v.userRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return err
	}

	if len(users) != len(ids) {
		return domain.ErrUserNotFound
	}

	if req.Kind == OperationKindTransfer && req.ReceiverID == req.ActorID {
		return domain.ErrOperationNotPermitted
	}

	if req.Kind == OperationKindWithdraw || req.Kind == OperationKindTransfer {
		entries, err := v.statementRepo.ListByOwnerTx(ctx, tx, req.ActorID)
		if err != nil {
			return err
		}

		if domain.ComputeBalance(entries).LessThan(req.Amount) {
			return domain.ErrInsufficientFunds
		}
	}

	if err := domain.ValidateAmount(req.Amount); err != nil {
		return err
	}

	return domain.ValidateDescription(req.Description)
}
