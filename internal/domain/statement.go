
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType classifies a statement entry.
type OperationType string

const (
	// OperationDeposit credits the owner's account with external funds.
	OperationDeposit OperationType = "deposit"

	// OperationWithdraw debits the owner's account.
	OperationWithdraw OperationType = "withdraw"

	// OperationTransferDebit is the sender side of a transfer pair.
	OperationTransferDebit OperationType = "transfer_debit"

	// OperationTransferCredit is the receiver side of a transfer pair.
	OperationTransferCredit OperationType = "transfer_credit"
)

var validOperationTypes = map[OperationType]bool{
	OperationDeposit:        true,
	OperationWithdraw:       true,
	OperationTransferDebit:  true,
	OperationTransferCredit: true,
}

// IsValid checks if the operation type is known.
func (t OperationType) IsValid() bool {
	return validOperationTypes[t]
}

// IsCredit reports whether entries of this type increase the owner's balance.
func (t OperationType) IsCredit() bool {
	return t == OperationDeposit || t == OperationTransferCredit
}

// IsTransfer reports whether entries of this type belong to a transfer pair.
func (t OperationType) IsTransfer() bool {
	return t == OperationTransferDebit || t == OperationTransferCredit
}

// StatementEntry is one recorded monetary movement. Entries are append-only:
// they are created once and never updated or deleted.
type StatementEntry struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CounterpartyID *string
	ID             string
	OwnerID        string
	Description    string
	Type           OperationType
	Amount         decimal.Decimal
}

// SignedAmount returns the entry amount with the sign it contributes to the
// owner's balance: positive for deposits and transfer credits, negative for
// withdrawals and transfer debits.
func (e *StatementEntry) SignedAmount() decimal.Decimal {
	if e.Type.IsCredit() {
		return e.Amount
	}

	return e.Amount.Neg()
}

// Validate validates a statement entry before it is appended.
func (e *StatementEntry) Validate() error {
	if !e.Type.IsValid() {
		return ErrInvalidOperationType
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if e.Type.IsTransfer() && e.CounterpartyID == nil {
		return ErrMissingCounterparty
	}

	if !e.Type.IsTransfer() && e.CounterpartyID != nil {
		return ErrUnexpectedCounterparty
	}

	return nil
}

// ComputeBalance folds statement entries into the owner's derived balance.
// The balance is never stored; it is always recomputed from the entries.
func ComputeBalance(entries []*StatementEntry) decimal.Decimal {
	balance := decimal.Zero
	for _, e := range entries {
		balance = balance.Add(e.SignedAmount())
	}

	return balance
}
