package domain

import "errors"

var (
	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")

	// Statement errors
	ErrOperationNotPermitted  = errors.New("cannot transfer to the same account")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrStatementNotFound      = errors.New("statement not found")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidOperationType   = errors.New("invalid operation type")
	ErrMissingCounterparty    = errors.New("transfer entry requires a counterparty")
	ErrUnexpectedCounterparty = errors.New("non-transfer entry cannot have a counterparty")
)
