package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/usecase"
)

// CreateUserRequest represents a request to register a user.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// CreateSessionRequest represents a login request.
type CreateSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateOperationRequest represents a deposit or withdrawal request. The
// actor is taken from the session token, never from the body.
type CreateOperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToDepositInput converts to use case input for the given actor.
func (r *CreateOperationRequest) ToDepositInput(actorID string) usecase.CreateDepositInput {
	return usecase.CreateDepositInput{
		ActorID:     actorID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// ToWithdrawInput converts to use case input for the given actor.
func (r *CreateOperationRequest) ToWithdrawInput(actorID string) usecase.CreateWithdrawInput {
	return usecase.CreateWithdrawInput{
		ActorID:     actorID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// ToTransferInput converts to use case input for the given actor and
// receiver. The receiver comes from the URL path.
func (r *CreateOperationRequest) ToTransferInput(actorID, receiverID string) usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		ActorID:     actorID,
		ReceiverID:  receiverID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}
