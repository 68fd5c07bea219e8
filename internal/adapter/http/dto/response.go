package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// SessionResponse represents a successful login.
type SessionResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// StatementEntryResponse represents a statement entry in API responses.
type StatementEntryResponse struct {
	ID             string          `json:"id"`
	CounterpartyID *string         `json:"counterparty_id,omitempty"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response. The owner is implied
// by the authenticated session and omitted from the payload.
func EntryFromDomain(e *domain.StatementEntry) *StatementEntryResponse {
	return &StatementEntryResponse{
		ID:             e.ID,
		CounterpartyID: e.CounterpartyID,
		Type:           string(e.Type),
		Amount:         e.Amount,
		Description:    e.Description,
		CreatedAt:      e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.StatementEntry) []*StatementEntryResponse {
	result := make([]*StatementEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// BalanceResponse represents the account statement with its derived balance.
type BalanceResponse struct {
	Statement []*StatementEntryResponse `json:"statement"`
	Balance   decimal.Decimal           `json:"balance"`
}

// BalanceFromUseCase converts a balance statement to a response.
func BalanceFromUseCase(bs *usecase.BalanceStatement) *BalanceResponse {
	return &BalanceResponse{
		Statement: EntriesFromDomain(bs.Entries),
		Balance:   bs.Balance,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
