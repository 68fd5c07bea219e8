package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gostatement/internal/adapter/http/dto"
	"github.com/iho/gostatement/internal/adapter/http/middleware"
	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// StatementService defines the write operations needed by StatementHandler.
type StatementService interface {
	CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.StatementEntry, error)
	CreateWithdraw(ctx context.Context, input usecase.CreateWithdrawInput) (*domain.StatementEntry, error)
	CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*domain.StatementEntry, error)
}

// BalanceService defines the read operations needed by StatementHandler.
type BalanceService interface {
	GetBalance(ctx context.Context, ownerID string) (*usecase.BalanceStatement, error)
	GetStatementOperation(ctx context.Context, ownerID, entryID string) (*domain.StatementEntry, error)
}

// StatementHandler handles statement-related HTTP requests. The actor behind
// every operation is the authenticated session user.
type StatementHandler struct {
	statementUC StatementService
	balanceUC   BalanceService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService, balanceUC BalanceService) *StatementHandler {
	return &StatementHandler{
		statementUC: statementUC,
		balanceUC:   balanceUC,
	}
}

// Deposit records a deposit for the authenticated user.
func (h *StatementHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.statementUC.CreateDeposit(r.Context(), req.ToDepositInput(actor.ID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create deposit", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Withdraw records a withdrawal for the authenticated user.
func (h *StatementHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.statementUC.CreateWithdraw(r.Context(), req.ToWithdrawInput(actor.ID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create withdrawal", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Transfer moves funds from the authenticated user to the receiver named in
// the URL. The response carries the credit-side entry written to the
// receiver's statement.
func (h *StatementHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	receiverID := chi.URLParam(r, "receiver_id")
	if receiverID == "" {
		writeError(w, http.StatusBadRequest, "missing receiver ID", "")
		return
	}

	var req dto.CreateOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.statementUC.CreateTransfer(r.Context(), req.ToTransferInput(actor.ID, receiverID))
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Balance returns the authenticated user's statement and derived balance.
func (h *StatementHandler) Balance(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	balance, err := h.balanceUC.GetBalance(r.Context(), actor.ID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromUseCase(balance))
}

// GetOperation returns a single entry from the authenticated user's
// statement. Entries owned by other users are reported as not found.
func (h *StatementHandler) GetOperation(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entryID := chi.URLParam(r, "statement_id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing statement ID", "")
		return
	}

	entry, err := h.balanceUC.GetStatementOperation(r.Context(), actor.ID, entryID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get statement operation", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}
