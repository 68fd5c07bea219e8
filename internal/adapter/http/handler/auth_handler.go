package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/gostatement/internal/adapter/http/dto"
	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/infrastructure/auth"
	"github.com/iho/gostatement/internal/usecase"
)

// Authenticator defines the behavior needed by AuthHandler.
type Authenticator interface {
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

// AuthHandler handles session creation.
type AuthHandler struct {
	userUC     Authenticator
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userUC Authenticator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
	}
}

// Login verifies credentials and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}
