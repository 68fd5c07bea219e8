package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/gostatement/internal/adapter/http/handler"
	apimiddleware "github.com/iho/gostatement/internal/adapter/http/middleware"
	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/infrastructure/auth"
	"github.com/iho/gostatement/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"name":"Alice","email":"alice@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if !store.checkCalled {
		t.Fatalf("expected idempotency store to be used")
	}
}

func TestNewRouter_StatementRoutesRequireSession(t *testing.T) {
	router := NewRouter(newRouterConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/statements/balance", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/users",
		"POST /api/v1/sessions",
		"GET /api/v1/profile",
		"POST /api/v1/statements/deposit",
		"POST /api/v1/statements/withdraw",
		"POST /api/v1/statements/transfers/{receiver_id}",
		"GET /api/v1/statements/balance",
		"GET /api/v1/statements/{statement_id}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	jwtManager := auth.NewJWTManager("router-test-secret", time.Minute)

	cfg := RouterConfig{
		UserHandler:      handler.NewUserHandler(&stubUserService{}),
		AuthHandler:      handler.NewAuthHandler(&stubUserService{}, jwtManager),
		StatementHandler: handler.NewStatementHandler(&stubStatementService{}, &stubBalanceService{}),
		HealthHandler:    &handler.HealthHandler{},
		JWTManager:       jwtManager,
		Logger:           zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubUserService struct{}

func (stubUserService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Name: input.Name, Email: input.Email}, nil
}

func (stubUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (stubUserService) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: input.Email}, nil
}

type stubStatementService struct{}

func (stubStatementService) CreateDeposit(ctx context.Context, input usecase.CreateDepositInput) (*domain.StatementEntry, error) {
	return &domain.StatementEntry{ID: "entry-1", Type: domain.OperationDeposit}, nil
}

func (stubStatementService) CreateWithdraw(ctx context.Context, input usecase.CreateWithdrawInput) (*domain.StatementEntry, error) {
	return &domain.StatementEntry{ID: "entry-2", Type: domain.OperationWithdraw}, nil
}

func (stubStatementService) CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*domain.StatementEntry, error) {
	return &domain.StatementEntry{ID: "entry-3", Type: domain.OperationTransferCredit}, nil
}

type stubBalanceService struct{}

func (stubBalanceService) GetBalance(ctx context.Context, ownerID string) (*usecase.BalanceStatement, error) {
	return &usecase.BalanceStatement{}, nil
}

func (stubBalanceService) GetStatementOperation(ctx context.Context, ownerID, entryID string) (*domain.StatementEntry, error) {
	return &domain.StatementEntry{ID: entryID}, nil
}

type stubIdempotencyStore struct {
	checkCalled bool
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalled = true
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}
