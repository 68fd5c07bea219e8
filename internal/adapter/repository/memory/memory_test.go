package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/adapter/repository/memory"
	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.n++

	return fmt.Sprintf("entry-%04d", g.n)
}

type fixture struct {
	users      *memory.UserRepository
	statements *memory.StatementRepository
	engine     *usecase.StatementUseCase
	balances   *usecase.BalanceUseCase
}

func newFixture(t *testing.T, userIDs ...string) *fixture {
	t.Helper()

	users := memory.NewUserRepository()
	statements := memory.NewStatementRepository()
	txManager := memory.NewTxManager()

	for _, id := range userIDs {
		err := users.Create(context.Background(), &domain.User{
			ID:        id,
			Name:      "user " + id,
			Email:     id + "@example.com",
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("seed user %s: %v", id, err)
		}
	}

	return &fixture{
		users:      users,
		statements: statements,
		engine:     usecase.NewStatementUseCase(txManager, users, statements, &seqIDGenerator{}, nil, nil, nil),
		balances:   usecase.NewBalanceUseCase(users, statements, nil, nil),
	}
}

func (f *fixture) balance(t *testing.T, ownerID string) *usecase.BalanceStatement {
	t.Helper()

	bs, err := f.balances.GetBalance(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("GetBalance(%s): %v", ownerID, err)
	}

	return bs
}

func TestDepositIsReflectedInBalance(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	entry, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
		ActorID:     "alice",
		Amount:      decimal.NewFromInt(12),
		Description: "salary",
	})
	if err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	if entry.Type != domain.OperationDeposit {
		t.Errorf("entry type = %s, want %s", entry.Type, domain.OperationDeposit)
	}

	bs := f.balance(t, "alice")
	if !bs.Balance.Equal(decimal.NewFromInt(12)) {
		t.Errorf("balance = %s, want 12", bs.Balance)
	}

	if len(bs.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(bs.Entries))
	}
}

func TestWithdrawToZeroThenOverdraw(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	if _, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
		ActorID: "alice", Amount: decimal.NewFromInt(12),
	}); err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	if _, err := f.engine.CreateWithdraw(ctx, usecase.CreateWithdrawInput{
		ActorID: "alice", Amount: decimal.NewFromInt(12),
	}); err != nil {
		t.Fatalf("CreateWithdraw: %v", err)
	}

	bs := f.balance(t, "alice")
	if !bs.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0", bs.Balance)
	}

	_, err := f.engine.CreateWithdraw(ctx, usecase.CreateWithdrawInput{
		ActorID: "alice", Amount: decimal.NewFromInt(1),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("overdraw error = %v, want ErrInsufficientFunds", err)
	}
}

func TestTransferMovesFullBalance(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	if _, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
		ActorID: "alice", Amount: decimal.NewFromInt(12),
	}); err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	credit, err := f.engine.CreateTransfer(ctx, usecase.CreateTransferInput{
		ActorID:    "alice",
		ReceiverID: "bob",
		Amount:     decimal.NewFromInt(12),
	})
	if err != nil {
		t.Fatalf("CreateTransfer: %v", err)
	}

	if credit.OwnerID != "bob" || credit.Type != domain.OperationTransferCredit {
		t.Errorf("returned entry owner=%s type=%s, want bob/%s",
			credit.OwnerID, credit.Type, domain.OperationTransferCredit)
	}

	if got := f.balance(t, "alice").Balance; !got.IsZero() {
		t.Errorf("sender balance = %s, want 0", got)
	}

	receiver := f.balance(t, "bob")
	if !receiver.Balance.Equal(decimal.NewFromInt(12)) {
		t.Errorf("receiver balance = %s, want 12", receiver.Balance)
	}

	if len(receiver.Entries) != 1 {
		t.Errorf("receiver entries = %d, want 1", len(receiver.Entries))
	}
}

func TestRejectedTransferLeavesBalancesUntouched(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	if _, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
		ActorID: "alice", Amount: decimal.NewFromInt(12),
	}); err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	_, err := f.engine.CreateTransfer(ctx, usecase.CreateTransferInput{
		ActorID:    "alice",
		ReceiverID: "bob",
		Amount:     decimal.NewFromInt(15),
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("transfer error = %v, want ErrInsufficientFunds", err)
	}

	if got := f.balance(t, "alice").Balance; !got.Equal(decimal.NewFromInt(12)) {
		t.Errorf("sender balance = %s, want 12", got)
	}

	receiver := f.balance(t, "bob")
	if !receiver.Balance.IsZero() || len(receiver.Entries) != 0 {
		t.Errorf("receiver balance = %s entries = %d, want 0/0", receiver.Balance, len(receiver.Entries))
	}
}

func TestEntryLookupIsScopedToOwner(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	entry, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
		ActorID: "alice", Amount: decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	if _, err := f.balances.GetStatementOperation(ctx, "alice", entry.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}

	_, err = f.balances.GetStatementOperation(ctx, "bob", entry.ID)
	if !errors.Is(err, domain.ErrStatementNotFound) {
		t.Fatalf("cross-owner lookup error = %v, want ErrStatementNotFound", err)
	}
}

// TestConcurrentWithdrawalsNeverOverdraw hammers a single account with
// concurrent withdrawals that together exceed the balance and checks the
// store never goes negative.
func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	if _, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
		ActorID: "alice", Amount: decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("CreateDeposit: %v", err)
	}

	const workers = 25

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.engine.CreateWithdraw(ctx, usecase.CreateWithdrawInput{
				ActorID: "alice", Amount: decimal.NewFromInt(1),
			})

			switch {
			case err == nil:
				mu.Lock()
				succeeded++
				mu.Unlock()
			case errors.Is(err, domain.ErrInsufficientFunds):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	if succeeded != 10 {
		t.Errorf("successful withdrawals = %d, want 10", succeeded)
	}

	if got := f.balance(t, "alice").Balance; !got.IsZero() {
		t.Errorf("final balance = %s, want 0", got)
	}
}

// TestConcurrentTransfersConserveTotal runs transfers in both directions
// between two accounts and checks the combined balance is unchanged.
func TestConcurrentTransfersConserveTotal(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	for _, id := range []string{"alice", "bob"} {
		if _, err := f.engine.CreateDeposit(ctx, usecase.CreateDepositInput{
			ActorID: id, Amount: decimal.NewFromInt(50),
		}); err != nil {
			t.Fatalf("CreateDeposit(%s): %v", id, err)
		}
	}

	var wg sync.WaitGroup

	for i := range 20 {
		actor, receiver := "alice", "bob"
		if i%2 == 1 {
			actor, receiver = "bob", "alice"
		}

		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.engine.CreateTransfer(ctx, usecase.CreateTransferInput{
				ActorID:    actor,
				ReceiverID: receiver,
				Amount:     decimal.NewFromInt(3),
			})
			if err != nil && !errors.Is(err, domain.ErrInsufficientFunds) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	total := f.balance(t, "alice").Balance.Add(f.balance(t, "bob").Balance)
	if !total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("combined balance = %s, want 100", total)
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.User{ID: "u-1", Email: "a@example.com"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("GetByID(missing) = %v, want ErrUserNotFound", err)
	}

	user, err := repo.GetByEmail(ctx, "nobody@example.com")
	if err != nil || user != nil {
		t.Errorf("GetByEmail(unknown) = %v, %v, want nil, nil", user, err)
	}

	users, err := repo.GetByIDsForUpdate(ctx, nil, []string{"u-1", "missing"})
	if err != nil {
		t.Fatalf("GetByIDsForUpdate: %v", err)
	}

	if len(users) != 1 || users[0].ID != "u-1" {
		t.Errorf("GetByIDsForUpdate returned %d users, want just u-1", len(users))
	}
}
