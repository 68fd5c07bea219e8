package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc            func(ctx context.Context, user *domain.User) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockUserRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.User, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []*domain.User
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

// MockStatementRepository is a mock implementation of StatementRepository.
type MockStatementRepository struct {
	mu      sync.RWMutex
	entries []*domain.StatementEntry

	AppendFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.StatementEntry) error
	AppendPairFunc      func(ctx context.Context, tx usecase.Transaction, debit, credit *domain.StatementEntry) error
	ListByOwnerFunc     func(ctx context.Context, ownerID string) ([]*domain.StatementEntry, error)
	ListByOwnerTxFunc   func(ctx context.Context, tx usecase.Transaction, ownerID string) ([]*domain.StatementEntry, error)
	GetByOwnerAndIDFunc func(ctx context.Context, ownerID, id string) (*domain.StatementEntry, error)
}

func NewMockStatementRepository() *MockStatementRepository {
	return &MockStatementRepository{}
}

func (m *MockStatementRepository) Append(ctx context.Context, tx usecase.Transaction, entry *domain.StatementEntry) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *entry
	m.entries = append(m.entries, &copied)
	return nil
}

func (m *MockStatementRepository) AppendPair(ctx context.Context, tx usecase.Transaction, debit, credit *domain.StatementEntry) error {
	if m.AppendPairFunc != nil {
		return m.AppendPairFunc(ctx, tx, debit, credit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copiedDebit := *debit
	copiedCredit := *credit
	m.entries = append(m.entries, &copiedDebit, &copiedCredit)
	return nil
}

func (m *MockStatementRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.StatementEntry, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.StatementEntry{}
	for _, e := range m.entries {
		if e.OwnerID == ownerID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockStatementRepository) ListByOwnerTx(ctx context.Context, tx usecase.Transaction, ownerID string) ([]*domain.StatementEntry, error) {
	if m.ListByOwnerTxFunc != nil {
		return m.ListByOwnerTxFunc(ctx, tx, ownerID)
	}
	return m.ListByOwner(ctx, ownerID)
}

func (m *MockStatementRepository) GetByOwnerAndID(ctx context.Context, ownerID, id string) (*domain.StatementEntry, error) {
	if m.GetByOwnerAndIDFunc != nil {
		return m.GetByOwnerAndIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.ID == id && e.OwnerID == ownerID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, domain.ErrStatementNotFound
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}
