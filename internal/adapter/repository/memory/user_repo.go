package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

// UserRepository is an in-memory implementation of usecase.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

// NewUserRepository creates an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

// Create stores a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	r.byID[u.ID] = &u
	r.byEmail[u.Email] = &u

	return nil
}

// GetByID returns the user with the given ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	u := *user

	return &u, nil
}

// GetByEmail returns the user with the given email, or nil if no such user
// exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}

	u := *user

	return &u, nil
}

// GetByIDsForUpdate returns the users with the given IDs, sorted by ID.
// Missing IDs are simply absent from the result. Row locking is unnecessary
// here: the store-wide transaction mutex already serializes writers.
func (r *UserRepository) GetByIDsForUpdate(
	ctx context.Context, tx usecase.Transaction, ids []string,
) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(ids))

	for _, id := range ids {
		if user, ok := r.byID[id]; ok {
			u := *user
			users = append(users, &u)
		}
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}
