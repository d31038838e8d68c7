package repositories

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// IUserRepository defines the interface for user storage operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserRepository stores users in the shared Store
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create assigns the id and createdAt of user and stores a copy
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := r.store.assignID(user.ID)
	if r.store.users.has(id) {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrResourceAlreadyExists)
	}
	user.ID = id
	user.CreatedAt = r.store.stamp()
	if user.Languages == nil {
		user.Languages = []string{}
	}
	r.store.users.insert(id, user.Clone())
	return nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users.get(id)
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	u = u.Clone()
	return &u, nil
}

// GetByEmail returns the first user, in creation order, with exactly the given email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var found *models.User
	r.store.users.each(func(u models.User) bool {
		if email != "" && u.Email == email {
			c := u.Clone()
			found = &c
			return false
		}
		return true
	})
	if found == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return found, nil
}
