package repositories

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/search"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// IMentorRepository defines the interface for mentor storage operations
type IMentorRepository interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	GetByUserID(ctx context.Context, userID string) (*models.Mentor, error)
	GetWithUser(ctx context.Context, id string) (*models.MentorWithUser, error)
	Update(ctx context.Context, id string, apply func(*models.Mentor)) (*models.Mentor, error)
	Search(ctx context.Context, criteria search.Criteria) ([]models.MentorWithUser, error)
}

// MentorRepository stores mentor profiles in the shared Store
type MentorRepository struct {
	store *Store
}

// NewMentorRepository creates a new MentorRepository
func NewMentorRepository(store *Store) *MentorRepository {
	return &MentorRepository{store: store}
}

// Create assigns an id and stores a copy. The owning user is not checked.
func (r *MentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := r.store.assignID(mentor.ID)
	if r.store.mentors.has(id) {
		return fmt.Errorf("mentor %s: %w", id, apperrors.ErrResourceAlreadyExists)
	}
	mentor.ID = id
	r.store.mentors.insert(id, mentor.Clone())
	return nil
}

// GetByID retrieves a mentor by id
func (r *MentorRepository) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.mentors.get(id)
	if !ok {
		return nil, apperrors.ErrMentorNotFound
	}
	m = m.Clone()
	return &m, nil
}

// GetByUserID returns the first mentor created for the user
func (r *MentorRepository) GetByUserID(ctx context.Context, userID string) (*models.Mentor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var found *models.Mentor
	r.store.mentors.each(func(m models.Mentor) bool {
		if m.UserID == userID {
			c := m.Clone()
			found = &c
			return false
		}
		return true
	})
	if found == nil {
		return nil, apperrors.ErrMentorNotFound
	}
	return found, nil
}

// GetWithUser returns the mentor joined with its user; a missing user fails the join
func (r *MentorRepository) GetWithUser(ctx context.Context, id string) (*models.MentorWithUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.mentors.get(id)
	if !ok {
		return nil, apperrors.ErrMentorNotFound
	}
	joined, ok := r.store.mentorWithUser(m)
	if !ok {
		return nil, fmt.Errorf("mentor %s owner: %w", id, apperrors.ErrUserNotFound)
	}
	return &joined, nil
}

// Update applies a partial change to the stored mentor. id and userId never change.
func (r *MentorRepository) Update(ctx context.Context, id string, apply func(*models.Mentor)) (*models.Mentor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	m, ok := r.store.mentors.get(id)
	if !ok {
		return nil, apperrors.ErrMentorNotFound
	}
	updated := m.Clone()
	apply(&updated)
	updated.ID = m.ID
	updated.UserID = m.UserID
	r.store.mentors.insert(id, updated.Clone())
	return &updated, nil
}

// Search scans every mentor in creation order and keeps those matching all active filters.
// Mentors whose user record is missing are skipped.
func (r *MentorRepository) Search(ctx context.Context, criteria search.Criteria) ([]models.MentorWithUser, error) {
	criteria = criteria.Normalize()

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := []models.MentorWithUser{}
	r.store.mentors.each(func(m models.Mentor) bool {
		if err := ctx.Err(); err != nil {
			return false
		}
		u, ok := r.store.users.get(m.UserID)
		if !ok {
			return true
		}
		if criteria.Matches(m, u) {
			results = append(results, models.NewMentorWithUser(m.Clone(), u.Clone()))
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
