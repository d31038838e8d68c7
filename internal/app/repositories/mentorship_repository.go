package repositories

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// IMentorshipRepository defines the interface for mentorship storage operations
type IMentorshipRepository interface {
	Create(ctx context.Context, mentorship *models.Mentorship) error
	GetByID(ctx context.Context, id string) (*models.Mentorship, error)
	GetWithDetails(ctx context.Context, id string) (*models.MentorshipWithDetails, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.MentorshipWithDetails, error)
	ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipWithDetails, error)
}

// MentorshipRepository stores mentorships in the shared Store
type MentorshipRepository struct {
	store *Store
}

// NewMentorshipRepository creates a new MentorshipRepository
func NewMentorshipRepository(store *Store) *MentorshipRepository {
	return &MentorshipRepository{store: store}
}

// Create assigns id and createdAt, defaults the status to active and stores a copy.
// Student and mentor ids are not checked.
func (r *MentorshipRepository) Create(ctx context.Context, mentorship *models.Mentorship) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := r.store.assignID(mentorship.ID)
	if r.store.mentorships.has(id) {
		return fmt.Errorf("mentorship %s: %w", id, apperrors.ErrResourceAlreadyExists)
	}
	mentorship.ID = id
	if mentorship.Status == "" {
		mentorship.Status = models.MentorshipActive
	}
	mentorship.CreatedAt = r.store.stamp()
	r.store.mentorships.insert(id, *mentorship)
	return nil
}

// GetByID retrieves a mentorship by id
func (r *MentorshipRepository) GetByID(ctx context.Context, id string) (*models.Mentorship, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ms, ok := r.store.mentorships.get(id)
	if !ok {
		return nil, apperrors.ErrMentorshipNotFound
	}
	return &ms, nil
}

// GetWithDetails joins a mentorship with both profiles; any missing link fails the whole join
func (r *MentorshipRepository) GetWithDetails(ctx context.Context, id string) (*models.MentorshipWithDetails, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ms, ok := r.store.mentorships.get(id)
	if !ok {
		return nil, apperrors.ErrMentorshipNotFound
	}
	joined, ok := r.store.mentorshipWithDetails(ms)
	if !ok {
		return nil, fmt.Errorf("mentorship %s details: %w", id, apperrors.ErrResourceNotFound)
	}
	return &joined, nil
}

// ListByStudent returns the student's mentorships in creation order, skipping broken joins
func (r *MentorshipRepository) ListByStudent(ctx context.Context, studentID string) ([]models.MentorshipWithDetails, error) {
	return r.list(func(ms models.Mentorship) bool { return ms.StudentID == studentID }), nil
}

// ListByMentor returns the mentor's mentorships in creation order, skipping broken joins
func (r *MentorshipRepository) ListByMentor(ctx context.Context, mentorID string) ([]models.MentorshipWithDetails, error) {
	return r.list(func(ms models.Mentorship) bool { return ms.MentorID == mentorID }), nil
}

func (r *MentorshipRepository) list(keep func(models.Mentorship) bool) []models.MentorshipWithDetails {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := []models.MentorshipWithDetails{}
	r.store.mentorships.each(func(ms models.Mentorship) bool {
		if !keep(ms) {
			return true
		}
		if joined, ok := r.store.mentorshipWithDetails(ms); ok {
			results = append(results, joined)
		}
		return true
	})
	return results
}
