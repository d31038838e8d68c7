package repositories

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// IStudentRepository defines the interface for student storage operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)
	GetWithUser(ctx context.Context, id string) (*models.StudentWithUser, error)
	Update(ctx context.Context, id string, apply func(*models.Student)) (*models.Student, error)
}

// StudentRepository stores student profiles in the shared Store
type StudentRepository struct {
	store *Store
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// Create assigns an id and stores a copy. The owning user is not checked.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := r.store.assignID(student.ID)
	if r.store.students.has(id) {
		return fmt.Errorf("student %s: %w", id, apperrors.ErrResourceAlreadyExists)
	}
	student.ID = id
	if student.PreferredLanguages == nil {
		student.PreferredLanguages = []string{}
	}
	r.store.students.insert(id, student.Clone())
	return nil
}

// GetByID retrieves a student by id
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st, ok := r.store.students.get(id)
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	st = st.Clone()
	return &st, nil
}

// GetByUserID returns the first student created for the user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var found *models.Student
	r.store.students.each(func(st models.Student) bool {
		if st.UserID == userID {
			c := st.Clone()
			found = &c
			return false
		}
		return true
	})
	if found == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return found, nil
}

// GetWithUser returns the student joined with its user; a missing user fails the join
func (r *StudentRepository) GetWithUser(ctx context.Context, id string) (*models.StudentWithUser, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	st, ok := r.store.students.get(id)
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	joined, ok := r.store.studentWithUser(st)
	if !ok {
		return nil, fmt.Errorf("student %s owner: %w", id, apperrors.ErrUserNotFound)
	}
	return &joined, nil
}

// Update applies a partial change to the stored student. id and userId never change.
func (r *StudentRepository) Update(ctx context.Context, id string, apply func(*models.Student)) (*models.Student, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	st, ok := r.store.students.get(id)
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	updated := st.Clone()
	apply(&updated)
	updated.ID = st.ID
	updated.UserID = st.UserID
	if updated.PreferredLanguages == nil {
		updated.PreferredLanguages = []string{}
	}
	r.store.students.insert(id, updated.Clone())
	return &updated, nil
}
