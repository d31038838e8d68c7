package services

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/repositories"
	"github.com/rs/zerolog"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.StudentWithUser, error)
	GetStudentByUserID(ctx context.Context, userID string) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error)
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	logger      zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repositories.IStudentRepository, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// CreateStudent stores a student profile. The owning user is not verified.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	student := req.ToModel()
	if err := s.studentRepo.Create(ctx, &student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	s.logger.Info().Str("studentID", student.ID).Str("userID", student.UserID).Msg("Student profile created")
	return &student, nil
}

func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (*models.StudentWithUser, error) {
	student, err := s.studentRepo.GetWithUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding student: %w", err)
	}
	return student, nil
}

func (s *studentServiceImpl) GetStudentByUserID(ctx context.Context, userID string) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding student for user: %w", err)
	}
	return student, nil
}

// UpdateStudent merges the set fields of req into the stored profile
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.Update(ctx, id, req.Apply)
	if err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}
	s.logger.Info().Str("studentID", id).Msg("Student profile updated")
	return student, nil
}
