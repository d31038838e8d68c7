package services

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/repositories"
	"github.com/rs/zerolog"
)

// MentorshipService defines the interface for mentorship operations
type MentorshipService interface {
	CreateMentorship(ctx context.Context, req *dto.CreateMentorshipRequest) (*models.Mentorship, error)
	GetMentorship(ctx context.Context, id string) (*models.MentorshipWithDetails, error)
	GetMentorshipsByStudent(ctx context.Context, studentID string) ([]models.MentorshipWithDetails, error)
	GetMentorshipsByMentor(ctx context.Context, mentorID string) ([]models.MentorshipWithDetails, error)
}

type mentorshipServiceImpl struct {
	mentorshipRepo repositories.IMentorshipRepository
	logger         zerolog.Logger
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(mentorshipRepo repositories.IMentorshipRepository, logger zerolog.Logger) MentorshipService {
	return &mentorshipServiceImpl{
		mentorshipRepo: mentorshipRepo,
		logger:         logger,
	}
}

// CreateMentorship pairs a student with a mentor. Neither id is verified.
func (s *mentorshipServiceImpl) CreateMentorship(ctx context.Context, req *dto.CreateMentorshipRequest) (*models.Mentorship, error) {
	mentorship := req.ToModel()
	if err := s.mentorshipRepo.Create(ctx, &mentorship); err != nil {
		return nil, fmt.Errorf("error creating mentorship: %w", err)
	}
	s.logger.Info().
		Str("mentorshipID", mentorship.ID).
		Str("studentID", mentorship.StudentID).
		Str("mentorID", mentorship.MentorID).
		Msg("Mentorship created")
	return &mentorship, nil
}

func (s *mentorshipServiceImpl) GetMentorship(ctx context.Context, id string) (*models.MentorshipWithDetails, error) {
	mentorship, err := s.mentorshipRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding mentorship: %w", err)
	}
	return mentorship, nil
}

func (s *mentorshipServiceImpl) GetMentorshipsByStudent(ctx context.Context, studentID string) ([]models.MentorshipWithDetails, error) {
	mentorships, err := s.mentorshipRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing student mentorships: %w", err)
	}
	return mentorships, nil
}

func (s *mentorshipServiceImpl) GetMentorshipsByMentor(ctx context.Context, mentorID string) ([]models.MentorshipWithDetails, error) {
	mentorships, err := s.mentorshipRepo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("error listing mentor mentorships: %w", err)
	}
	return mentorships, nil
}
