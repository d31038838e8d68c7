package services

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/repositories"
	"github.com/karthikdm21/Saathi-Voice/internal/app/search"
	"github.com/rs/zerolog"
)

// MentorService defines the interface for mentor profile operations
type MentorService interface {
	CreateMentor(ctx context.Context, req *dto.CreateMentorRequest) (*models.Mentor, error)
	GetMentorByID(ctx context.Context, id string) (*models.MentorWithUser, error)
	GetMentorByUserID(ctx context.Context, userID string) (*models.Mentor, error)
	UpdateMentor(ctx context.Context, id string, req *dto.UpdateMentorRequest) (*models.Mentor, error)
	SearchMentors(ctx context.Context, criteria search.Criteria) ([]models.MentorWithUser, error)
}

type mentorServiceImpl struct {
	mentorRepo repositories.IMentorRepository
	logger     zerolog.Logger
}

// NewMentorService creates a new MentorService
func NewMentorService(mentorRepo repositories.IMentorRepository, logger zerolog.Logger) MentorService {
	return &mentorServiceImpl{
		mentorRepo: mentorRepo,
		logger:     logger,
	}
}

// CreateMentor stores a mentor profile with rating 50 and no reviews unless given
func (s *mentorServiceImpl) CreateMentor(ctx context.Context, req *dto.CreateMentorRequest) (*models.Mentor, error) {
	mentor := req.ToModel()
	if err := s.mentorRepo.Create(ctx, &mentor); err != nil {
		return nil, fmt.Errorf("error creating mentor: %w", err)
	}
	s.logger.Info().
		Str("mentorID", mentor.ID).
		Str("userID", mentor.UserID).
		Str("field", mentor.FieldOfExpertise).
		Msg("Mentor profile created")
	return &mentor, nil
}

func (s *mentorServiceImpl) GetMentorByID(ctx context.Context, id string) (*models.MentorWithUser, error) {
	mentor, err := s.mentorRepo.GetWithUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding mentor: %w", err)
	}
	return mentor, nil
}

func (s *mentorServiceImpl) GetMentorByUserID(ctx context.Context, userID string) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding mentor for user: %w", err)
	}
	return mentor, nil
}

func (s *mentorServiceImpl) UpdateMentor(ctx context.Context, id string, req *dto.UpdateMentorRequest) (*models.Mentor, error) {
	mentor, err := s.mentorRepo.Update(ctx, id, req.Apply)
	if err != nil {
		return nil, fmt.Errorf("error updating mentor: %w", err)
	}
	s.logger.Info().Str("mentorID", id).Msg("Mentor profile updated")
	return mentor, nil
}

// SearchMentors returns every mentor matching all active filters, in creation order
func (s *mentorServiceImpl) SearchMentors(ctx context.Context, criteria search.Criteria) ([]models.MentorWithUser, error) {
	mentors, err := s.mentorRepo.Search(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("error searching mentors: %w", err)
	}
	s.logger.Debug().
		Str("field", criteria.FieldOfExpertise).
		Strs("languages", criteria.Languages).
		Int("results", len(mentors)).
		Msg("Mentor search")
	return mentors, nil
}
