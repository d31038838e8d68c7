package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	appModels "github.com/karthikdm21/Saathi-Voice/internal/app/models"
	appRepos "github.com/karthikdm21/Saathi-Voice/internal/app/repositories"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

type sampleMentor struct {
	user    appModels.User
	profile appModels.Mentor
}

func years(v int) *int { return &v }

// sampleMentors are the mentors a fresh process starts with
func sampleMentors() []sampleMentor {
	return []sampleMentor{
		{
			user: appModels.User{
				ID:        "mentor-1",
				Role:      appModels.RoleMentor,
				Name:      "Priya Sharma",
				Email:     "priya@example.com",
				Location:  "Mumbai, Maharashtra",
				Languages: []string{"English", "Hindi", "Marathi"},
			},
			profile: appModels.Mentor{
				ID:               "mentor-profile-1",
				UserID:           "mentor-1",
				Experience:       years(5),
				FieldOfExpertise: "technology",
				Bio:              "Software engineer with 5 years experience in web development. I help students learn programming and prepare for tech careers.",
				VoiceIntroURL:    "/sample-voice.mp3",
				Availability:     "weekends",
				Rating:           45,
				TotalReviews:     12,
			},
		},
		{
			user: appModels.User{
				ID:        "mentor-2",
				Role:      appModels.RoleMentor,
				Name:      "Rajesh Kumar",
				Email:     "rajesh@example.com",
				Location:  "Bangalore, Karnataka",
				Languages: []string{"English", "Hindi", "Tamil"},
			},
			profile: appModels.Mentor{
				ID:               "mentor-profile-2",
				UserID:           "mentor-2",
				Experience:       years(8),
				FieldOfExpertise: "business",
				Bio:              "Business consultant helping rural entrepreneurs start and grow their businesses. Expert in digital marketing.",
				VoiceIntroURL:    "/sample-voice2.mp3",
				Availability:     "evenings",
				Rating:           48,
				TotalReviews:     20,
			},
		},
		{
			user: appModels.User{
				ID:        "mentor-3",
				Role:      appModels.RoleMentor,
				Name:      "Anita Patel",
				Email:     "anita@example.com",
				Location:  "Delhi, India",
				Languages: []string{"English", "Hindi", "Bengali"},
			},
			profile: appModels.Mentor{
				ID:               "mentor-profile-3",
				UserID:           "mentor-3",
				Experience:       years(3),
				FieldOfExpertise: "education",
				Bio:              "Teacher and educational counselor. I help students with career guidance and academic planning.",
				VoiceIntroURL:    "/sample-voice3.mp3",
				Availability:     "flexible",
				Rating:           42,
				TotalReviews:     8,
			},
		},
	}
}

// CreateDefaultData loads the sample mentors. Records that already exist are left alone;
// other failures are collected and returned together.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Creating sample mentors...")
	var finalErr error

	for _, sample := range sampleMentors() {
		user := sample.user
		if err := repos.UserRepository.Create(ctx, &user); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("userID", user.ID).Msg("Error creating sample mentor user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		profile := sample.profile
		if err := repos.MentorRepository.Create(ctx, &profile); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("mentorID", profile.ID).Msg("Error creating sample mentor profile")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("mentors", len(sampleMentors())).Msg("Sample mentors ready")
	return finalErr
}
