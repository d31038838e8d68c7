package dto

import "github.com/karthikdm21/Saathi-Voice/internal/app/models"

// CreateMentorRequest represents the body of POST /api/mentors
type CreateMentorRequest struct {
	UserID           string `json:"userId" binding:"required"`
	Experience       *int   `json:"experience" binding:"omitempty,min=0,max=80"`
	FieldOfExpertise string `json:"fieldOfExpertise"`
	Bio              string `json:"bio"`
	VoiceIntroURL    string `json:"voiceIntroUrl"`
	Availability     string `json:"availability"`
	Rating           *int   `json:"rating" binding:"omitempty,min=0,max=100"`
	TotalReviews     *int   `json:"totalReviews" binding:"omitempty,min=0"`
}

// ToModel converts the request into an unsaved mentor, applying the rating defaults
func (r CreateMentorRequest) ToModel() models.Mentor {
	m := models.Mentor{
		UserID:           r.UserID,
		Experience:       r.Experience,
		FieldOfExpertise: r.FieldOfExpertise,
		Bio:              r.Bio,
		VoiceIntroURL:    r.VoiceIntroURL,
		Availability:     r.Availability,
		Rating:           models.DefaultMentorRating,
	}
	if r.Rating != nil {
		m.Rating = *r.Rating
	}
	if r.TotalReviews != nil {
		m.TotalReviews = *r.TotalReviews
	}
	return m
}

// UpdateMentorRequest is a partial mentor update; nil fields are left untouched
type UpdateMentorRequest struct {
	Experience       *int    `json:"experience" binding:"omitempty,min=0,max=80"`
	FieldOfExpertise *string `json:"fieldOfExpertise"`
	Bio              *string `json:"bio"`
	VoiceIntroURL    *string `json:"voiceIntroUrl"`
	Availability     *string `json:"availability"`
	Rating           *int    `json:"rating" binding:"omitempty,min=0,max=100"`
	TotalReviews     *int    `json:"totalReviews" binding:"omitempty,min=0"`
}

// Apply merges the set fields into m
func (r UpdateMentorRequest) Apply(m *models.Mentor) {
	if r.Experience != nil {
		years := *r.Experience
		m.Experience = &years
	}
	if r.FieldOfExpertise != nil {
		m.FieldOfExpertise = *r.FieldOfExpertise
	}
	if r.Bio != nil {
		m.Bio = *r.Bio
	}
	if r.VoiceIntroURL != nil {
		m.VoiceIntroURL = *r.VoiceIntroURL
	}
	if r.Availability != nil {
		m.Availability = *r.Availability
	}
	if r.Rating != nil {
		m.Rating = *r.Rating
	}
	if r.TotalReviews != nil {
		m.TotalReviews = *r.TotalReviews
	}
}
