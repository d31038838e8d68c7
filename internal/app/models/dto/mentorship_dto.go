package dto

import "github.com/karthikdm21/Saathi-Voice/internal/app/models"

// CreateMentorshipRequest represents the body of POST /api/mentorships
type CreateMentorshipRequest struct {
	StudentID string                  `json:"studentId" binding:"required"`
	MentorID  string                  `json:"mentorId" binding:"required"`
	Status    models.MentorshipStatus `json:"status" binding:"omitempty,oneof=active completed paused"`
}

// ToModel converts the request into an unsaved mentorship; status defaults to active
func (r CreateMentorshipRequest) ToModel() models.Mentorship {
	status := r.Status
	if status == "" {
		status = models.MentorshipActive
	}
	return models.Mentorship{
		StudentID: r.StudentID,
		MentorID:  r.MentorID,
		Status:    status,
	}
}
