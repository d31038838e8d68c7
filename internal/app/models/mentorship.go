package models

import "time"

// Mentorship pairs one student with one mentor and owns their voice-message thread
type Mentorship struct {
	ID        string           `json:"id"`
	StudentID string           `json:"studentId"`
	MentorID  string           `json:"mentorId"`
	Status    MentorshipStatus `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}

// MentorshipWithDetails joins a mentorship with both profiles and their users
type MentorshipWithDetails struct {
	Mentorship
	Student StudentWithUser `json:"student"`
	Mentor  MentorWithUser  `json:"mentor"`
}
