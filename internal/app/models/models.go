package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleMentor  RoleType = "mentor"
)

// MentorshipStatus is the lifecycle state of a student/mentor pairing
type MentorshipStatus string

const (
	MentorshipActive    MentorshipStatus = "active"
	MentorshipCompleted MentorshipStatus = "completed"
	MentorshipPaused    MentorshipStatus = "paused"
)

// DefaultMentorRating is the stored rating given to a mentor that did not supply one (5.0 on display).
const DefaultMentorRating = 50

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
