package models

import "fmt"

// maxStars is the number of star slots the rating widget renders
const maxStars = 5

// Mentor is the mentor profile attached to a user.
// Rating is stored as an integer 0-100; it is displayed divided by ten.
type Mentor struct {
	ID               string `json:"id"`
	UserID           string `json:"userId"`
	Experience       *int   `json:"experience,omitempty"` // years
	FieldOfExpertise string `json:"fieldOfExpertise,omitempty"`
	Bio              string `json:"bio,omitempty"`
	VoiceIntroURL    string `json:"voiceIntroUrl,omitempty"`
	Availability     string `json:"availability,omitempty"`
	Rating           int    `json:"rating"`
	TotalReviews     int    `json:"totalReviews"`
}

// Clone returns a deep copy
func (m Mentor) Clone() Mentor {
	m.Experience = cloneInt(m.Experience)
	return m
}

// YearsOfExperience treats a missing experience value as zero
func (m Mentor) YearsOfExperience() int {
	if m.Experience == nil {
		return 0
	}
	return *m.Experience
}

// DisplayRating renders the stored rating as rating/10 with one decimal, e.g. 45 -> "4.5".
func (m Mentor) DisplayRating() string {
	return FormatRating(m.Rating)
}

// FormatRating renders a stored 0-100 rating with one decimal place.
func FormatRating(rating int) string {
	return fmt.Sprintf("%.1f", float64(rating)/10)
}

// Stars returns how many full star slots are filled and whether the next slot is a half star.
// It follows the rating widget: rating/10 full stars and a half star when rating%10 >= 5,
// saturating at five slots, so stored ratings above 50 all render as five stars.
func Stars(rating int) (full int, half bool) {
	if rating <= 0 {
		return 0, false
	}
	full = rating / 10
	half = rating%10 >= 5
	if full >= maxStars {
		return maxStars, false
	}
	return full, half
}

// MentorWithUser joins a mentor with its owning user
type MentorWithUser struct {
	Mentor
	User          User   `json:"user"`
	RatingDisplay string `json:"ratingDisplay"`
}

// NewMentorWithUser builds the joined view and fills in the display rating
func NewMentorWithUser(m Mentor, u User) MentorWithUser {
	return MentorWithUser{Mentor: m, User: u, RatingDisplay: m.DisplayRating()}
}
