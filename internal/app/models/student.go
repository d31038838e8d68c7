package models

// Student is the learner profile attached to a user
type Student struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"userId"`
	Age                *int     `json:"age,omitempty"`
	StudyField         string   `json:"studyField,omitempty"`
	Goals              string   `json:"goals,omitempty"`
	VoiceIntroURL      string   `json:"voiceIntroUrl,omitempty"`
	Transcription      string   `json:"transcription,omitempty"`
	PreferredLanguages []string `json:"preferredLanguages"`
}

// Clone returns a deep copy
func (s Student) Clone() Student {
	s.Age = cloneInt(s.Age)
	s.PreferredLanguages = cloneStrings(s.PreferredLanguages)
	return s
}

// StudentWithUser joins a student with its owning user
type StudentWithUser struct {
	Student
	User User `json:"user"`
}
