package dto

import "github.com/karthikdm21/Saathi-Voice/internal/app/models"

// CreateStudentRequest represents the body of POST /api/students
type CreateStudentRequest struct {
	UserID             string   `json:"userId" binding:"required"`
	Age                *int     `json:"age" binding:"omitempty,min=1,max=120"`
	StudyField         string   `json:"studyField"`
	Goals              string   `json:"goals"`
	VoiceIntroURL      string   `json:"voiceIntroUrl"`
	Transcription      string   `json:"transcription"`
	PreferredLanguages []string `json:"preferredLanguages" binding:"omitempty,dive,required"`
}

// ToModel converts the request into an unsaved student
func (r CreateStudentRequest) ToModel() models.Student {
	languages := r.PreferredLanguages
	if languages == nil {
		languages = []string{}
	}
	return models.Student{
		UserID:             r.UserID,
		Age:                r.Age,
		StudyField:         r.StudyField,
		Goals:              r.Goals,
		VoiceIntroURL:      r.VoiceIntroURL,
		Transcription:      r.Transcription,
		PreferredLanguages: languages,
	}
}

// UpdateStudentRequest is a partial student update; nil fields are left untouched.
// The id and userId of a student cannot be changed.
type UpdateStudentRequest struct {
	Age                *int      `json:"age" binding:"omitempty,min=1,max=120"`
	StudyField         *string   `json:"studyField"`
	Goals              *string   `json:"goals"`
	VoiceIntroURL      *string   `json:"voiceIntroUrl"`
	Transcription      *string   `json:"transcription"`
	PreferredLanguages *[]string `json:"preferredLanguages"`
}

// Apply merges the set fields into s
func (r UpdateStudentRequest) Apply(s *models.Student) {
	if r.Age != nil {
		age := *r.Age
		s.Age = &age
	}
	if r.StudyField != nil {
		s.StudyField = *r.StudyField
	}
	if r.Goals != nil {
		s.Goals = *r.Goals
	}
	if r.VoiceIntroURL != nil {
		s.VoiceIntroURL = *r.VoiceIntroURL
	}
	if r.Transcription != nil {
		s.Transcription = *r.Transcription
	}
	if r.PreferredLanguages != nil {
		s.PreferredLanguages = append([]string{}, (*r.PreferredLanguages)...)
	}
}
