package dto

import "github.com/karthikdm21/Saathi-Voice/internal/app/models"

// CreateVoiceMessageRequest represents the body of POST /api/voice-messages
type CreateVoiceMessageRequest struct {
	MentorshipID  string `json:"mentorshipId" binding:"required"`
	SenderID      string `json:"senderId" binding:"required"`
	AudioURL      string `json:"audioUrl" binding:"required"`
	Transcription string `json:"transcription"`
	Duration      *int   `json:"duration" binding:"omitempty,min=0"`
	IsRead        bool   `json:"isRead"`
}

// ToModel converts the request into an unsaved voice message
func (r CreateVoiceMessageRequest) ToModel() models.VoiceMessage {
	return models.VoiceMessage{
		MentorshipID:  r.MentorshipID,
		SenderID:      r.SenderID,
		AudioURL:      r.AudioURL,
		Transcription: r.Transcription,
		Duration:      r.Duration,
		IsRead:        r.IsRead,
	}
}

// UpdateVoiceMessageRequest is a partial voice message update
type UpdateVoiceMessageRequest struct {
	Transcription *string `json:"transcription"`
	IsRead        *bool   `json:"isRead"`
}

// Apply merges the set fields into v
func (r UpdateVoiceMessageRequest) Apply(v *models.VoiceMessage) {
	if r.Transcription != nil {
		v.Transcription = *r.Transcription
	}
	if r.IsRead != nil {
		v.IsRead = *r.IsRead
	}
}

// TranscribeRequest represents the body of POST /api/voice-messages/transcribe
type TranscribeRequest struct {
	AudioURL string `json:"audioUrl" binding:"required"`
}

// TranscribeResponse carries the text produced for an audio reference
type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}
