package models

import "time"

// VoiceMessage is one recorded clip inside a mentorship thread
type VoiceMessage struct {
	ID            string    `json:"id"`
	MentorshipID  string    `json:"mentorshipId"`
	SenderID      string    `json:"senderId"`
	AudioURL      string    `json:"audioUrl"`
	Transcription string    `json:"transcription,omitempty"`
	Duration      *int      `json:"duration,omitempty"` // seconds
	IsRead        bool      `json:"isRead"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Clone returns a deep copy
func (v VoiceMessage) Clone() VoiceMessage {
	v.Duration = cloneInt(v.Duration)
	return v
}

// VoiceMessageWithSender joins a voice message with the user who sent it
type VoiceMessageWithSender struct {
	VoiceMessage
	Sender User `json:"sender"`
}
