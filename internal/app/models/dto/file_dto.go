package dto

// UploadResponse is returned after an audio upload has been stored
type UploadResponse struct {
	AudioURL string `json:"audioUrl" example:"/uploads/audio/voice-1f0e.webm"`
	Filename string `json:"filename" example:"voice-1f0e.webm"`
	Size     int64  `json:"size" example:"48213"`
}
