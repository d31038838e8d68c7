package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/repositories"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/filestorage"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/transcription"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/websocket"
	"github.com/rs/zerolog"
)

// VoiceMessageService defines the interface for voice message operations
type VoiceMessageService interface {
	UploadAudio(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
	Transcribe(ctx context.Context, audioURL string) (string, error)
	CreateVoiceMessage(ctx context.Context, req *dto.CreateVoiceMessageRequest) (*models.VoiceMessage, error)
	UpdateVoiceMessage(ctx context.Context, id string, req *dto.UpdateVoiceMessageRequest) (*models.VoiceMessage, error)
	GetVoiceMessagesByMentorship(ctx context.Context, mentorshipID string) ([]models.VoiceMessageWithSender, error)
}

type voiceMessageServiceImpl struct {
	voiceMessageRepo repositories.IVoiceMessageRepository
	fileStorage      filestorage.FileStorage
	transcriber      transcription.Transcriber
	notifier         ThreadNotifier
	logger           zerolog.Logger
}

// NewVoiceMessageService creates a new VoiceMessageService. A nil notifier disables live events.
func NewVoiceMessageService(
	voiceMessageRepo repositories.IVoiceMessageRepository,
	fileStorage filestorage.FileStorage,
	transcriber transcription.Transcriber,
	notifier ThreadNotifier,
	logger zerolog.Logger,
) VoiceMessageService {
	if notifier == nil {
		notifier = NoopNotifier
	}
	return &voiceMessageServiceImpl{
		voiceMessageRepo: voiceMessageRepo,
		fileStorage:      fileStorage,
		transcriber:      transcriber,
		notifier:         notifier,
		logger:           logger,
	}
}

// UploadAudio stores a recording under the audio directory and returns where it is served
func (s *voiceMessageServiceImpl) UploadAudio(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	if file == nil {
		return nil, apperrors.NewBadRequestError("No audio file provided")
	}
	info, err := s.fileStorage.SaveFileWithPath(file, filestorage.AudioDir)
	if err != nil {
		return nil, fmt.Errorf("error storing audio: %w", err)
	}
	return &dto.UploadResponse{
		AudioURL: info.URL,
		Filename: info.Filename,
		Size:     info.FileSize,
	}, nil
}

// Transcribe returns text for a stored audio reference
func (s *voiceMessageServiceImpl) Transcribe(ctx context.Context, audioURL string) (string, error) {
	text, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return "", fmt.Errorf("error transcribing audio: %w", err)
	}
	return text, nil
}

// CreateVoiceMessage appends a message to a thread and notifies live subscribers
func (s *voiceMessageServiceImpl) CreateVoiceMessage(ctx context.Context, req *dto.CreateVoiceMessageRequest) (*models.VoiceMessage, error) {
	message := req.ToModel()
	if err := s.voiceMessageRepo.Create(ctx, &message); err != nil {
		return nil, fmt.Errorf("error creating voice message: %w", err)
	}

	s.logger.Info().
		Str("voiceMessageID", message.ID).
		Str("mentorshipID", message.MentorshipID).
		Str("senderID", message.SenderID).
		Msg("Voice message created")

	s.publish(ctx, websocket.EventVoiceMessageCreated, &message)
	return &message, nil
}

// UpdateVoiceMessage changes the transcription or read state of a message
func (s *voiceMessageServiceImpl) UpdateVoiceMessage(ctx context.Context, id string, req *dto.UpdateVoiceMessageRequest) (*models.VoiceMessage, error) {
	message, err := s.voiceMessageRepo.Update(ctx, id, req.Apply)
	if err != nil {
		return nil, fmt.Errorf("error updating voice message: %w", err)
	}
	s.publish(ctx, websocket.EventVoiceMessageUpdated, message)
	return message, nil
}

// GetVoiceMessagesByMentorship returns the thread oldest first
func (s *voiceMessageServiceImpl) GetVoiceMessagesByMentorship(ctx context.Context, mentorshipID string) ([]models.VoiceMessageWithSender, error) {
	messages, err := s.voiceMessageRepo.ListByMentorship(ctx, mentorshipID)
	if err != nil {
		return nil, fmt.Errorf("error listing voice messages: %w", err)
	}
	return messages, nil
}

// publish sends the message joined with its sender, or the bare message when the sender is unknown
func (s *voiceMessageServiceImpl) publish(ctx context.Context, eventType string, message *models.VoiceMessage) {
	var payload any = message
	if joined, err := s.voiceMessageRepo.GetWithSender(ctx, message.ID); err == nil {
		payload = joined
	}
	s.notifier.BroadcastToMentorship(message.MentorshipID, eventType, payload)
}
