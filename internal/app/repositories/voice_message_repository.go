package repositories

import (
	"context"
	"fmt"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// IVoiceMessageRepository defines the interface for voice message storage operations
type IVoiceMessageRepository interface {
	Create(ctx context.Context, message *models.VoiceMessage) error
	GetByID(ctx context.Context, id string) (*models.VoiceMessage, error)
	GetWithSender(ctx context.Context, id string) (*models.VoiceMessageWithSender, error)
	Update(ctx context.Context, id string, apply func(*models.VoiceMessage)) (*models.VoiceMessage, error)
	ListByMentorship(ctx context.Context, mentorshipID string) ([]models.VoiceMessageWithSender, error)
}

// VoiceMessageRepository stores voice messages in the shared Store
type VoiceMessageRepository struct {
	store *Store
}

// NewVoiceMessageRepository creates a new VoiceMessageRepository
func NewVoiceMessageRepository(store *Store) *VoiceMessageRepository {
	return &VoiceMessageRepository{store: store}
}

// Create assigns id and createdAt and stores a copy
func (r *VoiceMessageRepository) Create(ctx context.Context, message *models.VoiceMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := r.store.assignID(message.ID)
	if r.store.voiceMessages.has(id) {
		return fmt.Errorf("voice message %s: %w", id, apperrors.ErrResourceAlreadyExists)
	}
	message.ID = id
	message.CreatedAt = r.store.stamp()
	r.store.voiceMessages.insert(id, message.Clone())
	return nil
}

// GetByID retrieves a voice message by id
func (r *VoiceMessageRepository) GetByID(ctx context.Context, id string) (*models.VoiceMessage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.voiceMessages.get(id)
	if !ok {
		return nil, apperrors.ErrVoiceMessageNotFound
	}
	v = v.Clone()
	return &v, nil
}

// GetWithSender returns the message joined with its sender
func (r *VoiceMessageRepository) GetWithSender(ctx context.Context, id string) (*models.VoiceMessageWithSender, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	v, ok := r.store.voiceMessages.get(id)
	if !ok {
		return nil, apperrors.ErrVoiceMessageNotFound
	}
	joined, ok := r.store.voiceMessageWithSender(v)
	if !ok {
		return nil, fmt.Errorf("voice message %s sender: %w", id, apperrors.ErrUserNotFound)
	}
	return &joined, nil
}

// Update applies a partial change. Only transcription and read state are mutable.
func (r *VoiceMessageRepository) Update(ctx context.Context, id string, apply func(*models.VoiceMessage)) (*models.VoiceMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	v, ok := r.store.voiceMessages.get(id)
	if !ok {
		return nil, apperrors.ErrVoiceMessageNotFound
	}
	updated := v.Clone()
	apply(&updated)
	v.Transcription = updated.Transcription
	v.IsRead = updated.IsRead
	r.store.voiceMessages.insert(id, v)
	v = v.Clone()
	return &v, nil
}

// ListByMentorship returns the thread oldest first. Messages whose sender is missing are skipped.
func (r *VoiceMessageRepository) ListByMentorship(ctx context.Context, mentorshipID string) ([]models.VoiceMessageWithSender, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := []models.VoiceMessageWithSender{}
	r.store.voiceMessages.each(func(v models.VoiceMessage) bool {
		if v.MentorshipID != mentorshipID {
			return true
		}
		if joined, ok := r.store.voiceMessageWithSender(v); ok {
			results = append(results, joined)
		}
		return true
	})
	// insertion order equals createdAt order because stamps are strictly increasing
	return results, nil
}
