// Package transcription turns stored audio references into text.
package transcription

import (
	"context"
	"strings"

	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// DefaultPlaceholderText is returned for every audio reference until a real engine is wired in
const DefaultPlaceholderText = "This is a transcribed message from the audio file."

// Transcriber produces text for an audio reference
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Placeholder answers every request with fixed text
type Placeholder struct {
	text   string
	logger zerolog.Logger
}

// NewPlaceholder creates a placeholder transcriber; empty text falls back to DefaultPlaceholderText
func NewPlaceholder(text string, logger zerolog.Logger) *Placeholder {
	if strings.TrimSpace(text) == "" {
		text = DefaultPlaceholderText
	}
	return &Placeholder{text: text, logger: logger}
}

// Transcribe returns the placeholder text for any non-empty reference
func (p *Placeholder) Transcribe(ctx context.Context, audioURL string) (string, error) {
	if strings.TrimSpace(audioURL) == "" {
		return "", apperrors.NewValidationError("audioUrl is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.logger.Debug().Str("audioUrl", audioURL).Msg("Returning placeholder transcription")
	return p.text, nil
}
