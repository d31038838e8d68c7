package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/app/services"
	"github.com/karthikdm21/Saathi-Voice/internal/middleware"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

// AudioFormField is the multipart field recordings are uploaded under
const AudioFormField = "audio"

// multipart framing allowance on top of the file limit
const multipartOverhead = 1 << 20

var voiceMessageErrors = middleware.ErrorMessages{
	BadRequest: "Invalid voice message data",
	NotFound:   "Voice message not found",
	Internal:   "Failed to fetch voice messages",
}

// VoiceMessageController handles audio upload, transcription and thread endpoints
type VoiceMessageController struct {
	voiceMessageService services.VoiceMessageService
	maxUploadBytes      int64
}

// NewVoiceMessageController creates a new voice message controller
func NewVoiceMessageController(voiceMessageService services.VoiceMessageService, maxUploadBytes int64) *VoiceMessageController {
	return &VoiceMessageController{
		voiceMessageService: voiceMessageService,
		maxUploadBytes:      maxUploadBytes,
	}
}

// UploadAudio stores a recording sent as multipart field "audio"
// @Summary Upload a voice recording
// @Tags voice-messages
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio recording (max 10MB)"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse "No audio file provided"
// @Failure 500 {object} dto.ErrorResponse "Failed to upload audio"
// @Router /voice-messages/upload [post]
func (c *VoiceMessageController) UploadAudio(ctx *gin.Context) {
	if c.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes+multipartOverhead)
	}

	file, err := ctx.FormFile(AudioFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.HandleAPIError(ctx, apperrors.ErrFileTooLarge)
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("No audio file provided"))
		return
	}

	uploaded, err := c.voiceMessageService.UploadAudio(ctx.Request.Context(), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{Internal: "Failed to upload audio"})
		return
	}
	ctx.JSON(http.StatusOK, uploaded)
}

// TranscribeAudio returns text for an uploaded recording
// @Summary Transcribe a voice recording
// @Tags voice-messages
// @Accept json
// @Produce json
// @Param request body dto.TranscribeRequest true "Audio reference"
// @Success 200 {object} dto.TranscribeResponse
// @Router /voice-messages/transcribe [post]
func (c *VoiceMessageController) TranscribeAudio(ctx *gin.Context) {
	var req dto.TranscribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, "Invalid transcription request")
		return
	}

	text, err := c.voiceMessageService.Transcribe(ctx.Request.Context(), req.AudioURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{Internal: "Failed to transcribe audio"})
		return
	}
	ctx.JSON(http.StatusOK, dto.TranscribeResponse{Transcription: text})
}

// CreateVoiceMessage appends a message to a mentorship thread
// @Summary Create voice message
// @Tags voice-messages
// @Accept json
// @Produce json
// @Param request body dto.CreateVoiceMessageRequest true "Voice message"
// @Success 200 {object} models.VoiceMessage
// @Failure 400 {object} dto.ErrorResponse "Invalid voice message data"
// @Router /voice-messages [post]
func (c *VoiceMessageController) CreateVoiceMessage(ctx *gin.Context) {
	var req dto.CreateVoiceMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, voiceMessageErrors.BadRequest)
		return
	}

	message, err := c.voiceMessageService.CreateVoiceMessage(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{BadRequest: voiceMessageErrors.BadRequest, Internal: "Failed to create voice message"})
		return
	}
	ctx.JSON(http.StatusOK, message)
}

// UpdateVoiceMessage marks a message read or replaces its transcription
// @Router /voice-messages/{id} [put]
func (c *VoiceMessageController) UpdateVoiceMessage(ctx *gin.Context) {
	var req dto.UpdateVoiceMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindError(ctx, err, voiceMessageErrors.BadRequest)
		return
	}

	message, err := c.voiceMessageService.UpdateVoiceMessage(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, middleware.ErrorMessages{
			BadRequest: voiceMessageErrors.BadRequest,
			NotFound:   voiceMessageErrors.NotFound,
			Internal:   "Failed to update voice message",
		})
		return
	}
	ctx.JSON(http.StatusOK, message)
}

// GetVoiceMessagesByMentorship lists a thread oldest first
// @Router /voice-messages/mentorship/{mentorshipId} [get]
func (c *VoiceMessageController) GetVoiceMessagesByMentorship(ctx *gin.Context) {
	messages, err := c.voiceMessageService.GetVoiceMessagesByMentorship(ctx.Request.Context(), ctx.Param("mentorshipId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err, voiceMessageErrors)
		return
	}
	ctx.JSON(http.StatusOK, messages)
}
