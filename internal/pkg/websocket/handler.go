package websocket

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// MentorshipFinder looks up the thread a client wants to follow
type MentorshipFinder interface {
	GetByID(ctx context.Context, id string) (*models.Mentorship, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub         *Hub
	mentorships MentorshipFinder
	logger      zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, mentorships MentorshipFinder, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:         hub,
		mentorships: mentorships,
		logger:      logger,
	}
}

// HandleConnection upgrades the request into a live feed of one mentorship thread.
// The optional userId query parameter is only used for logging.
func (h *Handler) HandleConnection(c *gin.Context) {
	mentorshipID := c.Param("mentorshipId")

	if _, err := h.mentorships.GetByID(c.Request.Context(), mentorshipID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mentorship not found"})
			return
		}
		h.logger.Error().Err(err).Str("mentorshipID", mentorshipID).Msg("Failed to look up mentorship")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open live feed"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("mentorshipID", mentorshipID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:          h.hub,
		conn:         conn,
		send:         make(chan []byte, h.hub.sendBuffer),
		userID:       c.Query("userId"),
		mentorshipID: mentorshipID,
		logger:       h.logger,
	}
	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("mentorshipID", mentorshipID).
		Str("userID", client.userID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
