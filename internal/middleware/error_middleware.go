package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/logger"
)

// ErrorMessages overrides the default message per status for one endpoint
type ErrorMessages struct {
	BadRequest string
	NotFound   string
	Internal   string
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

// HandleAPIError maps an error to its status code and writes {"error": "..."}.
// Internal errors are logged and never leak their text.
func HandleAPIError(c *gin.Context, err error, messages ...ErrorMessages) {
	var m ErrorMessages
	if len(messages) > 0 {
		m = messages[0]
	}

	var custom *apperrors.CustomError
	hasCustom := errors.As(err, &custom) && custom.Message != ""

	switch {
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("File too large"))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		switch {
		case m.BadRequest != "" && hasCustom:
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(m.BadRequest, custom.Message))
		case hasCustom:
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(custom.Message))
		default:
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(pick(m.BadRequest, "Validation failed")))
		}
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(pick(m.NotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		c.JSON(http.StatusConflict, dto.NewErrorResponse("Resource already exists"))
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(pick(m.Internal, "Internal server error")))
	}
}
