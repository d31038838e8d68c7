package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
)

// HandleBindError answers a request whose body or query failed to bind with 400 and the
// list of field problems.
func HandleBindError(c *gin.Context, err error, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message, describeBindError(err)...))
}

func describeBindError(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, e := range verrs {
			details = append(details, formatValidationError(e))
		}
		return details
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []string{typeErr.Field + " must be of type " + typeErr.Type.String()}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return []string{"request body is not valid JSON"}
	}
	if errors.Is(err, io.EOF) {
		return []string{"request body is empty"}
	}
	return []string{err.Error()}
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := lowerFirst(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
