package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandler(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()), RequestLogger(zerolog.Nop()))
	router.POST("/test", handler)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"role":"teacher"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON error body, got %q", w.Body.String())
	}
	return body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	messages := ErrorMessages{BadRequest: "Invalid user data", NotFound: "User not found", Internal: "Failed to fetch user"}
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", fmt.Errorf("lookup: %w", apperrors.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"validation", apperrors.NewValidationError("experience must be an integer"), http.StatusBadRequest, "Invalid user data"},
		{"too large", fmt.Errorf("save: %w", apperrors.ErrFileTooLarge), http.StatusBadRequest, "File too large"},
		{"conflict", apperrors.ErrResourceAlreadyExists, http.StatusConflict, "Resource already exists"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "Failed to fetch user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := runHandler(func(c *gin.Context) { HandleAPIError(c, tt.err, messages) })
			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if body := decode(t, w); body.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, body.Error)
			}
		})
	}
}

func TestHandleAPIErrorDefaults(t *testing.T) {
	w := runHandler(func(c *gin.Context) { HandleAPIError(c, apperrors.NewBadRequestError("No audio file provided")) })
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if body := decode(t, w); body.Error != "No audio file provided" {
		t.Errorf("Expected custom message, got %q", body.Error)
	}

	w = runHandler(func(c *gin.Context) { HandleAPIError(c, errors.New("db exploded")) })
	if body := decode(t, w); body.Error != "Internal server error" {
		t.Errorf("Expected generic message, got %q", body.Error)
	}
}

func TestHandleBindErrorListsFields(t *testing.T) {
	w := runHandler(func(c *gin.Context) {
		var req dto.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleBindError(c, err, "Invalid user data")
			return
		}
		c.Status(http.StatusOK)
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	body := decode(t, w)
	if body.Error != "Invalid user data" {
		t.Errorf("Expected Invalid user data, got %q", body.Error)
	}
	joined := strings.Join(body.Details, "; ")
	if !strings.Contains(joined, "role must be one of: student mentor") {
		t.Errorf("Expected role detail, got %q", joined)
	}
	if !strings.Contains(joined, "name is required") {
		t.Errorf("Expected name detail, got %q", joined)
	}
}

func TestDescribeBindErrorEmptyBody(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bare EOF", io.EOF, "request body is empty"},
		{"wrapped EOF", fmt.Errorf("decode body: %w", io.EOF), "request body is empty"},
		{"other error", errors.New("EOF reached early"), "EOF reached early"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeBindError(tt.err)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Expected [%s], got %v", tt.want, got)
			}
		})
	}
}

func TestRecoveryReturns500(t *testing.T) {
	w := runHandler(func(c *gin.Context) { panic("kaboom") })
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", w.Code)
	}
}
