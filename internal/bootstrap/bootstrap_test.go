package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/config"
	"github.com/rs/zerolog"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = "test"
	cfg.Server.StoragePath = t.TempDir()
	cfg.Server.MaxUploadBytes = 1024

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	lgr := zerolog.Nop()
	repos := SetupStore(ctx, cfg, lgr)
	deps, err := BuildDependencies(ctx, cfg, repos, lgr)
	if err != nil {
		t.Fatalf("Expected dependencies, got %v", err)
	}
	return SetupRouter(cfg, deps, lgr)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode %q: %v", w.Body.String(), err)
	}
}

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, "recording.webm")
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write(content)
	} else {
		writer.WriteField("note", "no file here")
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/voice-messages/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestStudentFindsTechnologyMentor(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/users", map[string]any{
		"role":      "student",
		"name":      "Asha",
		"location":  "Pune",
		"languages": []string{"Hindi", "English"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 creating user, got %d: %s", w.Code, w.Body.String())
	}
	var asha models.User
	decodeInto(t, w, &asha)
	if asha.ID == "" || asha.Role != models.RoleStudent {
		t.Fatalf("Unexpected user: %+v", asha)
	}

	w = doJSON(t, router, http.MethodPost, "/api/students", map[string]any{
		"userId":     asha.ID,
		"age":        19,
		"studyField": "technology",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 creating student, got %d: %s", w.Code, w.Body.String())
	}
	var student models.Student
	decodeInto(t, w, &student)

	w = doJSON(t, router, http.MethodGet, "/api/mentors/search?fieldOfExpertise=technology", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 searching, got %d", w.Code)
	}
	var mentors []models.MentorWithUser
	decodeInto(t, w, &mentors)
	if len(mentors) != 1 {
		t.Fatalf("Expected exactly one mentor, got %d", len(mentors))
	}
	if mentors[0].User.Name != "Priya Sharma" || mentors[0].RatingDisplay != "4.5" {
		t.Errorf("Expected Priya Sharma rated 4.5, got %s rated %s", mentors[0].User.Name, mentors[0].RatingDisplay)
	}

	w = doJSON(t, router, http.MethodPost, "/api/mentorships", map[string]any{
		"studentId": student.ID,
		"mentorId":  mentors[0].ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 creating mentorship, got %d: %s", w.Code, w.Body.String())
	}
	var mentorship models.Mentorship
	decodeInto(t, w, &mentorship)
	if mentorship.Status != models.MentorshipActive {
		t.Errorf("Expected active mentorship, got %s", mentorship.Status)
	}

	w = doJSON(t, router, http.MethodGet, "/api/mentorships/student/"+student.ID, nil)
	var details []models.MentorshipWithDetails
	decodeInto(t, w, &details)
	if len(details) != 1 || details[0].Mentor.User.Name != "Priya Sharma" || details[0].Student.User.Name != "Asha" {
		t.Errorf("Unexpected mentorship details: %+v", details)
	}
}

func TestSearchSentinelsReturnAllSeededMentors(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/mentors/search?fieldOfExpertise=all&languages=any&experience=any", nil)
	var mentors []models.MentorWithUser
	decodeInto(t, w, &mentors)
	if len(mentors) != 3 {
		t.Fatalf("Expected 3 mentors, got %d", len(mentors))
	}

	w = doJSON(t, router, http.MethodGet, "/api/mentors/search?languages=Tamil&languages=Bengali&experience=4", nil)
	decodeInto(t, w, &mentors)
	if len(mentors) != 1 || mentors[0].User.Name != "Rajesh Kumar" {
		t.Errorf("Expected only Rajesh Kumar, got %+v", mentors)
	}

	w = doJSON(t, router, http.MethodGet, "/api/mentors/search?experience=lots", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad experience, got %d", w.Code)
	}
}

func TestErrorResponses(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/users/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	var body dto.ErrorResponse
	decodeInto(t, w, &body)
	if body.Error != "User not found" {
		t.Errorf("Expected User not found, got %q", body.Error)
	}

	w = doJSON(t, router, http.MethodPost, "/api/users", map[string]any{"role": "teacher", "name": "X"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	decodeInto(t, w, &body)
	if body.Error != "Invalid user data" {
		t.Errorf("Expected Invalid user data, got %q", body.Error)
	}

	w = doJSON(t, router, http.MethodGet, "/api/students/user/nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing student, got %d", w.Code)
	}

	goals := "x"
	w = doJSON(t, router, http.MethodPut, "/api/students/nobody", dto.UpdateStudentRequest{Goals: &goals})
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 updating missing student, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/mentors/user/mentor-2", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected seeded mentor by user id, got %d", w.Code)
	}
}

func TestVoiceMessageRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "audio", []byte("fake-webm")))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 uploading, got %d: %s", w.Code, w.Body.String())
	}
	var uploaded dto.UploadResponse
	decodeInto(t, w, &uploaded)
	if !strings.HasPrefix(uploaded.AudioURL, "/uploads/audio/voice-") || uploaded.Size != int64(len("fake-webm")) {
		t.Fatalf("Unexpected upload response: %+v", uploaded)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, uploaded.AudioURL, nil))
	if w.Code != http.StatusOK || w.Body.String() != "fake-webm" {
		t.Errorf("Expected stored audio to be served, got %d %q", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/voice-messages/transcribe", dto.TranscribeRequest{AudioURL: uploaded.AudioURL})
	var transcribed dto.TranscribeResponse
	decodeInto(t, w, &transcribed)
	if transcribed.Transcription != "This is a transcribed message from the audio file." {
		t.Errorf("Unexpected transcription %q", transcribed.Transcription)
	}

	for i := 0; i < 3; i++ {
		w = doJSON(t, router, http.MethodPost, "/api/voice-messages", map[string]any{
			"mentorshipId":  "ms-1",
			"senderId":      "mentor-1",
			"audioUrl":      uploaded.AudioURL,
			"transcription": transcribed.Transcription,
			"duration":      4,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 creating voice message, got %d: %s", w.Code, w.Body.String())
		}
	}

	w = doJSON(t, router, http.MethodGet, "/api/voice-messages/mentorship/ms-1", nil)
	var thread []models.VoiceMessageWithSender
	decodeInto(t, w, &thread)
	if len(thread) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(thread))
	}
	for i := 1; i < len(thread); i++ {
		if !thread[i].CreatedAt.After(thread[i-1].CreatedAt) {
			t.Errorf("Expected ascending createdAt at %d", i)
		}
	}
	if thread[0].Sender.Name != "Priya Sharma" {
		t.Errorf("Expected sender Priya Sharma, got %s", thread[0].Sender.Name)
	}
}

func TestUploadErrors(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without file, got %d", w.Code)
	}
	var body dto.ErrorResponse
	decodeInto(t, w, &body)
	if body.Error != "No audio file provided" {
		t.Errorf("Expected No audio file provided, got %q", body.Error)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, uploadRequest(t, "audio", bytes.Repeat([]byte("a"), 2048)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for oversized file, got %d", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	for _, path := range []string{"/ping", "/api/health"} {
		w := doJSON(t, router, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 from %s, got %d", path, w.Code)
		}
	}
}
