package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models/dto"
	"github.com/karthikdm21/Saathi-Voice/internal/bootstrap"
	"github.com/karthikdm21/Saathi-Voice/internal/config"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/session"
	"github.com/karthikdm21/Saathi-Voice/internal/pkg/voice/apiclient"
	"github.com/rs/zerolog"
)

type harness struct {
	server      *httptest.Server
	sessionPath string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Mode = "test"
	cfg.Server.StoragePath = t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	lgr := zerolog.Nop()
	repos := bootstrap.SetupStore(ctx, cfg, lgr)
	deps, err := bootstrap.BuildDependencies(ctx, cfg, repos, lgr)
	if err != nil {
		cancel()
		t.Fatalf("Expected dependencies, got %v", err)
	}
	server := httptest.NewServer(bootstrap.SetupRouter(cfg, deps, lgr))
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return &harness{server: server, sessionPath: filepath.Join(t.TempDir(), "session.json")}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut
	full := append([]string{"saathi", "--server", h.server.URL, "--session", h.sessionPath}, args...)
	err := app.Run(full)
	return out.String(), err
}

func TestStudentJourney(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "onboard-student", "--name", "Asha", "--location", "Pune",
		"--language", "Hindi", "--language", "English", "--age", "19", "--field", "technology")
	if err != nil {
		t.Fatalf("Expected onboarding to succeed, got %v", err)
	}
	if !strings.Contains(out, "Welcome Asha!") {
		t.Errorf("Expected welcome message, got %q", out)
	}

	identity, err := session.NewFileStore(h.sessionPath).Current()
	if err != nil || identity.Name != "Asha" || identity.StudentID == "" {
		t.Fatalf("Expected saved student session, got %+v (%v)", identity, err)
	}

	out, err = h.run(t, "search", "--field", "technology")
	if err != nil {
		t.Fatalf("Expected search to succeed, got %v", err)
	}
	if !strings.Contains(out, "Priya Sharma") || strings.Contains(out, "Rajesh Kumar") || !strings.Contains(out, "4.5") {
		t.Errorf("Expected only Priya Sharma rated 4.5, got %q", out)
	}

	out, err = h.run(t, "connect", "mentor-profile-1")
	if err != nil {
		t.Fatalf("Expected connect to succeed, got %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 {
		t.Fatalf("Expected mentorship id in %q", out)
	}
	mentorshipID := fields[1]

	clip := filepath.Join(t.TempDir(), "hello.webm")
	if err := os.WriteFile(clip, []byte("voice-bytes"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	out, err = h.run(t, "send-voice", mentorshipID, clip)
	if err != nil {
		t.Fatalf("Expected send-voice to succeed, got %v", err)
	}
	if !strings.Contains(out, "Sent voice message") {
		t.Errorf("Expected confirmation, got %q", out)
	}

	out, err = h.run(t, "thread", "--mark-read", mentorshipID)
	if err != nil {
		t.Fatalf("Expected thread to succeed, got %v", err)
	}
	if !strings.Contains(out, "Asha") || !strings.Contains(out, "This is a transcribed message from the audio file.") {
		t.Errorf("Expected message from Asha with transcription, got %q", out)
	}

	out, _ = h.run(t, "mentorships")
	if !strings.Contains(out, "Priya Sharma") {
		t.Errorf("Expected mentorship with Priya Sharma, got %q", out)
	}

	if _, err := h.run(t, "logout"); err != nil {
		t.Fatalf("Expected logout to succeed, got %v", err)
	}
	if _, err := h.run(t, "whoami"); err == nil {
		t.Error("Expected whoami to fail after logout")
	}
}

func TestSearchRejectsBadExperience(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run(t, "search", "--experience", "lots"); err == nil {
		t.Error("Expected invalid experience to fail")
	}
	out, err := h.run(t, "search", "--language", "Bengali")
	if err != nil {
		t.Fatalf("Expected search to succeed, got %v", err)
	}
	if !strings.Contains(out, "Anita Patel") || strings.Contains(out, "Priya Sharma") {
		t.Errorf("Expected only Anita Patel, got %q", out)
	}
}

func TestThreadPlaySkipsUnknownLength(t *testing.T) {
	h := newHarness(t)

	if _, err := h.run(t, "onboard-student", "--name", "Ravi", "--language", "Tamil", "--field", "business"); err != nil {
		t.Fatalf("Expected onboarding to succeed, got %v", err)
	}
	out, err := h.run(t, "connect", "mentor-profile-2")
	if err != nil {
		t.Fatalf("Expected connect to succeed, got %v", err)
	}
	fields := strings.Fields(out)
	if len(fields) < 2 {
		t.Fatalf("Expected mentorship id in %q", out)
	}
	mentorshipID := fields[1]

	clip := filepath.Join(t.TempDir(), "short.webm")
	if err := os.WriteFile(clip, []byte("tiny"), 0o644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	if _, err := h.run(t, "send-voice", mentorshipID, clip); err != nil {
		t.Fatalf("Expected send-voice to succeed, got %v", err)
	}

	identity, err := session.NewFileStore(h.sessionPath).Current()
	if err != nil {
		t.Fatalf("Expected session, got %v", err)
	}
	_, err = apiclient.New(h.server.URL).CreateVoiceMessage(context.Background(), dto.CreateVoiceMessageRequest{
		MentorshipID: mentorshipID,
		SenderID:     identity.UserID,
		AudioURL:     "/uploads/audio/no-length.webm",
	})
	if err != nil {
		t.Fatalf("Expected message without duration to be created, got %v", err)
	}

	out, err = h.run(t, "thread", "--play", "--rate", "100", mentorshipID)
	if err != nil {
		t.Fatalf("Expected thread playback to succeed, got %v", err)
	}
	if !strings.Contains(out, "no-length.webm: length unknown") {
		t.Errorf("Expected unknown length notice, got %q", out)
	}
	if strings.Contains(out, "Cannot play") {
		t.Errorf("Expected no playback failure, got %q", out)
	}
	if !strings.Contains(out, "(0:01)") {
		t.Errorf("Expected short recording stored as one second, got %q", out)
	}
}

func TestWholeSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Millisecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
	}
	for _, tt := range tests {
		if got := wholeSeconds(tt.in); got != tt.want {
			t.Errorf("wholeSeconds(%v): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestRenderStars(t *testing.T) {
	tests := []struct {
		rating int
		want   string
	}{
		{45, "★★★★⯪"},
		{30, "★★★☆☆"},
		{0, "☆☆☆☆☆"},
		{100, "★★★★★"},
	}
	for _, tt := range tests {
		if got := renderStars(tt.rating); got != tt.want {
			t.Errorf("renderStars(%d): expected %s, got %s", tt.rating, tt.want, got)
		}
	}
}
