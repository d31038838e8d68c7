package filestorage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/karthikdm21/Saathi-Voice/internal/pkg/apperrors"
)

func fileHeader(t *testing.T, field, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	r := multipart.NewReader(body, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("Failed to read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File[field][0]
}

func TestSaveVoiceRecording(t *testing.T) {
	dir := t.TempDir()
	ls, err := NewLocalStorage(dir, "/uploads/", WithNaming(VoiceName), WithMaxBytes(1024))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := ls.SaveFileWithPath(fileHeader(t, "audio", "recording.ogg", []byte("webm-bytes")), AudioDir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(info.Filename, "voice-") || !strings.HasSuffix(info.Filename, ".webm") {
		t.Errorf("Expected voice-*.webm filename, got %s", info.Filename)
	}
	if info.URL != "/uploads/audio/"+info.Filename {
		t.Errorf("Expected url under /uploads/audio, got %s", info.URL)
	}
	if info.FileSize != int64(len("webm-bytes")) {
		t.Errorf("Expected size %d, got %d", len("webm-bytes"), info.FileSize)
	}

	data, err := os.ReadFile(filepath.Join(dir, AudioDir, info.Filename))
	if err != nil {
		t.Fatalf("Expected file on disk, got %v", err)
	}
	if string(data) != "webm-bytes" {
		t.Errorf("Expected stored content, got %q", data)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "/uploads", WithMaxBytes(4))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	_, err = ls.SaveFileWithPath(fileHeader(t, "audio", "big.webm", []byte("too large")), AudioDir)
	if !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("Expected file too large, got %v", err)
	}
}

func TestSaveNilHeader(t *testing.T) {
	ls, _ := NewLocalStorage(t.TempDir(), "/uploads")
	if _, err := ls.SaveFileWithPath(nil, AudioDir); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Expected bad request, got %v", err)
	}
}
