// Package session remembers which user is acting on this machine.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/karthikdm21/Saathi-Voice/internal/app/models"
)

// ErrNoSession is returned when nobody has signed in
var ErrNoSession = errors.New("no active session")

// Identity is the signed-in user together with their role profile id
type Identity struct {
	UserID    string          `json:"userId"`
	Role      models.RoleType `json:"role"`
	Name      string          `json:"name"`
	StudentID string          `json:"studentId,omitempty"`
	MentorID  string          `json:"mentorId,omitempty"`
}

// ProfileID returns the student or mentor id matching the role
func (i Identity) ProfileID() string {
	if i.Role == models.RoleMentor {
		return i.MentorID
	}
	return i.StudentID
}

// Store persists the current identity
type Store interface {
	Current() (*Identity, error)
	Save(id Identity) error
	Clear() error
}

// FileStore keeps the identity in a JSON file
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is saathi/session.json under the user config directory
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "saathi", "session.json"), nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Current() (*Identity, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if strings.TrimSpace(id.UserID) == "" {
		return nil, ErrNoSession
	}
	return &id, nil
}

// Save replaces the stored identity. The file is written next to the target and renamed into place.
func (s *FileStore) Save(id Identity) error {
	if strings.TrimSpace(id.UserID) == "" {
		return errors.New("session identity needs a user id")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
