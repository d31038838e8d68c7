package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalScheme prefixes references handed out by MemoryClips
const LocalScheme = "blob:"

// ErrPermissionDenied is returned by microphones the user has not granted access to
var ErrPermissionDenied = errors.New("microphone permission denied")

// FileMicrophone replays an audio file as if it were being captured live.
// Each Read yields at most one chunk; ChunkInterval paces the chunks.
type FileMicrophone struct {
	Path          string
	ChunkInterval time.Duration
}

func (m FileMicrophone) Open(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(m.Path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("%w: %v", ErrPermissionDenied, err)
		}
		return nil, err
	}
	return &pacedStream{file: f, interval: m.ChunkInterval, closed: make(chan struct{})}, nil
}

type pacedStream struct {
	file     *os.File
	interval time.Duration
	once     sync.Once
	closed   chan struct{}
}

func (s *pacedStream) Read(p []byte) (int, error) {
	if s.interval > 0 {
		select {
		case <-s.closed:
			return 0, io.EOF
		case <-time.After(s.interval):
		}
	}
	select {
	case <-s.closed:
		return 0, io.EOF
	default:
	}
	return s.file.Read(p)
}

func (s *pacedStream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.closed)
		err = s.file.Close()
	})
	return err
}

// MemoryClips keeps unsent clips in memory under blob: references
type MemoryClips struct {
	mu    sync.RWMutex
	clips map[string]Clip
}

func NewMemoryClips() *MemoryClips {
	return &MemoryClips{clips: make(map[string]Clip)}
}

func (m *MemoryClips) Register(clip Clip) string {
	ref := LocalScheme + uuid.NewString()
	m.mu.Lock()
	m.clips[ref] = clip
	m.mu.Unlock()
	return ref
}

func (m *MemoryClips) Release(ref string) {
	m.mu.Lock()
	delete(m.clips, ref)
	m.mu.Unlock()
}

// Get returns the clip behind ref while it is still registered
func (m *MemoryClips) Get(ref string) (Clip, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	clip, ok := m.clips[ref]
	return clip, ok
}

// Len reports how many clips are held
func (m *MemoryClips) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clips)
}

// IsLocal reports whether ref points at an in-process clip
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, LocalScheme)
}
