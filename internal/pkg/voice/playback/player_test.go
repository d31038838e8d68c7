package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeTrack struct {
	duration time.Duration
	events   chan Event
	playErr  error
	gate     chan struct{}

	mu     sync.Mutex
	plays  int
	pauses int
	seeks  []time.Duration
	closed bool
}

func (t *fakeTrack) Duration() time.Duration { return t.duration }
func (t *fakeTrack) Events() <-chan Event    { return t.events }

func (t *fakeTrack) Play(context.Context) error {
	t.mu.Lock()
	t.plays++
	gate := t.gate
	t.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return t.playErr
}

func (t *fakeTrack) Pause() error {
	t.mu.Lock()
	t.pauses++
	t.mu.Unlock()
	return nil
}

func (t *fakeTrack) Seek(pos time.Duration) error {
	t.mu.Lock()
	t.seeks = append(t.seeks, pos)
	t.mu.Unlock()
	return nil
}

func (t *fakeTrack) Close() error {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	return nil
}

type fakeBackend struct {
	tracks map[string]*fakeTrack
	opens  int
}

func (b *fakeBackend) Open(_ context.Context, ref string) (Track, error) {
	b.opens++
	track, ok := b.tracks[ref]
	if !ok {
		return nil, errors.New("audio not found")
	}
	return track, nil
}

func newTrack(d time.Duration) *fakeTrack {
	return &fakeTrack{duration: d, events: make(chan Event, 4)}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestLoadReadsDurationOnce(t *testing.T) {
	backend := &fakeBackend{tracks: map[string]*fakeTrack{"/uploads/audio/a.webm": newTrack(8 * time.Second)}}
	p := NewPlayer(backend, "/uploads/audio/a.webm", zerolog.Nop())
	defer p.Close()

	p.Load(context.Background())
	p.Load(context.Background())
	if backend.opens != 1 {
		t.Errorf("Expected one open, got %d", backend.opens)
	}
	if p.Duration() != 8*time.Second {
		t.Errorf("Expected 8s, got %v", p.Duration())
	}
}

func TestLoadFailureLeavesZeroes(t *testing.T) {
	p := NewPlayer(&fakeBackend{}, "/missing.webm", zerolog.Nop())
	p.Load(context.Background())
	if p.Duration() != 0 || p.Position() != 0 {
		t.Errorf("Expected zero duration and position, got %v/%v", p.Duration(), p.Position())
	}
	if p.Err() == nil {
		t.Error("Expected load error to be recorded")
	}
	if p.Toggle(context.Background()) {
		t.Error("Expected toggle without a track to stay stopped")
	}
}

func TestToggleAndEvents(t *testing.T) {
	track := newTrack(10 * time.Second)
	p := NewPlayer(&fakeBackend{tracks: map[string]*fakeTrack{"a": track}}, "a", zerolog.Nop())
	defer p.Close()
	ctx := context.Background()

	if !p.Toggle(ctx) {
		t.Fatal("Expected playing after first toggle")
	}
	track.events <- Event{Kind: EventTimeUpdate, Position: 3 * time.Second}
	eventually(t, func() bool { return p.Position() == 3*time.Second }, "Expected position update")

	if p.Toggle(ctx) {
		t.Error("Expected paused after second toggle")
	}
	if track.pauses != 1 {
		t.Errorf("Expected one pause, got %d", track.pauses)
	}

	p.Toggle(ctx)
	track.events <- Event{Kind: EventEnded}
	eventually(t, func() bool { return !p.Playing() && p.Position() == 0 }, "Expected reset after end")
}

func TestOverlappingPlayIsIgnored(t *testing.T) {
	track := newTrack(5 * time.Second)
	track.gate = make(chan struct{})
	p := NewPlayer(&fakeBackend{tracks: map[string]*fakeTrack{"a": track}}, "a", zerolog.Nop())
	defer p.Close()
	p.Load(context.Background())

	done := make(chan bool)
	go func() { done <- p.Toggle(context.Background()) }()
	eventually(t, func() bool {
		track.mu.Lock()
		defer track.mu.Unlock()
		return track.plays == 1
	}, "Expected play to start")

	p.Toggle(context.Background())
	close(track.gate)
	if !<-done {
		t.Error("Expected first toggle to report playing")
	}
	if track.plays != 1 {
		t.Errorf("Expected a single play call, got %d", track.plays)
	}
}

func TestPlayFailureStops(t *testing.T) {
	track := newTrack(5 * time.Second)
	track.playErr = errors.New("autoplay blocked")
	p := NewPlayer(&fakeBackend{tracks: map[string]*fakeTrack{"a": track}}, "a", zerolog.Nop())
	defer p.Close()
	if p.Toggle(context.Background()) {
		t.Error("Expected failed play to leave the player stopped")
	}
	if p.Err() == nil {
		t.Error("Expected play error to be recorded")
	}
}

func TestSeekRatio(t *testing.T) {
	track := newTrack(20 * time.Second)
	p := NewPlayer(&fakeBackend{tracks: map[string]*fakeTrack{"a": track}}, "a", zerolog.Nop())
	defer p.Close()

	p.SeekRatio(50, 100)
	if p.Position() != 0 {
		t.Error("Expected seek before load to be ignored")
	}

	p.Load(context.Background())
	tests := []struct {
		x, width float64
		want     time.Duration
	}{
		{50, 100, 10 * time.Second},
		{25, 200, 2500 * time.Millisecond},
		{150, 100, 20 * time.Second},
		{-10, 100, 0},
	}
	for _, tt := range tests {
		p.SeekRatio(tt.x, tt.width)
		if got := p.Position(); got != tt.want {
			t.Errorf("SeekRatio(%v, %v): expected %v, got %v", tt.x, tt.width, tt.want, got)
		}
	}

	p.SeekRatio(10, 0)
	if p.Position() != 0 {
		t.Errorf("Expected zero width to be ignored, got %v", p.Position())
	}
}

func TestSetSourceReleasesTrack(t *testing.T) {
	first, second := newTrack(4*time.Second), newTrack(6*time.Second)
	p := NewPlayer(&fakeBackend{tracks: map[string]*fakeTrack{"a": first, "b": second}}, "a", zerolog.Nop())
	defer p.Close()

	p.Load(context.Background())
	p.SetSource("b")
	if !first.closed {
		t.Error("Expected previous track to be closed")
	}
	if p.Duration() != 0 {
		t.Errorf("Expected duration reset, got %v", p.Duration())
	}
	p.Load(context.Background())
	if p.Duration() != 6*time.Second {
		t.Errorf("Expected 6s, got %v", p.Duration())
	}
}

func TestClockBackendPlaysToEnd(t *testing.T) {
	backend := ClockBackend{
		Lookup: func(_ context.Context, ref string) (time.Duration, error) { return 2 * time.Second, nil },
		Step:   5 * time.Millisecond,
		Rate:   100,
	}
	p := NewPlayer(backend, "/uploads/audio/a.webm", zerolog.Nop())
	defer p.Close()

	if !p.Toggle(context.Background()) {
		t.Fatal("Expected playback to start")
	}
	eventually(t, func() bool { return !p.Playing() }, "Expected clip to finish")
	if p.Position() != 0 {
		t.Errorf("Expected position reset after end, got %v", p.Position())
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{7 * time.Second, "0:07"},
		{65 * time.Second, "1:05"},
		{600*time.Second + 100*time.Millisecond, "10:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}
