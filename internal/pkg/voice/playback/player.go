// Package playback plays one voice clip at a time and tracks its progress.
package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventKind says what a track reported
type EventKind int

const (
	EventTimeUpdate EventKind = iota
	EventEnded
	EventError
)

// Event is emitted by a track while it plays
type Event struct {
	Kind     EventKind
	Position time.Duration
	Err      error
}

// Track is an opened audio source
type Track interface {
	Duration() time.Duration
	Play(ctx context.Context) error
	Pause() error
	Seek(pos time.Duration) error
	Events() <-chan Event
	Close() error
}

// Backend opens audio references
type Backend interface {
	Open(ctx context.Context, ref string) (Track, error)
}

// Player is bound to one audio reference. Load failures are kept in Err and
// leave duration and position at zero.
type Player struct {
	backend Backend
	logger  zerolog.Logger

	mu           sync.Mutex
	ref          string
	track        Track
	loaded       bool
	duration     time.Duration
	position     time.Duration
	playing      bool
	playInFlight bool
	err          error
	stop         chan struct{}
	listening    sync.WaitGroup
}

// NewPlayer creates a player for ref. Nothing is opened until Load or Toggle.
func NewPlayer(backend Backend, ref string, logger zerolog.Logger) *Player {
	return &Player{backend: backend, ref: ref, logger: logger}
}

// Load opens the track once and reads its duration
func (p *Player) Load(ctx context.Context) {
	p.mu.Lock()
	if p.loaded {
		p.mu.Unlock()
		return
	}
	p.loaded = true
	ref := p.ref
	p.mu.Unlock()

	track, err := p.backend.Open(ctx, ref)

	p.mu.Lock()
	defer p.mu.Unlock()
	if ref != p.ref || !p.loaded {
		// source changed while opening
		if track != nil {
			track.Close()
		}
		return
	}
	if err != nil {
		p.logger.Info().Err(err).Str("ref", ref).Msg("Audio loading failed")
		p.err = err
		p.duration, p.position = 0, 0
		return
	}
	p.track = track
	p.duration = track.Duration()
	p.position = 0
	p.stop = make(chan struct{})
	p.listening.Add(1)
	go p.listen(track.Events(), p.stop)
}

func (p *Player) listen(events <-chan Event, stop chan struct{}) {
	defer p.listening.Done()
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			p.mu.Lock()
			switch ev.Kind {
			case EventTimeUpdate:
				p.position = ev.Position
			case EventEnded:
				p.playing = false
				p.position = 0
			case EventError:
				p.logger.Info().Err(ev.Err).Str("ref", p.ref).Msg("Audio playback failed")
				p.err = ev.Err
				p.playing = false
				p.duration, p.position = 0, 0
			}
			p.mu.Unlock()
		}
	}
}

// Toggle pauses a playing track or starts a paused one and reports whether
// the track is playing afterwards. A start that is already in flight makes
// further calls no-ops.
func (p *Player) Toggle(ctx context.Context) bool {
	p.Load(ctx)

	p.mu.Lock()
	track := p.track
	if track == nil || p.playInFlight {
		playing := p.playing
		p.mu.Unlock()
		return playing
	}
	if p.playing {
		if err := track.Pause(); err != nil {
			p.logger.Debug().Err(err).Msg("Pause failed")
		}
		p.playing = false
		p.mu.Unlock()
		return false
	}
	p.playInFlight = true
	p.mu.Unlock()

	err := track.Play(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.playInFlight = false
	if track != p.track {
		return false
	}
	if err != nil {
		p.logger.Info().Err(err).Msg("Audio play failed")
		p.err = err
		p.playing = false
		return false
	}
	p.playing = true
	return true
}

// SeekRatio moves to clickX/width of the clip, clamped to the clip bounds.
// It does nothing until a duration is known.
func (p *Player) SeekRatio(clickX, width float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track == nil || p.duration <= 0 || width <= 0 {
		return
	}
	pos := time.Duration(clickX / width * float64(p.duration))
	if pos < 0 {
		pos = 0
	}
	if pos > p.duration {
		pos = p.duration
	}
	if err := p.track.Seek(pos); err != nil {
		p.logger.Debug().Err(err).Msg("Seek failed")
		return
	}
	p.position = pos
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Progress is the played fraction in [0, 1]
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.duration <= 0 {
		return 0
	}
	return float64(p.position) / float64(p.duration)
}

// Err returns the last load or play failure
func (p *Player) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Source returns the bound audio reference
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ref
}

// SetSource rebinds the player, releasing the current track
func (p *Player) SetSource(ref string) {
	p.mu.Lock()
	if ref == p.ref {
		p.mu.Unlock()
		return
	}
	p.ref = ref
	p.mu.Unlock()
	p.release()
}

// Close stops playback and releases the track
func (p *Player) Close() error {
	p.release()
	return nil
}

func (p *Player) release() {
	p.mu.Lock()
	track, stop := p.track, p.stop
	p.track, p.stop = nil, nil
	p.loaded = false
	p.playing = false
	p.playInFlight = false
	p.duration, p.position = 0, 0
	p.err = nil
	p.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	p.listening.Wait()
	if track != nil {
		track.Pause()
		if err := track.Close(); err != nil {
			p.logger.Debug().Err(err).Msg("Failed to close track")
		}
	}
}

// FormatClock renders d as m:ss
func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
