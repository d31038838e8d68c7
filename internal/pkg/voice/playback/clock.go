package playback

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrTrackClosed = errors.New("track is closed")

// DurationLookup resolves how long the clip behind ref is
type DurationLookup func(ctx context.Context, ref string) (time.Duration, error)

// ClockBackend plays clips of known length against a ticker. Every Step of
// wall time advances playback by Step*Rate.
type ClockBackend struct {
	Lookup DurationLookup
	Step   time.Duration
	Rate   float64
}

func (b ClockBackend) Open(ctx context.Context, ref string) (Track, error) {
	if b.Lookup == nil {
		return nil, errors.New("no duration lookup configured")
	}
	d, err := b.Lookup(ctx, ref)
	if err != nil {
		return nil, err
	}
	step := b.Step
	if step <= 0 {
		step = 250 * time.Millisecond
	}
	rate := b.Rate
	if rate <= 0 {
		rate = 1
	}
	return &clockTrack{
		duration: d,
		step:     step,
		advance:  time.Duration(float64(step) * rate),
		events:   make(chan Event, 16),
		closed:   make(chan struct{}),
	}, nil
}

type clockTrack struct {
	duration time.Duration
	step     time.Duration
	advance  time.Duration
	events   chan Event

	mu       sync.Mutex
	position time.Duration
	running  chan struct{}
	wg       sync.WaitGroup
	closed   chan struct{}
	isClosed bool
}

func (t *clockTrack) Duration() time.Duration { return t.duration }
func (t *clockTrack) Events() <-chan Event    { return t.events }

func (t *clockTrack) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isClosed {
		return ErrTrackClosed
	}
	if t.running != nil {
		return nil
	}
	t.running = make(chan struct{})
	t.wg.Add(1)
	go t.run(t.running)
	return nil
}

func (t *clockTrack) run(stop chan struct{}) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.step)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		t.mu.Lock()
		t.position += t.advance
		ev := Event{Kind: EventTimeUpdate, Position: t.position}
		if t.position >= t.duration {
			t.position = 0
			t.running = nil
			ev = Event{Kind: EventEnded}
		}
		t.mu.Unlock()

		select {
		case t.events <- ev:
		case <-t.closed:
			return
		}
		if ev.Kind == EventEnded {
			return
		}
	}
}

func (t *clockTrack) Pause() error {
	t.mu.Lock()
	running := t.running
	t.running = nil
	t.mu.Unlock()
	if running != nil {
		close(running)
	}
	return nil
}

func (t *clockTrack) Seek(pos time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isClosed {
		return ErrTrackClosed
	}
	t.position = pos
	return nil
}

func (t *clockTrack) Close() error {
	t.Pause()
	t.mu.Lock()
	if !t.isClosed {
		t.isClosed = true
		close(t.closed)
	}
	t.mu.Unlock()
	t.wg.Wait()
	return nil
}
