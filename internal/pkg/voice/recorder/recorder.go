// Package recorder captures a voice clip from a microphone, uploads it and asks
// for a transcription. Upload and transcription are best effort: a recording
// always completes, falling back to a local clip reference and placeholder text.
package recorder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PlaceholderTranscription is reported until a real transcription replaces it
const PlaceholderTranscription = "Voice recording completed successfully"

const (
	DefaultFilename  = "voice-recording.webm"
	DefaultMimeType  = "audio/webm"
	defaultChunkSize = 4096
)

var (
	ErrBusy         = errors.New("recorder is busy")
	ErrNotRecording = errors.New("recorder is not recording")
	ErrNoUploader   = errors.New("no uploader configured")
	ErrClosed       = errors.New("recorder is closed")
)

// State is the recorder lifecycle position
type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Stream is an open capture device. Closing it stops every track.
type Stream interface {
	io.ReadCloser
}

// Microphone grants access to a capture device
type Microphone interface {
	Open(ctx context.Context) (Stream, error)
}

// Clip is one finished recording
type Clip struct {
	Data     []byte
	Filename string
	MimeType string
}

// Uploader stores a clip and returns its server reference
type Uploader interface {
	Upload(ctx context.Context, clip Clip) (string, error)
}

// Transcriber turns a stored audio reference into text
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// LocalClips hands out playable references for clips that only exist in this process
type LocalClips interface {
	Register(clip Clip) string
	Release(ref string)
}

// Result is what a finished recording produced. UploadErr and TranscribeErr
// describe a degraded completion; they are never returned as errors.
type Result struct {
	AudioURL      string
	Transcription string
	Duration      time.Duration
	Size          int
	Uploaded      bool
	Transcribed   bool
	UploadErr     error
	TranscribeErr error
}

// Option configures a Recorder
type Option func(*Recorder)

func WithUploader(u Uploader) Option       { return func(r *Recorder) { r.uploader = u } }
func WithTranscriber(t Transcriber) Option { return func(r *Recorder) { r.transcriber = t } }
func WithLogger(l zerolog.Logger) Option   { return func(r *Recorder) { r.logger = l } }

// WithTickInterval changes the elapsed timer resolution. Elapsed counts whole ticks of this interval.
func WithTickInterval(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.tick = d
		}
	}
}

// OnTick is called from the timer goroutine with the elapsed recording time
func OnTick(fn func(time.Duration)) Option { return func(r *Recorder) { r.onTick = fn } }

// OnComplete receives every finished recording
func OnComplete(fn func(Result)) Option { return func(r *Recorder) { r.onComplete = fn } }

// Recorder drives one microphone through idle, recording and processing.
type Recorder struct {
	mic         Microphone
	clips       LocalClips
	uploader    Uploader
	transcriber Transcriber
	logger      zerolog.Logger
	tick        time.Duration
	onTick      func(time.Duration)
	onComplete  func(Result)

	mu       sync.Mutex
	state    State
	closed   bool
	stream   Stream
	chunks   [][]byte
	ticks    int
	started  time.Time
	stopTick chan struct{}
	captured chan struct{}
	timerWG  sync.WaitGroup
	localRef string
}

// New creates an idle recorder
func New(mic Microphone, clips LocalClips, opts ...Option) *Recorder {
	r := &Recorder{
		mic:    mic,
		clips:  clips,
		logger: zerolog.Nop(),
		tick:   time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current lifecycle state
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Elapsed returns how long the current recording has been running
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.ticks) * r.tick
}

// Buffered returns how many bytes the current recording holds
func (r *Recorder) Buffered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.chunks {
		n += len(c)
	}
	return n
}

// Drained is closed once the current stream has no more audio to give, or
// immediately when nothing is recording
func (r *Recorder) Drained() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRecording || r.captured == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return r.captured
}

// Start acquires the microphone and begins buffering audio. A failure to open
// the device leaves the recorder idle.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if r.state != StateIdle {
		return ErrBusy
	}

	r.releaseLocalLocked()

	stream, err := r.mic.Open(ctx)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Microphone access failed")
		return fmt.Errorf("failed to open microphone: %w", err)
	}

	r.stream = stream
	r.chunks = nil
	r.ticks = 0
	r.started = time.Now()
	r.stopTick = make(chan struct{})
	r.captured = make(chan struct{})
	r.state = StateRecording

	go r.capture(stream, r.captured)
	r.timerWG.Add(1)
	go r.runTimer(r.stopTick)

	r.logger.Debug().Msg("Recording started")
	return nil
}

func (r *Recorder) capture(stream Stream, done chan struct{}) {
	defer close(done)
	buf := make([]byte, defaultChunkSize)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			r.mu.Lock()
			r.chunks = append(r.chunks, chunk)
			r.mu.Unlock()
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.logger.Debug().Err(err).Msg("Capture stopped")
			}
			return
		}
	}
}

func (r *Recorder) runTimer(stop chan struct{}) {
	defer r.timerWG.Done()
	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			r.ticks++
			elapsed := time.Duration(r.ticks) * r.tick
			fn := r.onTick
			r.mu.Unlock()
			if fn != nil {
				fn(elapsed)
			}
		}
	}
}

// halt stops the timer and the device and waits for buffered chunks. Callers hold no lock.
func (r *Recorder) halt(stream Stream, stopTick, captured chan struct{}) {
	close(stopTick)
	r.timerWG.Wait()
	if err := stream.Close(); err != nil {
		r.logger.Debug().Err(err).Msg("Failed to release microphone")
	}
	<-captured
}

// Stop ends the recording and processes the clip. The returned Result is also
// passed to the OnComplete callback.
func (r *Recorder) Stop(ctx context.Context) (Result, error) {
	r.mu.Lock()
	if r.state != StateRecording {
		r.mu.Unlock()
		return Result{}, ErrNotRecording
	}
	stream, stopTick, captured := r.stream, r.stopTick, r.captured
	r.state = StateProcessing
	r.mu.Unlock()

	r.halt(stream, stopTick, captured)

	r.mu.Lock()
	clip := Clip{Data: bytes.Join(r.chunks, nil), Filename: DefaultFilename, MimeType: DefaultMimeType}
	duration := time.Since(r.started)
	r.chunks = nil
	r.stream = nil
	r.mu.Unlock()

	result := r.process(ctx, clip)
	result.Duration = duration

	r.mu.Lock()
	r.state = StateIdle
	onComplete := r.onComplete
	r.mu.Unlock()

	if onComplete != nil {
		onComplete(result)
	}
	return result, nil
}

func (r *Recorder) process(ctx context.Context, clip Clip) Result {
	localRef := r.clips.Register(clip)
	result := Result{
		AudioURL:      localRef,
		Transcription: PlaceholderTranscription,
		Size:          len(clip.Data),
	}

	if r.uploader == nil {
		result.UploadErr = ErrNoUploader
	} else if url, err := r.uploader.Upload(ctx, clip); err != nil {
		r.logger.Info().Err(err).Msg("Upload failed, keeping local recording")
		result.UploadErr = err
	} else {
		result.AudioURL = url
		result.Uploaded = true
	}

	if !result.Uploaded {
		r.mu.Lock()
		if r.closed {
			r.clips.Release(localRef)
		} else {
			r.localRef = localRef
		}
		r.mu.Unlock()
		return result
	}
	r.clips.Release(localRef)

	if r.transcriber == nil {
		return result
	}
	text, err := r.transcriber.Transcribe(ctx, result.AudioURL)
	if err != nil {
		r.logger.Info().Err(err).Msg("Transcription failed, keeping placeholder")
		result.TranscribeErr = err
		return result
	}
	result.Transcription = text
	result.Transcribed = true
	return result
}

func (r *Recorder) releaseLocalLocked() {
	if r.localRef != "" {
		r.clips.Release(r.localRef)
		r.localRef = ""
	}
}

// Close abandons an active recording without processing it and releases the
// device and any local clip. The recorder cannot be started again.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	var stream Stream
	var stopTick, captured chan struct{}
	if r.state == StateRecording {
		stream, stopTick, captured = r.stream, r.stopTick, r.captured
		r.stream = nil
		r.state = StateIdle
	}
	r.releaseLocalLocked()
	r.mu.Unlock()

	if stream != nil {
		r.halt(stream, stopTick, captured)
		r.mu.Lock()
		r.chunks = nil
		r.mu.Unlock()
	}
	return nil
}

// FormatElapsed renders d as mm:ss
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
