package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxkey/voxkey/internal/recognizer"
	"github.com/voxkey/voxkey/internal/recording"
)

type Status string

const (
	Idle      Status = "idle"
	Recording Status = "recording"
)

// Event is one normalized recognition result. Final events carry a
// committed utterance transcript; non-final events carry the revisable
// hypothesis for the utterance in progress.
type Event struct {
	Text  string
	Final bool
}

// flushTimeout bounds the final recognition pass at session end. Detached
// from the session context so shutdown still flushes.
const flushTimeout = 30 * time.Second

// Recorder is the audio source the session pumps frames from.
// *recording.Recorder satisfies it.
type Recorder interface {
	Start(ctx context.Context) (<-chan recording.AudioFrame, <-chan error, error)
	Stop() error
	Wait()
}

type Config struct {
	Streaming       bool
	EventBufferSize int
}

func DefaultConfig() Config {
	return Config{
		Streaming: true,
		// Small on purpose: typing is the rate limiter, so the
		// producer blocks instead of racing ahead of the screen.
		EventBufferSize: 8,
	}
}

// Session owns one recording: the capture pump, the recognizer feed and the
// event stream. It lives from toggle-on to toggle-off and is not reusable.
type Session struct {
	recorder  Recorder
	engine    recognizer.Engine
	config    Config
	recording atomic.Bool

	events chan Event
	wg     sync.WaitGroup
}

func New(recorder Recorder, engine recognizer.Engine, config Config) *Session {
	if config.EventBufferSize <= 0 {
		config.EventBufferSize = DefaultConfig().EventBufferSize
	}
	return &Session{
		recorder: recorder,
		engine:   engine,
		config:   config,
		events:   make(chan Event, config.EventBufferSize),
	}
}

func (s *Session) Status() Status {
	if s.recording.Load() {
		return Recording
	}
	return Idle
}

// Events returns the ordered recognition event stream. The channel closes
// only after the final flush has run, so a consumer draining it to the end
// has seen the complete transcript.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Start opens the audio source and launches the session worker. On open
// failure the session never enters Recording and the event channel is
// closed immediately.
func (s *Session) Start(ctx context.Context) error {
	if s.recording.Load() {
		return fmt.Errorf("session already recording")
	}

	frameCh, errCh, err := s.recorder.Start(ctx)
	if err != nil {
		close(s.events)
		return fmt.Errorf("open audio source: %w", err)
	}

	s.recording.Store(true)
	s.wg.Add(1)
	go s.run(ctx, frameCh, errCh)

	return nil
}

// Stop requests a cooperative shutdown: the frame in flight is still
// processed, then the pump exits and the final flush runs. Safe to call
// more than once.
func (s *Session) Stop() {
	_ = s.recorder.Stop()
}

// Wait blocks until the worker has flushed, reset the engine and closed the
// event channel.
func (s *Session) Wait() {
	s.wg.Wait()
	s.recorder.Wait()
}

func (s *Session) run(ctx context.Context, frameCh <-chan recording.AudioFrame, errCh <-chan error) {
	defer func() {
		s.flush()
		s.recording.Store(false)
		close(s.events)
		s.wg.Done()
	}()

	lastPartial := ""

	for frame := range frameCh {
		res, err := s.engine.Feed(ctx, frame.Data)
		if err != nil {
			// Recognition failure ends the session; the deferred
			// flush still salvages whatever text is available.
			log.Printf("Session: recognition error: %v", err)
			s.Stop()
			return
		}

		if !s.config.Streaming {
			continue
		}

		if res.Complete {
			if res.Text != "" {
				s.events <- Event{Text: res.Text, Final: true}
			}
			lastPartial = ""
			continue
		}

		// Identical consecutive partials are suppressed: downstream
		// would delete and retype the same text for nothing.
		if res.Text != "" && res.Text != lastPartial {
			s.events <- Event{Text: res.Text}
			lastPartial = res.Text
		}
	}

	select {
	case err := <-errCh:
		if err != nil {
			log.Printf("Session: audio error: %v", err)
		}
	default:
	}
}

// flush drains pending audio into a final recognition pass and resets the
// engine so the next session starts from a clean utterance state.
func (s *Session) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	text, err := s.engine.Finalize(ctx)
	if err != nil {
		log.Printf("Session: final flush failed: %v", err)
	} else if text != "" {
		s.events <- Event{Text: text, Final: true}
	}

	if err := s.engine.Reset(ctx); err != nil {
		log.Printf("Session: engine reset failed: %v", err)
	}
}
