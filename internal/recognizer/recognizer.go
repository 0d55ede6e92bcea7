package recognizer

import (
	"context"
	"fmt"
)

// Result is the engine's verdict for one audio frame. Complete marks the end
// of an utterance: Text is then the committed transcript for it and the
// engine's utterance state is implicitly reset. Otherwise Text is the
// current best-guess hypothesis, revisable by later frames.
type Result struct {
	Complete bool
	Text     string
}

// Engine is the adapter over an opaque speech recognizer. Implementations
// consume raw PCM frames and produce text. Batch-only engines accumulate
// audio in Feed and only produce text at Finalize.
type Engine interface {
	// Feed pushes one PCM frame into the recognizer.
	Feed(ctx context.Context, frame []byte) (Result, error)

	// Finalize drains pending audio and returns the trailing transcript,
	// if any. After Finalize the engine is in a clean utterance state.
	Finalize(ctx context.Context) (string, error)

	// Reset discards any utterance in progress without producing text.
	Reset(ctx context.Context) error

	// Close releases engine resources.
	Close() error
}

// Config selects and parameterizes an engine.
type Config struct {
	Engine     string
	ServerURL  string
	ModelPath  string
	Language   string
	Threads    int
	APIKey     string
	Model      string
	SampleRate int
}

// New creates the configured engine.
func New(cfg Config) (Engine, error) {
	switch cfg.Engine {
	case "vosk":
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("vosk engine requires a server URL")
		}
		return NewVoskEngine(cfg.ServerURL, cfg.SampleRate), nil

	case "whisper":
		if cfg.ModelPath == "" {
			return nil, fmt.Errorf("whisper engine requires a model path")
		}
		return NewWhisperEngine(cfg.ModelPath, cfg.Language, cfg.Threads, cfg.SampleRate), nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai engine requires an API key")
		}
		return NewOpenAIEngine(cfg.APIKey, cfg.Model, cfg.Language, cfg.SampleRate), nil

	default:
		return nil, fmt.Errorf("unsupported engine: %s", cfg.Engine)
	}
}
