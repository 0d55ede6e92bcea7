package recognizer

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIEngine transcribes through the OpenAI audio transcription API.
// Batch-only: audio accumulates in Feed and is sent as one WAV at Finalize.
type OpenAIEngine struct {
	client     *openai.Client
	model      string
	language   string
	sampleRate int

	mu     sync.Mutex
	buffer []byte
}

func NewOpenAIEngine(apiKey, model, language string, sampleRate int) *OpenAIEngine {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAIEngine{
		client:     openai.NewClient(apiKey),
		model:      model,
		language:   language,
		sampleRate: sampleRate,
	}
}

func (e *OpenAIEngine) Feed(ctx context.Context, frame []byte) (Result, error) {
	e.mu.Lock()
	e.buffer = append(e.buffer, frame...)
	e.mu.Unlock()
	return Result{}, nil
}

func (e *OpenAIEngine) Finalize(ctx context.Context) (string, error) {
	e.mu.Lock()
	audioData := e.buffer
	e.buffer = nil
	e.mu.Unlock()

	if len(audioData) == 0 {
		return "", nil
	}

	wavData := encodeWAV(audioData, e.sampleRate, 1)

	req := openai.AudioRequest{
		Model:    e.model,
		Reader:   bytes.NewReader(wavData),
		FilePath: "audio.wav",
		Language: e.language,
	}

	start := time.Now()
	resp, err := e.client.CreateTranscription(ctx, req)
	duration := time.Since(start)

	if err != nil {
		log.Printf("openai: transcription failed after %v: %v", duration, err)
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	log.Printf("openai: transcribed %d bytes in %v: %q", len(audioData), duration, text)
	return text, nil
}

func (e *OpenAIEngine) Reset(ctx context.Context) error {
	e.mu.Lock()
	e.buffer = nil
	e.mu.Unlock()
	return nil
}

func (e *OpenAIEngine) Close() error {
	return e.Reset(context.Background())
}
