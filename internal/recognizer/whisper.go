package recognizer

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// WhisperEngine transcribes locally by shelling out to whisper-cli. It is a
// batch engine: Feed only accumulates audio and never completes an
// utterance; the whole transcript arrives at Finalize.
type WhisperEngine struct {
	modelPath  string
	language   string
	threads    int
	sampleRate int

	mu     sync.Mutex
	buffer []byte
}

func NewWhisperEngine(modelPath, language string, threads, sampleRate int) *WhisperEngine {
	return &WhisperEngine{
		modelPath:  modelPath,
		language:   language,
		threads:    threads,
		sampleRate: sampleRate,
	}
}

func (e *WhisperEngine) Feed(ctx context.Context, frame []byte) (Result, error) {
	e.mu.Lock()
	e.buffer = append(e.buffer, frame...)
	e.mu.Unlock()
	return Result{}, nil
}

func (e *WhisperEngine) Finalize(ctx context.Context) (string, error) {
	e.mu.Lock()
	audioData := e.buffer
	e.buffer = nil
	e.mu.Unlock()

	if len(audioData) == 0 {
		return "", nil
	}

	// check model file exists
	if _, err := os.Stat(e.modelPath); os.IsNotExist(err) {
		return "", fmt.Errorf("model file not found: %s", e.modelPath)
	}

	// check whisper-cli exists
	whisperPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return "", fmt.Errorf("whisper-cli not found: install whisper.cpp first")
	}

	wavData := encodeWAV(audioData, e.sampleRate, 1)

	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("voxkey-%d.wav", time.Now().UnixNano()))
	if err := os.WriteFile(tmpFile, wavData, 0o600); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	defer os.Remove(tmpFile)

	// use whisper-cpp auto if unspecified
	lang := e.language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"-m", e.modelPath,
		"-l", lang,
		"-nt", // no timestamps
		"-np", // no progress
		"-f", tmpFile,
	}
	if e.threads > 0 {
		args = append(args, "-t", fmt.Sprintf("%d", e.threads))
	}

	cmd := exec.CommandContext(ctx, whisperPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err = cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("whisper: command failed after %v: %v\nstderr: %s", duration, err, stderr.String())
		return "", fmt.Errorf("whisper-cli failed: %w", err)
	}

	// whisper-cli prints the transcription directly with -nt
	text := strings.TrimSpace(stdout.String())

	log.Printf("whisper: transcribed %d bytes in %v: %q", len(audioData), duration, text)
	return text, nil
}

func (e *WhisperEngine) Reset(ctx context.Context) error {
	e.mu.Lock()
	e.buffer = nil
	e.mu.Unlock()
	return nil
}

func (e *WhisperEngine) Close() error {
	return e.Reset(context.Background())
}

// BufferedBytes reports how much audio is waiting for Finalize.
func (e *WhisperEngine) BufferedBytes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.buffer)
}
