package recognizer

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"
)

func TestWhisperEngineAccumulates(t *testing.T) {
	engine := NewWhisperEngine("/tmp/model.bin", "", 0, 16000)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		res, err := engine.Feed(ctx, make([]byte, 8000))
		if err != nil {
			t.Fatalf("Feed failed: %v", err)
		}
		// A batch engine never completes an utterance mid-stream.
		if res.Complete || res.Text != "" {
			t.Errorf("batch Feed result = %+v, want empty", res)
		}
	}

	if got := engine.BufferedBytes(); got != 24000 {
		t.Errorf("BufferedBytes = %d, want 24000", got)
	}
}

func TestWhisperEngineReset(t *testing.T) {
	engine := NewWhisperEngine("/tmp/model.bin", "", 0, 16000)
	ctx := context.Background()

	engine.Feed(ctx, make([]byte, 8000))
	if err := engine.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if got := engine.BufferedBytes(); got != 0 {
		t.Errorf("BufferedBytes after Reset = %d, want 0", got)
	}
}

func TestWhisperEngineFinalizeEmpty(t *testing.T) {
	engine := NewWhisperEngine("/tmp/model.bin", "", 0, 16000)

	text, err := engine.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize with no audio should succeed: %v", err)
	}
	if text != "" {
		t.Errorf("Finalize with no audio = %q, want empty", text)
	}
}

func TestWhisperEngineMissingModel(t *testing.T) {
	engine := NewWhisperEngine(filepath.Join(t.TempDir(), "missing.bin"), "", 0, 16000)
	ctx := context.Background()

	engine.Feed(ctx, make([]byte, 8000))

	_, err := engine.Finalize(ctx)
	if err == nil {
		t.Fatal("Finalize should fail when the model file is missing")
	}
	if !strings.Contains(err.Error(), "model file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewEngineFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "vosk",
			cfg:     Config{Engine: "vosk", ServerURL: "ws://127.0.0.1:2700", SampleRate: 16000},
			wantErr: false,
		},
		{
			name:    "vosk without url",
			cfg:     Config{Engine: "vosk"},
			wantErr: true,
		},
		{
			name:    "whisper",
			cfg:     Config{Engine: "whisper", ModelPath: "/m.bin", SampleRate: 16000},
			wantErr: false,
		},
		{
			name:    "whisper without model",
			cfg:     Config{Engine: "whisper"},
			wantErr: true,
		},
		{
			name:    "openai",
			cfg:     Config{Engine: "openai", APIKey: "sk-test", SampleRate: 16000},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Engine: "openai"},
			wantErr: true,
		},
		{
			name:    "unknown engine",
			cfg:     Config{Engine: "kaldi"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && engine == nil {
				t.Error("New() returned nil engine without error")
			}
			if engine != nil {
				engine.Close()
			}
		})
	}
}

func TestEncodeWAV(t *testing.T) {
	pcm := make([]byte, 1600)
	wav := encodeWAV(pcm, 16000, 1)

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatal("missing RIFF/WAVE markers")
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Errorf("sample rate in header = %d, want 16000", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size in header = %d, want %d", got, len(pcm))
	}
	if len(wav) != 44+len(pcm) {
		t.Errorf("wav length = %d, want %d", len(wav), 44+len(pcm))
	}
}
