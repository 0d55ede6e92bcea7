package config

import (
	"fmt"

	"github.com/voxkey/voxkey/internal/hotkey"
)

var knownEngines = map[string]bool{
	"vosk":    true,
	"whisper": true,
	"openai":  true,
}

// streamingEngines produce partial hypotheses per frame. Batch-only engines
// accumulate audio and transcribe once at session end.
var streamingEngines = map[string]bool{
	"vosk": true,
}

var knownBackends = map[string]bool{
	"wtype":   true,
	"ydotool": true,
}

var knownNotificationTypes = map[string]bool{
	"desktop": true,
	"log":     true,
	"none":    true,
	"":        true,
}

func (c *Config) Validate() error {
	if _, err := hotkey.ParseCombo(c.Hotkey.Modifiers, c.Hotkey.Key); err != nil {
		return fmt.Errorf("hotkey: %w", err)
	}

	if c.Recording.SampleRate <= 0 {
		return fmt.Errorf("recording: invalid sample_rate: %d", c.Recording.SampleRate)
	}
	if c.Recording.Channels != 1 {
		return fmt.Errorf("recording: channels must be 1 (mono), got %d", c.Recording.Channels)
	}
	if c.Recording.FrameSize <= 0 {
		return fmt.Errorf("recording: invalid frame_size: %d", c.Recording.FrameSize)
	}
	if c.Recording.ChannelBufferSize <= 0 {
		return fmt.Errorf("recording: invalid channel_buffer_size: %d", c.Recording.ChannelBufferSize)
	}

	if !knownEngines[c.Recognizer.Engine] {
		return fmt.Errorf("recognizer: unknown engine %q (use vosk, whisper or openai)", c.Recognizer.Engine)
	}
	if c.Recognizer.Streaming && !streamingEngines[c.Recognizer.Engine] {
		return fmt.Errorf("recognizer: engine %q does not support streaming mode", c.Recognizer.Engine)
	}

	switch c.Recognizer.Engine {
	case "vosk":
		if c.Recognizer.ServerURL == "" {
			return fmt.Errorf("recognizer: server_url required for the vosk engine")
		}
	case "whisper":
		if c.Recognizer.ModelPath == "" {
			return fmt.Errorf("recognizer: model_path required for the whisper engine")
		}
	case "openai":
		if c.Recognizer.APIKey == "" {
			return fmt.Errorf("recognizer: api_key required for the openai engine")
		}
	}

	if len(c.Injection.Backends) == 0 {
		return fmt.Errorf("injection: at least one backend required")
	}
	for _, b := range c.Injection.Backends {
		if !knownBackends[b] {
			return fmt.Errorf("injection: unknown backend %q (use wtype or ydotool)", b)
		}
	}
	if c.Injection.KeyDelay < 0 {
		return fmt.Errorf("injection: key_delay must not be negative")
	}

	if !knownNotificationTypes[c.Notifications.Type] {
		return fmt.Errorf("notifications: unknown type %q (use desktop, log or none)", c.Notifications.Type)
	}

	return nil
}

// Combo parses the configured hotkey. Call Validate first; this panics on a
// combo that failed validation.
func (c *Config) Combo() hotkey.Combo {
	combo, err := hotkey.ParseCombo(c.Hotkey.Modifiers, c.Hotkey.Key)
	if err != nil {
		panic(fmt.Sprintf("config: invalid hotkey after validation: %v", err))
	}
	return combo
}
