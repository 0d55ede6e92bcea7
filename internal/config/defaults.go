package config

import "time"

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Hotkey: HotkeyConfig{
			Modifiers: []string{"ctrl", "shift"},
			Key:       "space",
		},
		Recording: RecordingConfig{
			SampleRate:        16000,
			Channels:          1,
			Format:            "s16le",
			FrameSize:         4000,
			Device:            "",
			ChannelBufferSize: 20,
		},
		Recognizer: RecognizerConfig{
			Engine:    "vosk",
			Streaming: true,
			ServerURL: "ws://127.0.0.1:2700",
			Threads:   0,
			Model:     "whisper-1",
		},
		Injection: InjectionConfig{
			Backends:         []string{"wtype", "ydotool"},
			KeyDelay:         30 * time.Millisecond,
			KeyTimeout:       5 * time.Second,
			ClipboardTimeout: 3 * time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Type:    "desktop",
		},
	}
}
