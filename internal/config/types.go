package config

import "time"

type Config struct {
	Hotkey        HotkeyConfig        `toml:"hotkey"`
	Recording     RecordingConfig     `toml:"recording"`
	Recognizer    RecognizerConfig    `toml:"recognizer"`
	Injection     InjectionConfig     `toml:"injection"`
	Notifications NotificationsConfig `toml:"notifications"`
}

// HotkeyConfig names the global toggle combo. Devices is an optional list of
// evdev nodes to listen on; empty means auto-discovery.
type HotkeyConfig struct {
	Modifiers []string `toml:"modifiers"`
	Key       string   `toml:"key"`
	Devices   []string `toml:"devices"`
}

type RecordingConfig struct {
	SampleRate        int    `toml:"sample_rate"`
	Channels          int    `toml:"channels"`
	Format            string `toml:"format"`
	FrameSize         int    `toml:"frame_size"` // samples per frame
	Device            string `toml:"device"`
	ChannelBufferSize int    `toml:"channel_buffer_size"`
}

// RecognizerConfig selects and configures the speech engine.
//
// Engines: "vosk" (streaming, websocket server), "whisper" (batch, local
// whisper-cli), "openai" (batch, cloud API).
type RecognizerConfig struct {
	Engine    string `toml:"engine"`
	Streaming bool   `toml:"streaming"`
	ServerURL string `toml:"server_url"` // vosk
	ModelPath string `toml:"model_path"` // whisper
	Language  string `toml:"language"`
	Threads   int    `toml:"threads"` // whisper CPU threads (0 = auto: NumCPU-1)
	APIKey    string `toml:"api_key"` // openai
	Model     string `toml:"model"`   // openai
}

type InjectionConfig struct {
	Backends         []string      `toml:"backends"`
	KeyDelay         time.Duration `toml:"key_delay"` // pacing between injection instructions
	KeyTimeout       time.Duration `toml:"key_timeout"`
	ClipboardTimeout time.Duration `toml:"clipboard_timeout"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	Type    string `toml:"type"` // "desktop", "log", "none"
}
