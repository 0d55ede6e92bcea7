package injection

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Injector performs text injection primitives against the focused window.
// Calls block until the underlying tool finishes; callers serialize them.
type Injector interface {
	SetClipboard(ctx context.Context, text string) error
	Paste(ctx context.Context) error
	Backspace(ctx context.Context, count int) error
}

// Backend issues synthetic key events (paste chord, backspaces).
type Backend interface {
	Name() string
	Available() error
	Paste(ctx context.Context, timeout time.Duration) error
	Backspace(ctx context.Context, count int, timeout time.Duration) error
}

// Config for text injection
type Config struct {
	Backends         []string      // preference order: "wtype", "ydotool"
	KeyTimeout       time.Duration // timeout for key-event commands
	ClipboardTimeout time.Duration // timeout for clipboard operations
}

// DefaultConfig returns sensible defaults for injection
func DefaultConfig() Config {
	return Config{
		Backends:         []string{"wtype", "ydotool"},
		KeyTimeout:       5 * time.Second,
		ClipboardTimeout: 3 * time.Second,
	}
}

type injector struct {
	config   Config
	backends []Backend
}

// NewInjector creates an injector with the configured backend chain. The
// first available backend handles key events; later entries are fallbacks.
func NewInjector(config Config) (Injector, error) {
	if err := checkClipboardAvailable(); err != nil {
		return nil, fmt.Errorf("clipboard tools not available: %w", err)
	}

	var backends []Backend
	for _, name := range config.Backends {
		switch name {
		case "wtype":
			backends = append(backends, &wtypeBackend{})
		case "ydotool":
			backends = append(backends, &ydotoolBackend{})
		default:
			return nil, fmt.Errorf("unsupported injection backend: %s", name)
		}
	}
	if len(backends) == 0 {
		return nil, fmt.Errorf("no injection backends configured")
	}

	return &injector{config: config, backends: backends}, nil
}

func NewDefaultInjector() (Injector, error) {
	return NewInjector(DefaultConfig())
}

func (i *injector) SetClipboard(ctx context.Context, text string) error {
	return setClipboard(ctx, text, i.config.ClipboardTimeout)
}

func (i *injector) Paste(ctx context.Context) error {
	return i.eachBackend("paste", func(b Backend) error {
		return b.Paste(ctx, i.config.KeyTimeout)
	})
}

func (i *injector) Backspace(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}
	return i.eachBackend("backspace", func(b Backend) error {
		return b.Backspace(ctx, count, i.config.KeyTimeout)
	})
}

// eachBackend tries backends in preference order until one succeeds.
func (i *injector) eachBackend(op string, fn func(Backend) error) error {
	var lastErr error
	for _, b := range i.backends {
		if err := b.Available(); err != nil {
			lastErr = err
			continue
		}
		if err := fn(b); err != nil {
			log.Printf("Injection: %s via %s failed: %v", op, b.Name(), err)
			lastErr = err
			continue
		}
		return nil
	}
	return fmt.Errorf("all injection backends failed for %s: %w", op, lastErr)
}

// CheckAvailable reports whether at least one configured backend and the
// clipboard tools are usable. Used for startup dependency checks.
func CheckAvailable(config Config) error {
	if err := checkClipboardAvailable(); err != nil {
		return err
	}

	var lastErr error
	for _, name := range config.Backends {
		var b Backend
		switch name {
		case "wtype":
			b = &wtypeBackend{}
		case "ydotool":
			b = &ydotoolBackend{}
		default:
			continue
		}
		if err := b.Available(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no injection backends configured")
	}
	return fmt.Errorf("no usable injection backend: %w", lastErr)
}
