package injection

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if len(config.Backends) == 0 {
		t.Fatal("default config should have backends")
	}
	if config.Backends[0] != "wtype" {
		t.Errorf("first default backend should be wtype, got %s", config.Backends[0])
	}
	if config.KeyTimeout != 5*time.Second {
		t.Errorf("KeyTimeout = %v, want 5s", config.KeyTimeout)
	}
	if config.ClipboardTimeout != 3*time.Second {
		t.Errorf("ClipboardTimeout = %v, want 3s", config.ClipboardTimeout)
	}
}

func TestNewInjectorRejectsUnknownBackend(t *testing.T) {
	config := DefaultConfig()
	config.Backends = []string{"xdotool"}

	if _, err := NewInjector(config); err == nil {
		t.Error("NewInjector should reject unknown backends")
	}
}

func TestBackspaceArgs(t *testing.T) {
	t.Run("three characters", func(t *testing.T) {
		args := backspaceArgs(3)
		if len(args) != 6 {
			t.Fatalf("expected 6 args for 3 backspaces, got %d", len(args))
		}
		for i := 0; i < len(args); i += 2 {
			if args[i] != "-k" || args[i+1] != "BackSpace" {
				t.Errorf("args[%d:%d] = %q %q, want -k BackSpace", i, i+2, args[i], args[i+1])
			}
		}
	})

	t.Run("zero characters", func(t *testing.T) {
		if args := backspaceArgs(0); len(args) != 0 {
			t.Errorf("expected no args for zero backspaces, got %v", args)
		}
	})
}

func TestBackendNames(t *testing.T) {
	if name := (&wtypeBackend{}).Name(); name != "wtype" {
		t.Errorf("wtype backend name = %q", name)
	}
	if name := (&ydotoolBackend{}).Name(); name != "ydotool" {
		t.Errorf("ydotool backend name = %q", name)
	}
}
