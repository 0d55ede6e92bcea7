package injection

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Key codes from linux/input-event-codes.h, as ydotool expects them.
const (
	codeLeftCtrl  = "29"
	codeV         = "47"
	codeBackspace = "14"
)

type ydotoolBackend struct{}

func (y *ydotoolBackend) Name() string {
	return "ydotool"
}

func (y *ydotoolBackend) Available() error {
	if _, err := exec.LookPath("ydotool"); err != nil {
		return fmt.Errorf("ydotool not found: %w (install ydotool package)", err)
	}

	// Only check socket if ydotoold exists
	if _, err := exec.LookPath("ydotoold"); err == nil {
		socketPath := y.getSocketPath()
		if socketPath == "" {
			return fmt.Errorf("ydotoold socket not found - ensure ydotoold is running")
		}

		// ydotoold v1.0.4+ uses SOCK_DGRAM (unixgram) sockets.
		// Try unixgram first, then fall back to stream for older versions.
		conn, err := net.Dial("unixgram", socketPath)
		if err != nil {
			conn, err = net.DialTimeout("unix", socketPath, 500*time.Millisecond)
		}
		if err != nil {
			return fmt.Errorf("ydotoold not responding at %s: %w", socketPath, err)
		}
		conn.Close()
	}

	return nil
}

func (y *ydotoolBackend) getSocketPath() string {
	// Check YDOTOOL_SOCKET env var first
	if sock := os.Getenv("YDOTOOL_SOCKET"); sock != "" {
		if _, err := os.Stat(sock); err == nil {
			return sock
		}
	}

	// Check common locations
	paths := []string{
		"/run/user/" + fmt.Sprint(os.Getuid()) + "/.ydotool_socket",
		"/tmp/.ydotool_socket",
	}

	// Also check XDG_RUNTIME_DIR
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		paths = append([]string{filepath.Join(xdg, ".ydotool_socket")}, paths...)
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

func (y *ydotoolBackend) Paste(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ydotool key takes code:state pairs; 1 is press, 0 is release.
	cmd := exec.CommandContext(ctx, "ydotool", "key",
		codeLeftCtrl+":1", codeV+":1", codeV+":0", codeLeftCtrl+":0")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ydotool paste failed: %w", err)
	}
	return nil
}

func (y *ydotoolBackend) Backspace(ctx context.Context, count int, timeout time.Duration) error {
	if count <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := make([]string, 0, count*2+1)
	args = append(args, "key")
	for i := 0; i < count; i++ {
		args = append(args, codeBackspace+":1", codeBackspace+":0")
	}

	cmd := exec.CommandContext(ctx, "ydotool", args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ydotool backspace failed: %w", err)
	}
	return nil
}
