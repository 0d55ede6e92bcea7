package injection

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

type wtypeBackend struct{}

func (w *wtypeBackend) Name() string {
	return "wtype"
}

func (w *wtypeBackend) Available() error {
	if _, err := exec.LookPath("wtype"); err != nil {
		return fmt.Errorf("wtype not found: %w (install wtype package)", err)
	}
	return nil
}

func (w *wtypeBackend) Paste(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Ctrl held, v tapped, Ctrl released.
	cmd := exec.CommandContext(ctx, "wtype", "-M", "ctrl", "-k", "v", "-m", "ctrl")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wtype paste failed: %w", err)
	}
	return nil
}

func (w *wtypeBackend) Backspace(ctx context.Context, count int, timeout time.Duration) error {
	if count <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "wtype", backspaceArgs(count)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wtype backspace failed: %w", err)
	}
	return nil
}

// backspaceArgs builds one wtype invocation deleting count characters.
func backspaceArgs(count int) []string {
	args := make([]string, 0, count*2)
	for i := 0; i < count; i++ {
		args = append(args, "-k", "BackSpace")
	}
	return args
}
