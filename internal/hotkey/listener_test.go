package hotkey

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func writeDeviceFile(t *testing.T, events []inputEvent) string {
	t.Helper()
	var buf bytes.Buffer
	for _, ev := range events {
		if err := binary.Write(&buf, binary.LittleEndian, ev); err != nil {
			t.Fatalf("encode event: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "event0")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("write device file: %v", err)
	}
	return path
}

func TestListenerFeedsTracker(t *testing.T) {
	dev := writeDeviceFile(t, []inputEvent{
		{Type: evKey, Code: 57, Value: 1}, // space down
		{Type: evKey, Code: 57, Value: 0}, // space up
	})

	combo, err := ParseCombo(nil, "space")
	if err != nil {
		t.Fatalf("ParseCombo() error: %v", err)
	}

	fired := make(chan struct{}, 1)
	l := NewListener(NewTracker(combo, func() { fired <- struct{}{} }), []string{dev})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := l.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	l.Wait()

	select {
	case <-fired:
	default:
		t.Error("combo press in the event stream did not fire the toggle")
	}
}

func TestListenerReaderExitsAtStreamEnd(t *testing.T) {
	dev := writeDeviceFile(t, []inputEvent{
		{Type: evKey, Code: 30, Value: 1}, // 'a', not part of the combo
	})

	combo, err := ParseCombo([]string{"ctrl"}, "space")
	if err != nil {
		t.Fatalf("ParseCombo() error: %v", err)
	}

	before := runtime.NumGoroutine()

	// The context stays live: the reader and its closer must both exit
	// on their own when the device stream ends.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewListener(NewTracker(combo, func() {}), []string{dev})
	if err := l.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	waitDone := make(chan struct{})
	go func() {
		l.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("reader did not exit at end of device stream")
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= before {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("goroutines leaked after reader exit: %d, started with %d", runtime.NumGoroutine(), before)
}
