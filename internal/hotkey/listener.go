package hotkey

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const evKey = 1 // EV_KEY from linux/input-event-codes.h

// inputEvent mirrors struct input_event on 64-bit Linux (24 bytes).
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Listener reads raw key events from evdev keyboard devices and feeds them
// to a Tracker. One goroutine per device; the tracker serializes internally.
type Listener struct {
	tracker *Tracker
	devices []string
	wg      sync.WaitGroup
}

// NewListener creates a listener over the given device paths. An empty list
// triggers auto-discovery at Start.
func NewListener(tracker *Tracker, devices []string) *Listener {
	return &Listener{tracker: tracker, devices: devices}
}

// Start opens the keyboard devices and begins reading. It fails only when no
// device at all can be opened; individual device errors are logged and
// skipped. Reads stop when ctx is cancelled.
func (l *Listener) Start(ctx context.Context) error {
	devices := l.devices
	if len(devices) == 0 {
		devices = discoverKeyboards()
	}
	if len(devices) == 0 {
		return fmt.Errorf("no keyboard input devices found under /dev/input")
	}

	opened := 0
	for _, dev := range devices {
		f, err := os.Open(dev)
		if err != nil {
			log.Printf("Hotkey: cannot open %s: %v", dev, err)
			continue
		}
		opened++
		log.Printf("Hotkey: listening on %s", dev)

		// Closing the fd is what unblocks the Read below. The closer
		// also exits when the read loop dies on its own (device error,
		// unplug), not just at shutdown.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
			case <-done:
			}
			f.Close()
		}()

		l.wg.Add(1)
		go func() {
			defer close(done)
			l.readLoop(ctx, f)
		}()
	}

	if opened == 0 {
		return fmt.Errorf("no keyboard input devices could be opened (is the user in the input group?)")
	}
	return nil
}

// Wait blocks until all device readers have exited.
func (l *Listener) Wait() {
	l.wg.Wait()
}

func (l *Listener) readLoop(ctx context.Context, f *os.File) {
	defer l.wg.Done()

	buf := make([]byte, binary.Size(inputEvent{}))
	for {
		if _, err := io.ReadFull(f, buf); err != nil {
			if ctx.Err() == nil && !errors.Is(err, os.ErrClosed) {
				log.Printf("Hotkey: read %s: %v", f.Name(), err)
			}
			return
		}

		var ev inputEvent
		if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &ev); err != nil {
			log.Printf("Hotkey: decode event: %v", err)
			return
		}

		if ev.Type != evKey {
			continue
		}
		switch ev.Value {
		case 0:
			l.tracker.Handle(Key(ev.Code), false)
		case 1, 2: // press and auto-repeat both count as held
			l.tracker.Handle(Key(ev.Code), true)
		}
	}
}

// discoverKeyboards returns the evdev nodes udev marks as keyboards.
func discoverKeyboards() []string {
	var devices []string
	for _, dir := range []string{"/dev/input/by-path", "/dev/input/by-id"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !strings.HasSuffix(e.Name(), "-kbd") {
				continue
			}
			resolved, err := filepath.EvalSymlinks(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			devices = append(devices, resolved)
		}
		if len(devices) > 0 {
			return devices
		}
	}
	return devices
}
