package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/voxkey/voxkey/internal/bus"
	"github.com/voxkey/voxkey/internal/config"
	"github.com/voxkey/voxkey/internal/hotkey"
	"github.com/voxkey/voxkey/internal/injection"
	"github.com/voxkey/voxkey/internal/notify"
	"github.com/voxkey/voxkey/internal/recognizer"
	"github.com/voxkey/voxkey/internal/recording"
	"github.com/voxkey/voxkey/internal/session"
	"github.com/voxkey/voxkey/internal/typist"
)

type Status string

const (
	Idle         Status = "idle"
	Recording    Status = "recording"
	Transcribing Status = "transcribing"
)

// Daemon owns the control socket, the global hotkey listener and at most
// one live dictation session. Toggling while Idle starts a session;
// toggling while Recording stops it and lets it flush. Toggle requests are
// queued and handled by one loop, so sessions and their writers are
// strictly sequential: a new session never starts until the previous
// writer has finished typing.
type Daemon struct {
	manager  *config.Manager
	notifier notify.Notifier

	ctx    context.Context
	cancel context.CancelFunc

	toggleCh chan struct{}

	// construction seams, replaced by fakes in tests
	newEngine   func(recognizer.Config) (recognizer.Engine, error)
	newRecorder func(recording.Config) session.Recorder
	newInjector func(injection.Config) (injection.Injector, error)

	mu        sync.Mutex
	sess      *session.Session
	streaming bool
	// writerDone closes when the current session's writer has drained.
	writerDone chan struct{}

	// flushing counts sessions whose writer has not drained yet. A
	// stopped session stays counted until its final text is typed.
	flushing atomic.Int32
	wg       sync.WaitGroup
}

func New(manager *config.Manager) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		manager:   manager,
		notifier:  pickNotifier(manager.GetConfig()),
		ctx:       ctx,
		cancel:    cancel,
		toggleCh:  make(chan struct{}, 8),
		newEngine: recognizer.New,
		newRecorder: func(cfg recording.Config) session.Recorder {
			return recording.NewRecorder(cfg)
		},
		newInjector: injection.NewInjector,
	}
}

func pickNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.Notifications.Enabled {
		return notify.Nop{}
	}
	switch cfg.Notifications.Type {
	case "log":
		return notify.Log{}
	case "none":
		return notify.Nop{}
	default:
		return notify.Desktop{}
	}
}

func (d *Daemon) status() Status {
	d.mu.Lock()
	recording := d.sess != nil
	d.mu.Unlock()

	if recording {
		return Recording
	}
	if d.flushing.Load() > 0 {
		return Transcribing
	}
	return Idle
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Config watching disabled: %v", err)
	}
	defer d.manager.Stop()

	cfg := d.manager.GetConfig()
	combo := cfg.Combo()
	listener := hotkey.NewListener(hotkey.NewTracker(combo, d.toggle), cfg.Hotkey.Devices)
	if err := listener.Start(d.ctx); err != nil {
		// The socket toggle still works, so a missing evdev grab is a
		// degradation rather than a startup failure.
		log.Printf("Hotkey listener unavailable: %v", err)
		log.Printf("Use 'voxkey toggle' to start and stop dictation")
	}

	d.wg.Add(1)
	go d.toggleLoop()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	go d.notifier.Ready(combo.String())
	log.Printf("Daemon started, listening on socket (hotkey %s)", combo)

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Shutdown requested")
				d.shutdown(listener)
				return nil
			}
			log.Printf("Accept error: %v", err)
			d.shutdown(listener)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

// shutdown stops the live session, waits for its flush to finish typing
// and for the device readers to exit.
func (d *Daemon) shutdown(listener *hotkey.Listener) {
	d.cancel()

	d.mu.Lock()
	if d.sess != nil {
		d.stopLocked()
	}
	d.mu.Unlock()

	d.wg.Wait()
	listener.Wait()
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case 't':
		d.toggle()
		fmt.Fprint(c, "OK toggled\n")
	case 's':
		fmt.Fprintf(c, "STATUS status=%s\n", d.status())
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}

// toggle queues a toggle request and returns immediately. Both trigger
// paths (evdev read thread, socket handlers) only signal; the toggle loop
// does the actual starting and stopping.
func (d *Daemon) toggle() {
	select {
	case d.toggleCh <- struct{}{}:
	default:
		log.Printf("Toggle queue full, dropping request")
	}
}

func (d *Daemon) toggleLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-d.toggleCh:
			d.handleToggle()
		}
	}
}

// handleToggle runs on the toggle loop only, so stop and start can never
// race each other.
func (d *Daemon) handleToggle() {
	d.mu.Lock()
	if d.sess != nil {
		d.stopLocked()
		d.mu.Unlock()
		return
	}
	prev := d.writerDone
	d.mu.Unlock()

	// The previous writer must finish typing before a new session gets
	// the injector: concurrent injector calls would interleave edits
	// against one focused window.
	if prev != nil {
		select {
		case <-prev:
		case <-d.ctx.Done():
			return
		}
	}

	d.mu.Lock()
	if d.sess == nil {
		d.startLocked()
	}
	d.mu.Unlock()
}

func (d *Daemon) startLocked() {
	cfg := d.manager.GetConfig()

	engine, err := d.newEngine(recognizer.Config{
		Engine:     cfg.Recognizer.Engine,
		ServerURL:  cfg.Recognizer.ServerURL,
		ModelPath:  cfg.Recognizer.ModelPath,
		Language:   cfg.Recognizer.Language,
		Threads:    cfg.Recognizer.Threads,
		APIKey:     cfg.Recognizer.APIKey,
		Model:      cfg.Recognizer.Model,
		SampleRate: cfg.Recording.SampleRate,
	})
	if err != nil {
		log.Printf("Recognizer setup failed: %v", err)
		go d.notifier.Error(fmt.Sprintf("recognizer: %v", err))
		return
	}

	injector, err := d.newInjector(injection.Config{
		Backends:         cfg.Injection.Backends,
		KeyTimeout:       cfg.Injection.KeyTimeout,
		ClipboardTimeout: cfg.Injection.ClipboardTimeout,
	})
	if err != nil {
		log.Printf("Injector setup failed: %v", err)
		go d.notifier.Error(fmt.Sprintf("injection: %v", err))
		engine.Close()
		return
	}

	recorder := d.newRecorder(recording.Config{
		SampleRate:        cfg.Recording.SampleRate,
		Channels:          cfg.Recording.Channels,
		Format:            cfg.Recording.Format,
		FrameSize:         cfg.Recording.FrameSize,
		Device:            cfg.Recording.Device,
		ChannelBufferSize: cfg.Recording.ChannelBufferSize,
	})

	sess := session.New(recorder, engine, session.Config{Streaming: cfg.Recognizer.Streaming})
	if err := sess.Start(d.ctx); err != nil {
		log.Printf("Session start failed: %v", err)
		go d.notifier.Error(fmt.Sprintf("recording: %v", err))
		engine.Close()
		return
	}

	writer := typist.NewWriter(injector, typist.WriterConfig{
		Streaming: cfg.Recognizer.Streaming,
		KeyDelay:  cfg.Injection.KeyDelay,
	})

	done := make(chan struct{})
	d.sess = sess
	d.streaming = cfg.Recognizer.Streaming
	d.writerDone = done
	d.flushing.Add(1)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(done)

		// Detached from daemon cancellation: on shutdown the session
		// still flushes, and the flushed text still has to reach the
		// screen.
		writer.Run(context.WithoutCancel(d.ctx), sess.Events())
		sess.Wait()
		engine.Close()

		// A session can also end on its own after a recognition or
		// audio failure, so detach it here rather than in stopLocked.
		d.mu.Lock()
		if d.sess == sess {
			d.sess = nil
			go d.notifier.RecordingChanged(false)
		}
		d.mu.Unlock()
		d.flushing.Add(-1)
	}()

	go d.notifier.RecordingChanged(true)
	log.Printf("Recording started (engine=%s streaming=%t)", cfg.Recognizer.Engine, cfg.Recognizer.Streaming)
}

func (d *Daemon) stopLocked() {
	sess := d.sess
	d.sess = nil
	sess.Stop()

	go d.notifier.RecordingChanged(false)
	if !d.streaming {
		go d.notifier.Transcribing()
	}
	log.Printf("Recording stopped, flushing")
}
