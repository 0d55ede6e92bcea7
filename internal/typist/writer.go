package typist

import (
	"context"
	"log"
	"time"

	"github.com/voxkey/voxkey/internal/injection"
	"github.com/voxkey/voxkey/internal/session"
)

// separator keeps consecutive utterances apart in the target field.
const separator = " "

type WriterConfig struct {
	// Streaming selects incremental reconciliation. When false, every
	// event is inserted as-is with no delete phase and no separator.
	Streaming bool
	// KeyDelay is the pause between the delete, insert and separator
	// phases of one instruction. Compositors drop synthetic input that
	// arrives too fast.
	KeyDelay time.Duration
}

// Writer drains a session's event stream and applies each edit at the
// cursor. Injection failures are logged and the stream continues: losing
// one edit beats dropping the rest of the dictation.
type Writer struct {
	injector injection.Injector
	typist   *Typist
	config   WriterConfig
}

func NewWriter(injector injection.Injector, config WriterConfig) *Writer {
	return &Writer{
		injector: injector,
		typist:   New(),
		config:   config,
	}
}

// Run consumes events until the channel closes. It always drains to the
// end so the producing session can never block on a full channel.
func (w *Writer) Run(ctx context.Context, events <-chan session.Event) {
	w.typist.Reset()
	for ev := range events {
		if !w.config.Streaming {
			if ev.Final && ev.Text != "" {
				w.TypeText(ctx, ev.Text)
			}
			continue
		}
		w.execute(ctx, w.typist.Apply(ev))
	}
}

// TypeText inserts text at the cursor with no reconciliation. Used for
// batch transcripts.
func (w *Writer) TypeText(ctx context.Context, text string) {
	w.execute(ctx, Instruction{InsertText: text})
}

func (w *Writer) execute(ctx context.Context, in Instruction) {
	if in.Empty() {
		return
	}

	if in.DeleteCount > 0 {
		if err := w.injector.Backspace(ctx, in.DeleteCount); err != nil {
			log.Printf("Writer: backspace failed: %v", err)
		}
		w.pause()
	}

	if in.InsertText != "" {
		w.insert(ctx, in.InsertText)
	}

	if in.AppendSeparator {
		w.pause()
		w.insert(ctx, separator)
	}
}

func (w *Writer) insert(ctx context.Context, text string) {
	if err := w.injector.SetClipboard(ctx, text); err != nil {
		log.Printf("Writer: clipboard set failed: %v", err)
		return
	}
	w.pause()
	if err := w.injector.Paste(ctx); err != nil {
		log.Printf("Writer: paste failed: %v", err)
	}
}

func (w *Writer) pause() {
	if w.config.KeyDelay > 0 {
		time.Sleep(w.config.KeyDelay)
	}
}
