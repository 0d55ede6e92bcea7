package typist

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/voxkey/voxkey/internal/session"
)

type fakeInjector struct {
	ops      []string
	pasteErr error
}

func (f *fakeInjector) SetClipboard(ctx context.Context, text string) error {
	f.ops = append(f.ops, fmt.Sprintf("clip(%q)", text))
	return nil
}

func (f *fakeInjector) Paste(ctx context.Context) error {
	if f.pasteErr != nil {
		f.ops = append(f.ops, "paste!err")
		return f.pasteErr
	}
	f.ops = append(f.ops, "paste")
	return nil
}

func (f *fakeInjector) Backspace(ctx context.Context, count int) error {
	f.ops = append(f.ops, fmt.Sprintf("backspace(%d)", count))
	return nil
}

func runWriter(w *Writer, events []session.Event) {
	ch := make(chan session.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	w.Run(context.Background(), ch)
}

func TestWriterStreamingSequence(t *testing.T) {
	inj := &fakeInjector{}
	w := NewWriter(inj, WriterConfig{Streaming: true})

	runWriter(w, []session.Event{
		{Text: "turn"},
		{Text: "turn on"},
		{Text: "turn on the lights", Final: true},
	})

	want := []string{
		`clip("turn")`, "paste",
		"backspace(4)", `clip("turn on")`, "paste",
		"backspace(7)", `clip("turn on the lights")`, "paste", `clip(" ")`, "paste",
	}
	if !reflect.DeepEqual(inj.ops, want) {
		t.Errorf("ops = %v\nwant %v", inj.ops, want)
	}
}

func TestWriterBatchMode(t *testing.T) {
	inj := &fakeInjector{}
	w := NewWriter(inj, WriterConfig{Streaming: false})

	runWriter(w, []session.Event{
		{Text: "the whole utterance", Final: true},
	})

	// Batch inserts once: no delete phase, no separator.
	want := []string{`clip("the whole utterance")`, "paste"}
	if !reflect.DeepEqual(inj.ops, want) {
		t.Errorf("ops = %v, want %v", inj.ops, want)
	}
}

func TestWriterBatchIgnoresPartials(t *testing.T) {
	inj := &fakeInjector{}
	w := NewWriter(inj, WriterConfig{Streaming: false})

	runWriter(w, []session.Event{
		{Text: "partial noise"},
		{Text: "done", Final: true},
	})

	want := []string{`clip("done")`, "paste"}
	if !reflect.DeepEqual(inj.ops, want) {
		t.Errorf("ops = %v, want %v", inj.ops, want)
	}
}

func TestWriterContinuesAfterError(t *testing.T) {
	inj := &fakeInjector{pasteErr: errors.New("compositor rejected input")}
	w := NewWriter(inj, WriterConfig{Streaming: true})

	runWriter(w, []session.Event{
		{Text: "one"},
		{Text: "one two"},
	})

	// Both events must still be attempted.
	want := []string{
		`clip("one")`, "paste!err",
		"backspace(3)", `clip("one two")`, "paste!err",
	}
	if !reflect.DeepEqual(inj.ops, want) {
		t.Errorf("ops = %v\nwant %v", inj.ops, want)
	}
}

func TestTypeText(t *testing.T) {
	inj := &fakeInjector{}
	w := NewWriter(inj, WriterConfig{})

	w.TypeText(context.Background(), "hello")

	want := []string{`clip("hello")`, "paste"}
	if !reflect.DeepEqual(inj.ops, want) {
		t.Errorf("ops = %v, want %v", inj.ops, want)
	}
}
