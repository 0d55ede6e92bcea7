package typist

import (
	"unicode/utf8"

	"github.com/voxkey/voxkey/internal/session"
)

// Instruction is one reconciliation step against the focused input field:
// delete the revisable tail, insert the replacement, optionally append the
// utterance separator. Steps run strictly in that order.
type Instruction struct {
	DeleteCount     int
	InsertText      string
	AppendSeparator bool
}

func (in Instruction) Empty() bool {
	return in.DeleteCount == 0 && in.InsertText == "" && !in.AppendSeparator
}

// Typist tracks how many characters of revisable hypothesis text are
// currently on screen and turns recognition events into edit instructions.
// Counts are runes, not bytes: a deleted character is one keypress no
// matter how it encodes.
type Typist struct {
	pending int
}

func New() *Typist {
	return &Typist{}
}

// Apply computes the edit for one recognition event and advances the
// on-screen state. A final event commits the text: the pending count drops
// to zero and the separator keeps the next utterance from running into
// this one.
func (t *Typist) Apply(ev session.Event) Instruction {
	in := Instruction{
		DeleteCount: t.pending,
		InsertText:  ev.Text,
	}
	if ev.Final {
		in.AppendSeparator = true
		t.pending = 0
	} else {
		t.pending = utf8.RuneCountInString(ev.Text)
	}
	return in
}

// Reset forgets any pending on-screen text. Called at session start so a
// crash or focus change mid-session never leaks deletions into unrelated
// text.
func (t *Typist) Reset() {
	t.pending = 0
}

func (t *Typist) PendingLen() int {
	return t.pending
}
