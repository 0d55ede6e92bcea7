package hotkey

import "sync"

// Tracker turns a stream of raw (key, pressed) events into edge-triggered
// toggle signals. It fires exactly once when the full combo becomes held and
// re-arms only after at least one combo key is released, so held keys
// reporting auto-repeat cannot re-fire.
type Tracker struct {
	mu       sync.Mutex
	combo    Combo
	held     map[Key]bool
	fired    bool
	onToggle func()
}

// NewTracker creates a tracker for the given combo. onToggle must not block:
// it runs on the input-event path.
func NewTracker(combo Combo, onToggle func()) *Tracker {
	return &Tracker{
		combo:    combo,
		held:     make(map[Key]bool),
		onToggle: onToggle,
	}
}

// Handle processes one raw key event. Codes outside the combo are tracked as
// held keys but never influence firing; callers may pass every key the
// device reports.
func (t *Tracker) Handle(code Key, pressed bool) {
	key := Normalize(code)

	t.mu.Lock()
	defer t.mu.Unlock()

	if pressed {
		t.held[key] = true
		if !t.fired && t.comboHeld() {
			t.fired = true
			t.onToggle()
		}
		return
	}

	delete(t.held, key)
	if t.fired && !t.comboHeld() {
		t.fired = false
	}
}

func (t *Tracker) comboHeld() bool {
	for _, k := range t.combo.Keys() {
		if !t.held[k] {
			return false
		}
	}
	return true
}
