package hotkey

import "testing"

func newTestTracker(t *testing.T) (*Tracker, *int) {
	t.Helper()
	combo, err := ParseCombo([]string{"ctrl", "shift"}, "space")
	if err != nil {
		t.Fatalf("ParseCombo() failed: %v", err)
	}
	fires := 0
	return NewTracker(combo, func() { fires++ }), &fires
}

func TestTrackerFiresOncePerEngagement(t *testing.T) {
	tr, fires := newTestTracker(t)

	tr.Handle(keyLeftCtrl, true)
	tr.Handle(keyLeftShift, true)
	if *fires != 0 {
		t.Fatalf("fired before combo complete: %d", *fires)
	}

	tr.Handle(keySpace, true)
	if *fires != 1 {
		t.Fatalf("expected exactly one fire, got %d", *fires)
	}

	// Release one combo key, re-press: a new engagement.
	tr.Handle(keySpace, false)
	tr.Handle(keySpace, true)
	if *fires != 2 {
		t.Fatalf("expected second fire after re-engagement, got %d", *fires)
	}
}

func TestTrackerAutoRepeatDoesNotRefire(t *testing.T) {
	tr, fires := newTestTracker(t)

	tr.Handle(keyLeftCtrl, true)
	tr.Handle(keyLeftShift, true)
	tr.Handle(keySpace, true)

	// Held keys report repeated presses.
	for i := 0; i < 10; i++ {
		tr.Handle(keySpace, true)
		tr.Handle(keyLeftCtrl, true)
	}

	if *fires != 1 {
		t.Errorf("auto-repeat re-fired the toggle: %d fires", *fires)
	}
}

func TestTrackerSimultaneousRelease(t *testing.T) {
	tr, fires := newTestTracker(t)

	tr.Handle(keyLeftCtrl, true)
	tr.Handle(keyLeftShift, true)
	tr.Handle(keySpace, true)

	// All keys released in arbitrary order; state must return to Armed
	// the moment the held set stops covering the combo.
	tr.Handle(keyLeftShift, false)
	tr.Handle(keySpace, false)
	tr.Handle(keyLeftCtrl, false)

	tr.Handle(keyLeftCtrl, true)
	tr.Handle(keyLeftShift, true)
	tr.Handle(keySpace, true)

	if *fires != 2 {
		t.Errorf("expected 2 fires across two engagements, got %d", *fires)
	}
}

func TestTrackerUnrelatedKeysIgnored(t *testing.T) {
	tr, fires := newTestTracker(t)

	// Typing other keys, including unknown codes, never fires.
	for _, code := range []Key{30, 48, 46, 9999} {
		tr.Handle(code, true)
		tr.Handle(code, false)
	}
	if *fires != 0 {
		t.Fatalf("unrelated keys fired the toggle: %d", *fires)
	}

	// Combo still works with unrelated keys held alongside.
	tr.Handle(Key(30), true)
	tr.Handle(keyLeftCtrl, true)
	tr.Handle(keyLeftShift, true)
	tr.Handle(keySpace, true)
	if *fires != 1 {
		t.Errorf("combo with extra held keys should fire once, got %d", *fires)
	}
}

func TestTrackerRightModifiersSatisfyCombo(t *testing.T) {
	tr, fires := newTestTracker(t)

	tr.Handle(keyRightCtrl, true)
	tr.Handle(keyRightShift, true)
	tr.Handle(keySpace, true)

	if *fires != 1 {
		t.Errorf("right-hand modifiers should satisfy the combo, got %d fires", *fires)
	}

	// Releasing the right-hand key re-arms too.
	tr.Handle(keyRightCtrl, false)
	tr.Handle(keyLeftCtrl, true)
	if *fires != 2 {
		t.Errorf("expected re-fire after release and re-press, got %d", *fires)
	}
}

func TestTrackerPartialComboNeverFires(t *testing.T) {
	tr, fires := newTestTracker(t)

	tr.Handle(keyLeftCtrl, true)
	tr.Handle(keySpace, true)
	tr.Handle(keySpace, false)
	tr.Handle(keyLeftCtrl, false)

	if *fires != 0 {
		t.Errorf("partial combo fired: %d", *fires)
	}
}
