package hotkey

import "testing"

func TestParseCombo(t *testing.T) {
	tests := []struct {
		name      string
		modifiers []string
		key       string
		wantSize  int
		wantLabel string
		wantErr   bool
	}{
		{
			name:      "default combo",
			modifiers: []string{"ctrl", "shift"},
			key:       "space",
			wantSize:  3,
			wantLabel: "Ctrl+Shift+Space",
		},
		{
			name:      "single letter key",
			modifiers: []string{"super"},
			key:       "d",
			wantSize:  2,
			wantLabel: "Super+D",
		},
		{
			name:      "function key",
			modifiers: nil,
			key:       "f12",
			wantSize:  1,
			wantLabel: "F12",
		},
		{
			name:      "control alias",
			modifiers: []string{"control"},
			key:       "enter",
			wantSize:  2,
			wantLabel: "Control+Enter",
		},
		{
			name:      "digit key",
			modifiers: []string{"alt"},
			key:       "1",
			wantSize:  2,
			wantLabel: "Alt+1",
		},
		{
			name:      "unknown modifier",
			modifiers: []string{"hyper"},
			key:       "space",
			wantErr:   true,
		},
		{
			name:      "unknown key",
			modifiers: []string{"ctrl"},
			key:       "pageup",
			wantErr:   true,
		},
		{
			name:      "empty key",
			modifiers: []string{"ctrl"},
			key:       "",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combo, err := ParseCombo(tt.modifiers, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCombo() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if combo.Size() != tt.wantSize {
				t.Errorf("combo size = %d, want %d", combo.Size(), tt.wantSize)
			}
			if combo.String() != tt.wantLabel {
				t.Errorf("combo label = %q, want %q", combo.String(), tt.wantLabel)
			}
		})
	}
}

func TestParseComboDuplicateModifiers(t *testing.T) {
	// ctrl and control collapse to the same key code.
	combo, err := ParseCombo([]string{"ctrl", "control"}, "space")
	if err != nil {
		t.Fatalf("ParseCombo() failed: %v", err)
	}
	if combo.Size() != 2 {
		t.Errorf("combo size = %d, want 2", combo.Size())
	}
}

func TestNormalize(t *testing.T) {
	pairs := map[Key]Key{
		keyRightCtrl:  keyLeftCtrl,
		keyRightShift: keyLeftShift,
		keyRightAlt:   keyLeftAlt,
		keyRightMeta:  keyLeftMeta,
		keySpace:      keySpace,
		Key(30):       Key(30), // 'a' passes through
	}
	for in, want := range pairs {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%d) = %d, want %d", in, got, want)
		}
	}
}
