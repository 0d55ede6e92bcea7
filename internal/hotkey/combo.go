package hotkey

import (
	"fmt"
	"sort"
	"strings"
)

// Key is a canonical Linux input event code (KEY_* constant). Right-hand
// modifier variants are folded onto their left-hand codes so a combo
// declaring "ctrl" matches either physical key.
type Key uint16

// Canonical key codes from linux/input-event-codes.h.
const (
	keyEsc       Key = 1
	keyTab       Key = 15
	keyEnter     Key = 28
	keyLeftCtrl  Key = 29
	keyLeftShift Key = 42
	keyLeftAlt   Key = 56
	keySpace     Key = 57
	keyLeftMeta  Key = 125

	keyRightShift Key = 54
	keyRightCtrl  Key = 97
	keyRightAlt   Key = 100
	keyRightMeta  Key = 126
)

var modifierNames = map[string]Key{
	"ctrl":    keyLeftCtrl,
	"control": keyLeftCtrl,
	"alt":     keyLeftAlt,
	"shift":   keyLeftShift,
	"super":   keyLeftMeta,
	"meta":    keyLeftMeta,
	"cmd":     keyLeftMeta,
}

var specialKeyNames = map[string]Key{
	"space":  keySpace,
	"enter":  keyEnter,
	"tab":    keyTab,
	"escape": keyEsc,
	"esc":    keyEsc,
}

var letterKeys = map[rune]Key{
	'a': 30, 'b': 48, 'c': 46, 'd': 32, 'e': 18, 'f': 33, 'g': 34,
	'h': 35, 'i': 23, 'j': 36, 'k': 37, 'l': 38, 'm': 50, 'n': 49,
	'o': 24, 'p': 25, 'q': 16, 'r': 19, 's': 31, 't': 20, 'u': 22,
	'v': 47, 'w': 17, 'x': 45, 'y': 21, 'z': 44,
}

var digitKeys = map[rune]Key{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6,
	'6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
}

// F1-F10 are contiguous; F11/F12 are not.
func functionKey(name string) (Key, bool) {
	var n int
	if _, err := fmt.Sscanf(name, "f%d", &n); err != nil {
		return 0, false
	}
	switch {
	case n >= 1 && n <= 10:
		return Key(59 + n - 1), true
	case n == 11:
		return 87, true
	case n == 12:
		return 88, true
	}
	return 0, false
}

// Normalize folds right-hand modifier codes onto their canonical left-hand
// counterparts. Other codes pass through unchanged.
func Normalize(code Key) Key {
	switch code {
	case keyRightCtrl:
		return keyLeftCtrl
	case keyRightShift:
		return keyLeftShift
	case keyRightAlt:
		return keyLeftAlt
	case keyRightMeta:
		return keyLeftMeta
	}
	return code
}

// Combo is the set of keys that must be simultaneously held to trigger a
// toggle. Immutable once parsed.
type Combo struct {
	keys  map[Key]bool
	label string
}

// ParseCombo builds a Combo from configured modifier names and a base key.
// Unknown names are errors: a typo in the config must surface at load time,
// not as a hotkey that silently never fires.
func ParseCombo(modifiers []string, key string) (Combo, error) {
	keys := make(map[Key]bool)
	var labelParts []string

	for _, mod := range modifiers {
		name := strings.ToLower(strings.TrimSpace(mod))
		code, ok := modifierNames[name]
		if !ok {
			return Combo{}, fmt.Errorf("unknown modifier %q", mod)
		}
		keys[code] = true
		labelParts = append(labelParts, capitalize(name))
	}

	name := strings.ToLower(strings.TrimSpace(key))
	if name == "" {
		return Combo{}, fmt.Errorf("hotkey base key is empty")
	}

	code, err := parseBaseKey(name)
	if err != nil {
		return Combo{}, err
	}
	keys[code] = true

	if len(name) == 1 {
		labelParts = append(labelParts, strings.ToUpper(name))
	} else {
		labelParts = append(labelParts, capitalize(name))
	}

	return Combo{keys: keys, label: strings.Join(labelParts, "+")}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func parseBaseKey(name string) (Key, error) {
	if code, ok := specialKeyNames[name]; ok {
		return code, nil
	}
	if len(name) == 1 {
		r := rune(name[0])
		if code, ok := letterKeys[r]; ok {
			return code, nil
		}
		if code, ok := digitKeys[r]; ok {
			return code, nil
		}
	}
	if code, ok := functionKey(name); ok {
		return code, nil
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// Contains reports whether the combo includes the given canonical key.
func (c Combo) Contains(k Key) bool {
	return c.keys[k]
}

// Size returns the number of keys in the combo.
func (c Combo) Size() int {
	return len(c.keys)
}

// Keys returns the combo's key codes in ascending order.
func (c Combo) Keys() []Key {
	out := make([]Key, 0, len(c.keys))
	for k := range c.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String returns the human-readable form, e.g. "Ctrl+Shift+Space".
func (c Combo) String() string {
	return c.label
}
