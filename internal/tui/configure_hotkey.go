package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/voxkey/voxkey/internal/config"
	"github.com/voxkey/voxkey/internal/hotkey"
)

// editHotkey handles the toggle hotkey section
func editHotkey(cfg *config.Config) error {
	modifiers := cfg.Hotkey.Modifiers
	key := cfg.Hotkey.Key

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Modifiers").
				Description("Held together with the key below to toggle dictation").
				Options(
					huh.NewOption("Ctrl", "ctrl").Selected(hasModifier(modifiers, "ctrl")),
					huh.NewOption("Shift", "shift").Selected(hasModifier(modifiers, "shift")),
					huh.NewOption("Alt", "alt").Selected(hasModifier(modifiers, "alt")),
					huh.NewOption("Super", "super").Selected(hasModifier(modifiers, "super")),
				).
				Value(&modifiers),
			huh.NewInput().
				Title("Key").
				Description("Base key: a letter, digit, f1-f12, space, enter, tab or esc").
				Placeholder("space").
				Value(&key).
				Validate(func(s string) error {
					if _, err := hotkey.ParseCombo(nil, s); err != nil {
						return err
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	combo, err := hotkey.ParseCombo(modifiers, key)
	if err != nil {
		return err
	}

	cfg.Hotkey.Modifiers = modifiers
	cfg.Hotkey.Key = key
	fmt.Println(StyleSuccess.Render(fmt.Sprintf("Hotkey set to %s", combo)))
	return nil
}

func hasModifier(modifiers []string, name string) bool {
	for _, m := range modifiers {
		if strings.EqualFold(m, name) {
			return true
		}
	}
	return false
}
