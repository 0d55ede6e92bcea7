package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/voxkey/voxkey/internal/config"
)

// editInjection handles the text injection section
func editInjection(cfg *config.Config) error {
	primary := "wtype"
	if len(cfg.Injection.Backends) > 0 {
		primary = cfg.Injection.Backends[0]
	}
	keyDelay := cfg.Injection.KeyDelay.String()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Typing Backend").
				Description("How synthetic key events reach the compositor; the other is kept as fallback").
				Options(
					huh.NewOption("wtype (wlroots compositors)", "wtype"),
					huh.NewOption("ydotool (needs ydotoold)", "ydotool"),
				).
				Value(&primary),
			huh.NewInput().
				Title("Key Delay").
				Description("Pause between injected edit phases, e.g. 30ms").
				Placeholder("30ms").
				Value(&keyDelay).
				Validate(func(s string) error {
					d, err := time.ParseDuration(s)
					if err != nil {
						return fmt.Errorf("not a duration: %s", s)
					}
					if d < 0 {
						return fmt.Errorf("must not be negative")
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	fallback := "ydotool"
	if primary == "ydotool" {
		fallback = "wtype"
	}
	cfg.Injection.Backends = []string{primary, fallback}

	d, err := time.ParseDuration(keyDelay)
	if err != nil {
		return err
	}
	cfg.Injection.KeyDelay = d
	return nil
}
