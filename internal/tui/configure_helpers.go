package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/voxkey/voxkey/internal/config"
)

// formatEngineLabel formats the engine menu option showing current setting
func formatEngineLabel(cfg *config.Config) string {
	if cfg.Recognizer.Engine == "" {
		return "Recognition Engine"
	}
	mode := "batch"
	if cfg.Recognizer.Streaming {
		mode = "streaming"
	}
	return fmt.Sprintf("Recognition Engine (%s, %s)", cfg.Recognizer.Engine, mode)
}

// formatHotkeyLabel formats the hotkey menu option showing current combo
func formatHotkeyLabel(cfg *config.Config) string {
	combo := append(append([]string{}, cfg.Hotkey.Modifiers...), cfg.Hotkey.Key)
	return fmt.Sprintf("Hotkey (%s)", strings.Join(combo, "+"))
}

// formatInjectionLabel formats the injection menu option
func formatInjectionLabel(cfg *config.Config) string {
	if len(cfg.Injection.Backends) == 0 {
		return "Injection"
	}
	return fmt.Sprintf("Injection (%s)", cfg.Injection.Backends[0])
}

// formatNotificationsLabel formats the notifications menu option
func formatNotificationsLabel(cfg *config.Config) string {
	if cfg.Notifications.Enabled {
		return fmt.Sprintf("Notifications (%s)", cfg.Notifications.Type)
	}
	return "Notifications (disabled)"
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:7] + "..." + key[len(key)-4:]
}

func showSummary(cfg *config.Config) (bool, error) {
	fmt.Println()
	fmt.Println(StyleHeader.Render("Configuration Summary"))
	fmt.Println()

	mode := "batch"
	if cfg.Recognizer.Streaming {
		mode = "streaming"
	}
	fmt.Printf("  %s %s (%s)\n", StyleLabel.Render("Engine:"), cfg.Recognizer.Engine, mode)

	switch cfg.Recognizer.Engine {
	case "vosk":
		fmt.Printf("  %s %s\n", StyleLabel.Render("Server:"), cfg.Recognizer.ServerURL)
	case "whisper":
		fmt.Printf("  %s %s\n", StyleLabel.Render("Model:"), cfg.Recognizer.ModelPath)
	case "openai":
		fmt.Printf("  %s %s (%s)\n", StyleLabel.Render("Model:"), cfg.Recognizer.Model, maskAPIKey(cfg.Recognizer.APIKey))
	}

	if cfg.Recognizer.Language != "" {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Language:"), cfg.Recognizer.Language)
	}

	combo := append(append([]string{}, cfg.Hotkey.Modifiers...), cfg.Hotkey.Key)
	fmt.Printf("  %s %s\n", StyleLabel.Render("Hotkey:"), strings.Join(combo, "+"))

	fmt.Printf("  %s %s\n", StyleLabel.Render("Backends:"), strings.Join(cfg.Injection.Backends, " -> "))

	if cfg.Notifications.Enabled {
		fmt.Printf("  %s %s\n", StyleLabel.Render("Notifications:"), cfg.Notifications.Type)
	} else {
		fmt.Printf("  %s disabled\n", StyleLabel.Render("Notifications:"))
	}

	fmt.Println()

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save this configuration?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
