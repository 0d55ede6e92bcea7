package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/voxkey/voxkey/internal/config"
)

// editEngine handles the recognition engine section
func editEngine(cfg *config.Config) error {
	engineDesc := "Choose which engine turns speech into text"
	if cfg.Recognizer.Engine != "" {
		engineDesc = fmt.Sprintf("Currently: %s", cfg.Recognizer.Engine)
	}

	selected := cfg.Recognizer.Engine
	engineForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Recognition Engine").
				Description(engineDesc).
				Options(
					huh.NewOption("Vosk server (local, streaming)", "vosk"),
					huh.NewOption("Whisper.cpp (local, batch)", "whisper"),
					huh.NewOption("OpenAI Whisper (cloud, batch)", "openai"),
				).
				Value(&selected),
		),
	).WithTheme(getTheme())

	if err := engineForm.Run(); err != nil {
		return err
	}
	cfg.Recognizer.Engine = selected

	switch selected {
	case "vosk":
		if err := editVosk(cfg); err != nil {
			return err
		}
	case "whisper":
		if err := editWhisper(cfg); err != nil {
			return err
		}
	case "openai":
		if err := editOpenAI(cfg); err != nil {
			return err
		}
	}

	return editLanguage(cfg)
}

func editVosk(cfg *config.Config) error {
	serverURL := cfg.Recognizer.ServerURL
	streaming := cfg.Recognizer.Streaming

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Vosk Server URL").
				Description("Websocket endpoint of a running vosk-server").
				Placeholder("ws://127.0.0.1:2700").
				Value(&serverURL).
				Validate(func(s string) error {
					if !strings.HasPrefix(s, "ws://") && !strings.HasPrefix(s, "wss://") {
						return fmt.Errorf("must start with ws:// or wss://")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Stream partial results?").
				Description("Partials appear at the cursor while you speak and are revised live").
				Affirmative("Streaming").
				Negative("Batch").
				Value(&streaming),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Recognizer.ServerURL = serverURL
	cfg.Recognizer.Streaming = streaming
	return nil
}

func editWhisper(cfg *config.Config) error {
	modelPath := cfg.Recognizer.ModelPath

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Model Path").
				Description("Path to a ggml model file for whisper-cli").
				Placeholder("~/models/ggml-base.en.bin").
				Value(&modelPath).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("model path is required")
					}
					if _, err := os.Stat(s); err != nil {
						return fmt.Errorf("file not found: %s", s)
					}
					return nil
				}),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Recognizer.ModelPath = modelPath
	// whisper-cli is batch only
	cfg.Recognizer.Streaming = false
	return nil
}

func editOpenAI(cfg *config.Config) error {
	apiKey := cfg.Recognizer.APIKey
	model := cfg.Recognizer.Model

	keyDesc := "Get one at https://platform.openai.com/api-keys"
	if cfg.Recognizer.APIKey != "" {
		keyDesc = fmt.Sprintf("Currently: %s", maskAPIKey(cfg.Recognizer.APIKey))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API Key").
				Description(keyDesc).
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
			huh.NewSelect[string]().
				Title("Model").
				Options(
					huh.NewOption("whisper-1", "whisper-1"),
				).
				Value(&model),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if apiKey != "" {
		cfg.Recognizer.APIKey = apiKey
	}
	cfg.Recognizer.Model = model
	cfg.Recognizer.Streaming = false
	return nil
}

func editLanguage(cfg *config.Config) error {
	language := cfg.Recognizer.Language

	langDesc := "ISO-639-1 code (e.g., 'en', 'es', 'fr') or empty for auto-detect"
	if cfg.Recognizer.Language != "" {
		langDesc = fmt.Sprintf("Currently: %s. %s", cfg.Recognizer.Language, langDesc)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Language").
				Description(langDesc).
				Placeholder("auto-detect").
				Value(&language),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Recognizer.Language = language
	return nil
}
