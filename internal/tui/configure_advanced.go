package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/voxkey/voxkey/internal/config"
)

// editAdvanced handles the audio capture settings. Defaults fit the vosk
// and whisper models, so this section is rarely needed.
func editAdvanced(cfg *config.Config) error {
	sampleRate := strconv.Itoa(cfg.Recording.SampleRate)
	frameSize := strconv.Itoa(cfg.Recording.FrameSize)
	device := cfg.Recording.Device

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sample Rate").
				Description("Capture rate in Hz; speech models expect 16000").
				Value(&sampleRate).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Frame Size").
				Description("Samples per frame sent to the recognizer").
				Value(&frameSize).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Capture Device").
				Description("PipeWire target node, empty for the default source").
				Placeholder("default").
				Value(&device),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Recording.SampleRate, _ = strconv.Atoi(sampleRate)
	cfg.Recording.FrameSize, _ = strconv.Atoi(frameSize)
	cfg.Recording.Device = device
	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %s", s)
	}
	if n <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
