package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/voxkey/voxkey/internal/bus"
	"github.com/voxkey/voxkey/internal/config"
	"github.com/voxkey/voxkey/internal/daemon"
	"github.com/voxkey/voxkey/internal/deps"
	"github.com/voxkey/voxkey/internal/notify"
	"github.com/voxkey/voxkey/internal/tui"
)

var configPath string

func main() {
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voxkey",
	Short: "Hotkey-toggled voice dictation for Wayland",
	Long: `voxkey turns speech into text at the cursor. Hold the configured
hotkey combo (or run 'voxkey toggle') to start dictating; toggle again to
stop. Recognized text is typed into whatever window has focus.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml (default: ~/.config/voxkey/config.toml)")
	rootCmd.AddCommand(
		serveCmd(),
		toggleCmd(),
		statusCmd(),
		versionCmd(),
		stopCmd(),
		configureCmd(),
		doctorCmd(),
	)
}

func serveCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				log.SetOutput(io.Discard)
			}

			manager, err := config.NewManager(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			cfg := manager.GetConfig()
			if errs := deps.Verify(cfg); len(errs) > 0 {
				for _, err := range errs {
					fmt.Fprintf(os.Stderr, "missing dependency: %v\n", err)
				}
				if cfg.Notifications.Enabled && cfg.Notifications.Type == "desktop" {
					notify.Desktop{}.Error(fmt.Sprintf("cannot start: %v", errs[0]))
				}
				return errors.New("missing dependencies, see 'voxkey doctor'")
			}

			return daemon.New(manager).Run()
		},
	}

	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress daemon logs (for service managers)")

	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle dictation on/off",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('t')
			if err != nil {
				return fmt.Errorf("failed to toggle dictation: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get current daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('s')
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Get protocol version",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('v')
			if err != nil {
				return fmt.Errorf("failed to get version: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := bus.SendCommand('q')
			if err != nil {
				return fmt.Errorf("failed to stop daemon: %w", err)
			}
			fmt.Print(resp)
			return nil
		},
	}
}

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration wizard for voxkey.
This will guide you through setting up:
- Recognition engine (vosk, whisper.cpp or OpenAI)
- Toggle hotkey
- Text injection and notification preferences`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func runConfigure() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	result, err := tui.Run(cfg)
	if err != nil {
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if result.Cancelled {
		fmt.Println("Configuration cancelled.")
		return nil
	}

	if err := saveConfig(result.Config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("Configuration saved successfully!")
	fmt.Println()
	showNextSteps(result.Config)

	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFrom(configPath)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		return cfg, err
	}
	return config.Load()
}

func saveConfig(cfg *config.Config) error {
	if configPath != "" {
		return config.SaveTo(configPath, cfg)
	}
	return config.Save(cfg)
}

func showNextSteps(cfg *config.Config) {
	fmt.Println("Next Steps:")
	step := 1

	if cfg.Recognizer.Engine == "vosk" {
		fmt.Printf("%d. Ensure a vosk-server is reachable at %s\n", step, cfg.Recognizer.ServerURL)
		step++
	}
	for _, b := range cfg.Injection.Backends {
		if b == "ydotool" {
			fmt.Printf("%d. Ensure ydotoold is running\n", step)
			step++
			break
		}
	}
	fmt.Printf("%d. Start the daemon: voxkey serve\n", step)
	step++
	fmt.Printf("%d. Test dictation: voxkey toggle\n", step)
	fmt.Println()

	path := configPath
	if path == "" {
		path, _ = config.GetConfigPath()
	}
	fmt.Printf("Config file location: %s\n", path)
}

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			printStatus("pw-record", deps.CheckPwRecord())
			printStatus("wl-copy", deps.CheckWlCopy())
			printStatus("wtype", deps.CheckWtype())
			printStatus("ydotool", deps.CheckYdotool())
			if cfg.Recognizer.Engine == "whisper" {
				printStatus("whisper-cli", deps.CheckWhisperCli())
			}

			if errs := deps.Verify(cfg); len(errs) > 0 {
				fmt.Println()
				for _, err := range errs {
					fmt.Printf("problem: %v\n", err)
				}
				return errors.New("some dependencies are missing")
			}

			fmt.Println("\nall required dependencies are available")
			return nil
		},
	}
}

func printStatus(name string, status deps.Status) {
	if !status.Installed {
		fmt.Printf("  [ ] %s: not found\n", name)
		return
	}
	line := fmt.Sprintf("  [x] %s: %s", name, status.Path)
	if status.Version != "" {
		line += fmt.Sprintf(" (%s)", status.Version)
	}
	fmt.Println(line)
}
