package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/voxkey/voxkey/internal/config"
)

// Status represents the installation status of a dependency
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// CheckTool checks whether a command is on PATH and tries to read its
// version with the given flag (empty flag skips the version probe).
func CheckTool(name, versionFlag string) Status {
	path, err := exec.LookPath(name)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	if versionFlag == "" {
		return status
	}

	output, err := exec.Command(path, versionFlag).Output()
	if err == nil {
		lines := strings.Split(string(output), "\n")
		if len(lines) > 0 {
			status.Version = strings.TrimSpace(lines[0])
		}
	}

	return status
}

func CheckPwRecord() Status {
	return CheckTool("pw-record", "--version")
}

func CheckWlCopy() Status {
	return CheckTool("wl-copy", "--version")
}

func CheckWtype() Status {
	// wtype has no version flag
	return CheckTool("wtype", "")
}

func CheckYdotool() Status {
	return CheckTool("ydotool", "--version")
}

func CheckWhisperCli() Status {
	return CheckTool("whisper-cli", "--version")
}

// Verify checks every external tool the configuration requires and returns
// one error per missing piece. An empty slice means the daemon can run.
func Verify(cfg *config.Config) []error {
	var errs []error

	if !CheckPwRecord().Installed {
		errs = append(errs, fmt.Errorf("pw-record not found: install pipewire-utils"))
	}
	if !CheckWlCopy().Installed {
		errs = append(errs, fmt.Errorf("wl-copy not found: install wl-clipboard"))
	}

	haveBackend := false
	for _, backend := range cfg.Injection.Backends {
		switch backend {
		case "wtype":
			if CheckWtype().Installed {
				haveBackend = true
			}
		case "ydotool":
			if CheckYdotool().Installed {
				haveBackend = true
			}
		}
	}
	if !haveBackend {
		errs = append(errs, fmt.Errorf("no typing backend available: install one of %s", strings.Join(cfg.Injection.Backends, ", ")))
	}

	if cfg.Recognizer.Engine == "whisper" {
		if !CheckWhisperCli().Installed {
			errs = append(errs, fmt.Errorf("whisper-cli not found: install whisper.cpp"))
		}
		if _, err := os.Stat(cfg.Recognizer.ModelPath); err != nil {
			errs = append(errs, fmt.Errorf("whisper model not found at %s", cfg.Recognizer.ModelPath))
		}
	}

	return errs
}
