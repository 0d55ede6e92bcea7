package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles for voxkey TUI components
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Label style for form field labels
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// Success style for positive feedback
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error style for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Muted style for secondary text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Subtle style for hints and descriptions
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)
)

const logoASCII = `
                     _
__   __  ___  __  __| | __  ___  _   _
\ \ / / / _ \ \ \/ /| |/ / / _ \| | | |
 \ V / | (_) | >  < |   < |  __/| |_| |
  \_/   \___/ /_/\_\|_|\_\ \___| \__, |
                                 |___/ `

// Logo returns the voxkey ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}
