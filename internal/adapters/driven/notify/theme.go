// Package notify prints user-facing notifications to a terminal.
package notify

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for notifications.
type Theme struct {
	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Info is for neutral updates.
	Info lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Muted is for error causes.
	Muted lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Success: lipgloss.Color("#A6E3A1"), // Green
		Info:    lipgloss.Color("#06B6D4"), // Cyan
		Error:   lipgloss.Color("#F38BA8"), // Red
		Muted:   lipgloss.Color("#6C7086"), // Medium gray
	}
}

// styles contains lipgloss styles bound to one output.
type styles struct {
	success lipgloss.Style
	info    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
}

// newStyles binds theme colours to a renderer for w, so colour is dropped
// when w is not a terminal.
func newStyles(w io.Writer, theme *Theme) styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		success: r.NewStyle().Bold(true).Foreground(theme.Success),
		info:    r.NewStyle().Foreground(theme.Info),
		err:     r.NewStyle().Bold(true).Foreground(theme.Error),
		muted:   r.NewStyle().Foreground(theme.Muted),
	}
}
