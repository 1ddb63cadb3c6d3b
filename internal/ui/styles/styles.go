// Package styles provides shared lipgloss styles for terminal output.
//
// This package centralizes color definitions so command output
// (doctor checks, prompts, publish summaries) stays visually
// consistent.
package styles

import "charm.land/lipgloss/v2"

// Primary colors used throughout the UI
var (
	// Primary is the main accent color (cyan/teal)
	Primary = lipgloss.Color("62")

	// Accent is the highlight color for selected/active items (pink)
	Accent = lipgloss.Color("212")

	// Success is used for checkmarks and positive outcomes (green)
	Success = lipgloss.Color("82")

	// Error is used for error messages (red)
	Error = lipgloss.Color("196")

	// Muted is used for disabled/inactive text (gray)
	Muted = lipgloss.Color("240")

	// Warning is used for degraded-but-working states (orange)
	Warning = lipgloss.Color("214")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// WarningStyle applies the warning color
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
)
