package display

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Result styles
	ValueStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	NameStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	ErrorCodeStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// Tree and token styles
	OperatorStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	TreeStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	TokenKindStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)
