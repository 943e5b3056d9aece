package cmd

import "github.com/charmbracelet/lipgloss"

// Icewall palette, shared with the plan output.
var (
	colorIce   = lipgloss.Color("#A8D8EA")
	colorDeep  = lipgloss.Color("#596E79")
	colorAlert = lipgloss.Color("#FF6B6B")
	colorGood  = lipgloss.Color("#4ECDC4")
	colorMuted = lipgloss.Color("#6c757d")
)

var (
	styleHeader = lipgloss.NewStyle().
			Foreground(colorIce).
			Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorDeep)

	styleGood    = lipgloss.NewStyle().Foreground(colorGood).Bold(true)
	styleBad     = lipgloss.NewStyle().Foreground(colorAlert).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleAdded   = lipgloss.NewStyle().Foreground(colorGood)
	styleRemoved = lipgloss.NewStyle().Foreground(colorAlert)
	styleCommand = lipgloss.NewStyle().PaddingLeft(2)
)
