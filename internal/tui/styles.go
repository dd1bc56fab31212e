// Package tui implements the interactive task list using Bubbletea.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorCyan    = lipgloss.Color("86")
	ColorGreen   = lipgloss.Color("78")
	ColorYellow  = lipgloss.Color("221")
	ColorRed     = lipgloss.Color("196")
	ColorBlue    = lipgloss.Color("111")
	ColorGray    = lipgloss.Color("245")
	ColorDimGray = lipgloss.Color("239")
)

// Priority colors
var PriorityColors = map[string]lipgloss.Color{
	"low":    ColorBlue,
	"medium": ColorYellow,
	"high":   ColorRed,
}

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	CompletedStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray).
			Strikethrough(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	HelpTextStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	StatusMsgStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// List indicators
const (
	IndicatorDone     = "✓"
	IndicatorOpen     = "○"
	IndicatorSelected = "❯"
)

// GetPriorityStyle returns the style for a priority name.
func GetPriorityStyle(priority string) lipgloss.Style {
	color, ok := PriorityColors[priority]
	if !ok {
		color = ColorGray
	}
	return lipgloss.NewStyle().Foreground(color)
}
