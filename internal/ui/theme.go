// Package ui renders BoxFit results for the terminal.
//
// Colours adapt to light and dark terminals; when output is not a terminal
// lipgloss drops the styling and plain text remains.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPass  = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#81c784"}
	ColorWarn  = lipgloss.AdaptiveColor{Light: "#ef6c00", Dark: "#ffb74d"}
	ColorFail  = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#e57373"}
	ColorMuted = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9e9e9e"}
	// Cardboard brown, the accent of every heading.
	ColorAccent = lipgloss.AdaptiveColor{Light: "#8d6e63", Dark: "#d7b899"}
)

var (
	PassStyle    = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle    = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle    = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	LabelStyle   = lipgloss.NewStyle().Width(18).Foreground(ColorMuted)
	ValueStyle   = lipgloss.NewStyle().Bold(true)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(ColorAccent)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)
