package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399"))
	WarnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Swatch renders a coloured square for a subject colour.
func Swatch(color string) string {
	if color == "" {
		return " "
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("■")
}

// Bar renders pct (0..100) as a fixed-width bar in the given colour.
func Bar(pct, width int, color string) string {
	pct = max(0, min(100, pct))
	filled := pct * width / 100
	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style.Render(strings.Repeat("█", filled)) + MutedStyle.Render(strings.Repeat("░", width-filled))
}
