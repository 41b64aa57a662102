package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pulse/internal/tier"
)

// Semantic colors. They reuse the tier palette so a ✓ from `pulse init`
// matches a healthy card on the dashboard.
const (
	ColorSuccess = lipgloss.Color(tier.ColorGood)
	ColorWarning = lipgloss.Color(tier.ColorMedium)
	ColorError   = lipgloss.Color(tier.ColorBad)
	ColorMuted   = lipgloss.Color(tier.ColorUnknown)
	ColorInfo    lipgloss.Color = "#89b4fa"
)

// Success renders text in the success color.
func Success(s string) string {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Render(s)
}

// Warning renders text in the warning color.
func Warning(s string) string {
	return lipgloss.NewStyle().Foreground(ColorWarning).Render(s)
}

// Error renders text in the error color.
func Error(s string) string {
	return lipgloss.NewStyle().Foreground(ColorError).Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(s)
}
