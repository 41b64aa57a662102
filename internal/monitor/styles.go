package monitor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rileyhilliard/pulse/internal/tier"
)

// Dashboard color palette (Catppuccin Mocha, matching the tier colors)
const (
	ColorBase    = lipgloss.Color("#1e1e2e")
	ColorSurface = lipgloss.Color("#313244")
	ColorBorder  = lipgloss.Color("#45475a")

	ColorTextPrimary   = lipgloss.Color("#cdd6f4")
	ColorTextSecondary = lipgloss.Color("#a6adc8")
	ColorTextMuted     = lipgloss.Color("#6c7086")

	ColorAccent = lipgloss.Color("#cba6f7")
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	CardTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(tier.ColorBad))
)

// Bar glyphs
const (
	barFilled = "▰"
	barEmpty  = "▱"
)

// CSSColor converts a surface color value to a terminal color. Hex colors pass
// through; rgba() colors are blended over the dashboard base so translucent
// badge backgrounds read the same way they would on a dark page. Anything
// else yields ok == false.
func CSSColor(value string) (lipgloss.Color, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		if _, err := colorful.Hex(value); err != nil {
			return "", false
		}
		return lipgloss.Color(value), true
	}

	inner, found := strings.CutPrefix(value, "rgba(")
	if !found {
		return "", false
	}
	inner, found = strings.CutSuffix(inner, ")")
	if !found {
		return "", false
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return "", false
	}

	var ch [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", false
		}
		ch[i] = v
	}

	base, _ := colorful.Hex(string(ColorBase))
	fg := colorful.Color{R: clamp01(ch[0] / 255), G: clamp01(ch[1] / 255), B: clamp01(ch[2] / 255)}
	return lipgloss.Color(base.BlendRgb(fg, clamp01(ch[3])).Clamped().Hex()), true
}

// ParseWidth reads a width property such as "42.5%" as a percentage.
func ParseWidth(value string) (float64, bool) {
	num, found := strings.CutSuffix(strings.TrimSpace(value), "%")
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ProgressBar renders a bar of the given width filled to percent, in color.
// An empty color falls back to the muted text color.
func ProgressBar(width int, percent float64, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}

	if !(percent >= 0) {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	if color == "" {
		color = ColorTextMuted
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(barFilled, filled)) +
		MutedStyle.Render(strings.Repeat(barEmpty, width-filled))
}

// styleFor builds a foreground style from a surface color, falling back to
// the given default when the value is missing or unreadable.
func styleFor(value string, fallback lipgloss.Color) lipgloss.Style {
	if c, ok := CSSColor(value); ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(fallback)
}

func clamp01(v float64) float64 {
	if !(v >= 0) { // also catches NaN
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
