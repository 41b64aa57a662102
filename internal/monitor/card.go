package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pulse/internal/surface"
)

// cardWidth is the inner width of each metric card.
const cardWidth = 30

// placeholder is shown for regions that have not been rendered yet.
const placeholder = "--"

func text(state surface.State, id surface.RegionID) string {
	if t := state[id].Text; t != "" {
		return t
	}
	return placeholder
}

// renderCardLine renders a label/value pair padded to the card width.
func renderCardLine(label, value string) string {
	l := LabelStyle.Render(label)
	gap := cardWidth - lipgloss.Width(l) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return l + strings.Repeat(" ", gap) + value
}

func renderCard(title string, border lipgloss.Color, lines []string) string {
	style := CardStyle.Width(cardWidth + 2) // padding
	if border != "" {
		style = style.BorderForeground(border)
	}
	body := append([]string{CardTitleStyle.Render(title)}, lines...)
	return style.Render(strings.Join(body, "\n"))
}

// renderHealthCard shows the score in its tier color, with the card border
// standing in for the score ring.
func (m Model) renderHealthCard(state surface.State) string {
	circle := state[surface.ScoreCircle]
	score := styleFor(circle.Style(surface.Color), ColorTextPrimary).Bold(true).
		Render(text(state, surface.HealthScore))
	message := styleFor(state[surface.StatusMessage].Style(surface.Color), ColorTextSecondary).
		Render(text(state, surface.StatusMessage))

	lines := []string{
		"",
		lipgloss.PlaceHorizontal(cardWidth, lipgloss.Center, score),
		lipgloss.PlaceHorizontal(cardWidth, lipgloss.Center, message),
		"",
	}
	if spark := Sparkline(m.history.Score(), cardWidth, true); spark != "" {
		lines = append(lines, spark)
	}

	border, _ := CSSColor(circle.Style(surface.BorderColor))
	return renderCard("Health", border, lines)
}

func (m Model) renderCPUCard(state surface.State) string {
	lines := []string{
		renderCardLine("Usage", ValueStyle.Render(text(state, surface.CPUUsage))),
		renderBar(state[surface.CPUBar]),
		renderCardLine("Load 1m / 5m", ValueStyle.Render(
			fmt.Sprintf("%s / %s", text(state, surface.Load1m), text(state, surface.Load5m)))),
		renderCardLine("vCPUs", ValueStyle.Render(text(state, surface.CPUCores))),
		renderCardLine("Utilization", ValueStyle.Render(text(state, surface.CPURatio))),
	}
	if spark := Sparkline(m.history.CPU(), cardWidth, false); spark != "" {
		lines = append(lines, spark)
	}
	return renderCard("CPU", "", lines)
}

func (m Model) renderMemoryCard(state surface.State) string {
	lines := []string{
		renderCardLine("Used", ValueStyle.Render(
			fmt.Sprintf("%s / %s MB", text(state, surface.MemUsed), text(state, surface.MemTotal)))),
		renderBar(state[surface.MemBar]),
		renderCardLine("Available", ValueStyle.Render(text(state, surface.MemAvailable)+" MB")),
		renderCardLine("Headroom", ValueStyle.Render(text(state, surface.MemHeadroom))),
	}
	if spark := Sparkline(m.history.Memory(), cardWidth, false); spark != "" {
		lines = append(lines, spark)
	}
	return renderCard("Memory", "", lines)
}

// renderBar draws a bar region from its width and background-color styles.
func renderBar(r surface.Region) string {
	percent, ok := ParseWidth(r.Style(surface.Width))
	if !ok {
		return MutedStyle.Render(strings.Repeat(barEmpty, cardWidth))
	}
	color, _ := CSSColor(r.Style(surface.BackgroundColor))
	return ProgressBar(cardWidth, percent, color)
}
