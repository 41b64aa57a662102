package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/surface"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	state := m.board.State()

	var b strings.Builder
	b.WriteString(m.renderHeader(state))
	b.WriteString("\n\n")

	if !m.received {
		b.WriteString(m.spinner.View() + " " + LabelStyle.Render("Connecting to "+m.endpoint+"..."))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderCards(state))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title, the connection badge and the snapshot's
// timestamp and uptime.
func (m Model) renderHeader(state surface.State) string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("pulse")

	conn := state[surface.ConnectionStatus]
	badgeText := conn.Text
	if badgeText == "" {
		badgeText = "● Connecting"
	}
	badge := styleFor(conn.Style(surface.Color), ColorTextSecondary).Padding(0, 1)
	if bg, ok := CSSColor(conn.Style(surface.Background)); ok {
		badge = badge.Background(bg)
	}

	stats := LabelStyle.Render(fmt.Sprintf(" %s | updated %s | uptime %ss",
		m.endpoint, text(state, surface.Timestamp), text(state, surface.Uptime)))

	return HeaderStyle.Render(title + " " + badge.Render(badgeText) + stats)
}

// renderCards lays out the metric cards side by side when they fit, stacked
// otherwise.
func (m Model) renderCards(state surface.State) string {
	cards := []string{
		m.renderHealthCard(state),
		m.renderCPUCard(state),
		m.renderMemoryCard(state),
	}

	rowWidth := 0
	for _, c := range cards {
		rowWidth += lipgloss.Width(c)
	}
	if m.width > 0 && m.width < rowWidth {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderFooter renders the keyboard hints and the latest failure, if any.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"? help",
		fmt.Sprintf("%d polls", m.cycles),
	}
	footer := FooterStyle.Render(strings.Join(hints, " | "))

	if m.received && !m.last.OK() {
		msg := fmt.Sprintf("last poll failed: %s", errors.Summary(m.last.Err))
		if m.failures > 1 {
			msg = fmt.Sprintf("%d polls failed in a row, latest: %s", m.failures, errors.Summary(m.last.Err))
		}
		footer += "\n" + ErrorStyle.Padding(0, 1).Render(msg)
	}
	return footer
}

// RenderStatic draws the board once, without the interactive footer, for
// one-shot output.
func RenderStatic(board *surface.Board, endpoint string) string {
	m := NewModel(board, nil, endpoint, 0)
	m.received = true
	state := board.State()
	return m.renderHeader(state) + "\n\n" + m.renderCards(state) + "\n"
}
