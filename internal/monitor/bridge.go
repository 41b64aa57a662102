package monitor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/pulse/internal/poll"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// Bridge forwards poll results to the Bubble Tea program via program.Send().
// This is goroutine-safe.
type Bridge struct {
	program sender
}

// NewBridge creates a new bridge that forwards results to the given program.
func NewBridge(program sender) *Bridge {
	return &Bridge{program: program}
}

// OnCycle forwards a completed cycle to the TUI. It matches poll.Options.OnCycle.
func (b *Bridge) OnCycle(r poll.Result) {
	b.program.Send(CycleMsg{Result: r})
}
