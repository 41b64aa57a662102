package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/surface"
)

// Trigger requests an out-of-schedule poll.
type Trigger interface {
	Trigger()
}

// CycleMsg carries a completed poll cycle into the Bubble Tea loop.
// The board has already been updated when it arrives.
type CycleMsg struct {
	Result poll.Result
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	board    *surface.Board
	trigger  Trigger
	history  *History
	spinner  spinner.Model
	endpoint string
	interval time.Duration

	received bool // at least one cycle has completed
	last     poll.Result
	cycles   int
	failures int // consecutive failed cycles

	width    int
	height   int
	showHelp bool
	quitting bool
}

// NewModel creates a dashboard over board. trigger may be nil, in which case
// the refresh key does nothing.
func NewModel(board *surface.Board, trigger Trigger, endpoint string, interval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 8,
	}
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	return Model{
		board:    board,
		trigger:  trigger,
		history:  NewHistory(DefaultHistorySize),
		spinner:  sp,
		endpoint: endpoint,
		interval: interval,
	}
}

// Init starts the connecting spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case spinner.TickMsg:
		// The spinner only animates until the first cycle lands
		if m.received {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case CycleMsg:
		m.record(msg.Result)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

func (m *Model) record(r poll.Result) {
	m.received = true
	m.last = r
	m.cycles++
	if r.OK() {
		m.failures = 0
		m.history.Push(r.Snapshot)
	} else {
		m.failures++
	}
}

// Cycles returns the number of cycles the dashboard has seen.
func (m Model) Cycles() int {
	return m.cycles
}

// Failures returns the number of consecutive failed cycles.
func (m Model) Failures() int {
	return m.failures
}
