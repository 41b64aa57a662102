// Package monitor implements the terminal dashboard for a pulse endpoint.
//
// The dashboard draws the regions of a surface.Board: the renderer writes
// each poll cycle's outcome there, and the view turns the board into header,
// health, CPU and memory cards. Nothing in this package reads snapshots
// directly except the history used for sparklines.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds UI state (board handle, history, last result, layout)
//   - Update: Processes messages (keystrokes, window size, completed cycles)
//   - View: Renders the board to a string for display
//
// # Message Flow
//
// Polling happens outside the Bubble Tea loop:
//
//  1. poll.Poller runs a cycle every interval on its own goroutines
//  2. the cycle renders into the Board, then calls its OnCycle hook
//  3. Bridge forwards the result as a CycleMsg via program.Send
//  4. Update records the result, View re-reads the Board
//
// When stdout is not a terminal, Run prints one line per cycle instead.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Poll now
//	?           - Toggle help overlay
//	Esc         - Close help
package monitor
