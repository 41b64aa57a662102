package monitor

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/surface"
)

// LinePrinter writes one line per completed cycle, for output that is not a
// terminal. Lines are read from the board so they show exactly what the
// dashboard would.
type LinePrinter struct {
	mu    sync.Mutex
	board *surface.Board
	w     io.Writer
}

// NewLinePrinter creates a printer over board writing to w.
func NewLinePrinter(board *surface.Board, w io.Writer) *LinePrinter {
	return &LinePrinter{board: board, w: w}
}

// OnCycle prints the cycle. It matches poll.Options.OnCycle. The surface
// captured with the result wins over the board, which may already show a
// later cycle.
func (p *LinePrinter) OnCycle(r poll.Result) {
	state := r.Surface
	if state == nil {
		state = p.board.State()
	}
	line := FormatLine(state, r)

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, line)
}

// FormatLine renders a board and the cycle that produced it as one line.
func FormatLine(state surface.State, r poll.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s", r.Seq, r.State)

	if !r.OK() {
		fmt.Fprintf(&b, " error=%q", errors.Summary(r.Err))
		return b.String()
	}

	fmt.Fprintf(&b, " at=%s score=%s message=%q cpu=%s load=%s/%s mem=%s/%sMB (%s) headroom=%s",
		text(state, surface.Timestamp),
		text(state, surface.HealthScore),
		state[surface.StatusMessage].Text,
		text(state, surface.CPUUsage),
		text(state, surface.Load1m),
		text(state, surface.Load5m),
		text(state, surface.MemUsed),
		text(state, surface.MemTotal),
		state[surface.MemBar].Style(surface.Width),
		text(state, surface.MemHeadroom),
	)
	return b.String()
}
