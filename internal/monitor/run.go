package monitor

import (
	"context"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/render"
	"github.com/rileyhilliard/pulse/internal/surface"
	"golang.org/x/term"
)

// RunOptions configures the dashboard execution.
type RunOptions struct {
	Fetcher poll.Fetcher
	// Poll is passed to the poller. Its OnCycle, if set, still runs.
	Poll     poll.Options
	Endpoint string
	// LogFile receives log output while the TUI is up. Empty discards it.
	LogFile string
	Logger  logger.Logger
	// Plain forces line output even on a terminal.
	Plain bool
	// Out is where line output goes. Defaults to os.Stdout.
	Out io.Writer
}

// Run polls until ctx is cancelled or the user quits. On a terminal it shows
// the interactive dashboard; otherwise it prints one line per cycle.
func Run(ctx context.Context, opts RunOptions) error {
	board := surface.NewBoard()
	renderer := render.New(board, opts.Logger)

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Plain || !isTerminal(out) {
		return runPlain(ctx, board, renderer, out, opts)
	}
	return runTUI(ctx, board, renderer, opts)
}

func runPlain(ctx context.Context, board *surface.Board, renderer *render.Renderer, out io.Writer, opts RunOptions) error {
	printer := NewLinePrinter(board, out)

	pollOpts := opts.Poll
	pollOpts.Logger = opts.Logger
	pollOpts.View = board.State
	pollOpts.OnCycle = chain(opts.Poll.OnCycle, printer.OnCycle)

	err := poll.New(opts.Fetcher, renderer, pollOpts).Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func runTUI(parent context.Context, board *surface.Board, renderer *render.Renderer, opts RunOptions) error {
	// Log lines would corrupt the alt screen
	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "pulse")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open log file: "+opts.LogFile,
				"Check the log_file setting and directory permissions")
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	defer log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// The bridge needs the program and the model needs the poller, so the
	// hook resolves the bridge lazily. Nothing polls before it is set.
	var bridge *Bridge
	pollOpts := opts.Poll
	pollOpts.Logger = opts.Logger
	pollOpts.OnCycle = chain(opts.Poll.OnCycle, func(r poll.Result) { bridge.OnCycle(r) })
	poller := poll.New(opts.Fetcher, renderer, pollOpts)

	program := tea.NewProgram(
		NewModel(board, poller, opts.Endpoint, poller.Interval()),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	bridge = NewBridge(program)

	done := make(chan error, 1)
	go func() {
		done <- poller.Run(ctx)
	}()

	_, err := program.Run()
	cancel()
	<-done

	if err != nil && parent.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Dashboard failed",
			"Try --plain for line output, or check terminal compatibility")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// chain combines cycle hooks, skipping nil ones.
func chain(hooks ...func(poll.Result)) func(poll.Result) {
	return func(r poll.Result) {
		for _, h := range hooks {
			if h != nil {
				h(r)
			}
		}
	}
}
