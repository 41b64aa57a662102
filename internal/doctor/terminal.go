package doctor

import (
	"context"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalCheck reports whether stdout can host the interactive dashboard
// and how many colors it gets.
type TerminalCheck struct {
	// Fd is the file descriptor to inspect. Zero means stdout.
	Fd int
}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return "TERMINAL" }

func (c *TerminalCheck) Run(context.Context) CheckResult {
	fd := c.Fd
	if fd == 0 {
		fd = int(os.Stdout.Fd())
	}
	if !term.IsTerminal(fd) {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "Output is not a terminal, 'pulse watch' will print plain lines",
			Suggestion: "Run in an interactive terminal for the dashboard",
		}
	}

	profile := termenv.NewOutput(os.Stdout).EnvColorProfile()
	if profile == termenv.Ascii {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "Terminal reports no color support, tiers will be hard to tell apart",
			Suggestion: "Unset NO_COLOR or use a terminal with color support",
		}
	}
	return CheckResult{Status: StatusPass, Message: "Terminal supports " + profileName(profile)}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "true color"
	case termenv.ANSI256:
		return "256 colors"
	case termenv.ANSI:
		return "16 colors"
	default:
		return "no color"
	}
}
