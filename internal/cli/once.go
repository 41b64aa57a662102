package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/monitor"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/render"
	"github.com/rileyhilliard/pulse/internal/snapshot"
	"github.com/rileyhilliard/pulse/internal/surface"
	"github.com/spf13/cobra"
)

var onceJSON bool

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Poll the endpoint once and print the result",
	Long: `Run a single poll cycle and print the dashboard cards, then exit.

Exits non-zero when the endpoint is offline, which makes it usable as a
health check in scripts:

  pulse once --json | jq .data.snapshot.health_score`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg, err := loadConfig(cmd)
		if err != nil {
			if onceJSON {
				_ = WriteJSONFromError(out, err)
				return errors.NewExitError(1)
			}
			return err
		}
		return runOnce(cmd.Context(), cfg, out, onceJSON)
	},
}

func init() {
	onceCmd.Flags().BoolVar(&onceJSON, "json", false, "print a JSON envelope instead of the cards")
	rootCmd.AddCommand(onceCmd)
}

// OnceResult is the data of a successful `pulse once --json`.
type OnceResult struct {
	Endpoint   string             `json:"endpoint"`
	State      string             `json:"state"`
	DurationMS int64              `json:"duration_ms"`
	Snapshot   *snapshot.Snapshot `json:"snapshot,omitempty"`
	Surface    surface.State      `json:"surface"`
}

// runOnce polls once and reports the outcome on out. An offline result is an
// error so the process exits non-zero.
func runOnce(ctx context.Context, cfg *config.Config, out io.Writer, asJSON bool) error {
	fail := func(err error) error {
		if asJSON {
			_ = WriteJSONFromError(out, err)
			return errors.NewExitError(1)
		}
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return fail(err)
	}
	log := logger.Default()
	opts, err := pollOptions(cfg, log)
	if err != nil {
		return fail(err)
	}

	board := surface.NewBoard()
	res := poll.New(fetcher, render.New(board, log), opts).Cycle(ctx)

	if asJSON {
		if !res.OK() {
			return fail(res.Err)
		}
		snap := res.Snapshot
		return WriteJSONSuccess(out, OnceResult{
			Endpoint:   fetcher.URL(),
			State:      res.State.String(),
			DurationMS: res.Duration.Milliseconds(),
			Snapshot:   &snap,
			Surface:    board.State(),
		})
	}

	fmt.Fprint(out, monitor.RenderStatic(board, fetcher.URL()))
	if !res.OK() {
		return res.Err
	}
	return nil
}
