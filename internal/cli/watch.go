package cli

import (
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/monitor"
	"github.com/spf13/cobra"
)

var watchPlain bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the live dashboard (default command)",
	Long: `Poll the endpoint and show the live dashboard until you quit.

The first poll runs immediately, then one every interval. On a terminal this
opens the full-screen dashboard; when stdout is piped, or with --plain, it
prints one line per poll instead.

Keys:
  q, ctrl+c  quit
  r          poll now
  ?          help`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "print one line per poll instead of the dashboard")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.Default()
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	opts, err := pollOptions(cfg, log)
	if err != nil {
		return err
	}

	return monitor.Run(cmd.Context(), monitor.RunOptions{
		Fetcher:  fetcher,
		Poll:     opts,
		Endpoint: fetcher.URL(),
		LogFile:  cfg.LogFile,
		Logger:   log,
		Plain:    watchPlain,
		Out:      cmd.OutOrStdout(),
	})
}
