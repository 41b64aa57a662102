package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/ui"
	"github.com/rileyhilliard/pulse/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Persistent flag values. Only flags the user actually set override config.
var (
	cfgFile      string
	endpointFlag string
	pathFlag     string
	intervalFlag time.Duration
	timeoutFlag  time.Duration
	overlapFlag  string
	logFileFlag  string
	noColor      bool
	debugFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Live health dashboard for a host metrics endpoint",
	Long: `pulse polls a host's /analyze endpoint every couple of seconds and shows
its health score, CPU and memory as a color-coded dashboard.

Green means healthy, yellow elevated and red under pressure. When the
endpoint stops answering the indicator flips to Offline and the last good
values stay on screen.

Run 'pulse init' to create a config file, or just point it somewhere:
  pulse --endpoint http://my-box:8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor || os.Getenv("NO_COLOR") != "" {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		configureLogging(debugFlag)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	bindPersistentFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().BoolVar(&watchPlain, "plain", false, "print one line per poll instead of the dashboard")
}

func bindPersistentFlags(fs *pflag.FlagSet) {
	fs.StringVar(&cfgFile, "config", "", "config file (default ./.pulse.yaml, then ~/.config/pulse/config.yaml)")
	fs.StringVarP(&endpointFlag, "endpoint", "e", "", "base URL of the metrics endpoint (default "+config.DefaultEndpoint+")")
	fs.StringVar(&pathFlag, "path", "", "snapshot path resolved against the endpoint (default "+config.DefaultPath+")")
	fs.DurationVarP(&intervalFlag, "interval", "i", 0, "time between polls (default "+config.DefaultInterval.String()+")")
	fs.DurationVar(&timeoutFlag, "timeout", 0, "per-request timeout, 0 for none (default "+config.DefaultTimeout.String()+")")
	fs.StringVar(&overlapFlag, "overlap", "", "what to do when a poll is still running: skip or allow (default "+config.DefaultOverlap+")")
	fs.StringVar(&logFileFlag, "log-file", "", "write logs here while the dashboard is up")
	fs.BoolVar(&noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&debugFlag, "debug", false, "log every poll, same as "+logger.DebugEnv+"=1")
}

// configureLogging swaps the default logger for one that always prints debug
// lines. Without debug the env-driven default stays in place.
func configureLogging(debug bool) {
	if debug {
		logger.SetDefault(logger.NewVerboseLogger("[pulse]"))
	}
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}

	if isUnknownCommandError(err) {
		if name := extractUnknownCommand(err); name != "" {
			fmt.Fprintf(os.Stderr, "%s Unknown command %q\n\n", ui.SymbolFail, name)
			if similar := util.SuggestSimilar(name, commandNames(), 3); len(similar) > 0 {
				fmt.Fprintf(os.Stderr, "  Did you mean: %s?\n\n", strings.Join(similar, ", "))
			}
			fmt.Fprintln(os.Stderr, "  Run 'pulse --help' to see available commands")
		} else {
			fmt.Fprintf(os.Stderr, "%s %v\n\n  Run 'pulse --help' for usage\n", ui.SymbolFail, err)
		}
		os.Exit(1)
	}

	var pErr *errors.Error
	if stderrors.As(err, &pErr) {
		fmt.Fprint(os.Stderr, pErr.Error())
	} else {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.SymbolFail, err)
	}
	os.Exit(1)
}

// isUnknownCommandError checks for cobra's unknown command and flag errors.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the name out of `unknown command "foo" for "pulse"`.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// commandNames lists the visible subcommands.
func commandNames() []string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	return names
}

// loadConfig resolves config from file and environment, applies flags the
// user set and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, _, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cfg, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config, fs *pflag.FlagSet) error {
	var err error
	if fs.Changed("endpoint") {
		cfg.Endpoint, err = fs.GetString("endpoint")
		cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	}
	if err == nil && fs.Changed("path") {
		cfg.Path, err = fs.GetString("path")
	}
	if err == nil && fs.Changed("interval") {
		cfg.Interval, err = fs.GetDuration("interval")
	}
	if err == nil && fs.Changed("timeout") {
		cfg.Timeout, err = fs.GetDuration("timeout")
	}
	if err == nil && fs.Changed("overlap") {
		cfg.Overlap, err = fs.GetString("overlap")
		cfg.Overlap = strings.ToLower(strings.TrimSpace(cfg.Overlap))
	}
	if err == nil && fs.Changed("log-file") {
		cfg.LogFile, err = fs.GetString("log-file")
	}
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid command-line flag", "Run 'pulse --help' for usage")
	}
	return nil
}

// newFetcher builds the HTTP fetcher for cfg. Timeouts are applied per cycle
// by the poller, so the client itself has none.
func newFetcher(cfg *config.Config) (*poll.HTTPFetcher, error) {
	f, err := poll.NewHTTPFetcher(cfg.Endpoint, cfg.Path, &http.Client{})
	if err != nil {
		return nil, err
	}
	return f.WithUserAgent("pulse/" + GetVersion()), nil
}

func pollOptions(cfg *config.Config, log logger.Logger) (poll.Options, error) {
	overlap, err := poll.ParseOverlap(cfg.Overlap)
	if err != nil {
		return poll.Options{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid overlap policy", "Use skip or allow")
	}
	return poll.Options{
		Interval: cfg.Interval,
		Timeout:  cfg.Timeout,
		Overlap:  overlap,
		Logger:   log,
	}, nil
}
