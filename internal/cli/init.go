package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/poll"
	"github.com/rileyhilliard/pulse/internal/ui"
	"github.com/spf13/cobra"
)

// probeTimeout bounds the endpoint check when the config has no timeout.
const probeTimeout = 10 * time.Second

var (
	initForce          bool
	initNonInteractive bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .pulse.yaml config in the current directory",
	Long: `Ask for the endpoint and polling settings, check the endpoint answers,
and write .pulse.yaml.

Values given with --endpoint, --interval and --overlap pre-fill the form, or
are used as-is with --non-interactive. CI=true implies --non-interactive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initDefaults()
		fs := cmd.Flags()
		if fs.Changed("endpoint") {
			opts.Endpoint = endpointFlag
		}
		if fs.Changed("interval") {
			opts.Interval = intervalFlag
		}
		if fs.Changed("overlap") {
			opts.Overlap = overlapFlag
		}
		opts.Overwrite = initForce
		opts.NonInteractive = opts.NonInteractive || initNonInteractive
		opts.Out = cmd.OutOrStdout()
		return Init(cmd.Context(), opts)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "skip prompts and use flags or defaults")
	rootCmd.AddCommand(initCmd)
}

// InitOptions holds options for Init.
type InitOptions struct {
	Endpoint       string
	Interval       time.Duration
	Overlap        string
	Overwrite      bool // replace an existing config without asking
	NonInteractive bool
	Dir            string // where .pulse.yaml is written; "" is the current directory
	Out            io.Writer
}

// initDefaults seeds InitOptions from the environment.
func initDefaults() InitOptions {
	opts := InitOptions{
		Endpoint: os.Getenv("PULSE_ENDPOINT"),
		Overlap:  os.Getenv("PULSE_OVERLAP"),
	}
	if d, err := time.ParseDuration(os.Getenv("PULSE_INTERVAL")); err == nil {
		opts.Interval = d
	}
	if os.Getenv("PULSE_NON_INTERACTIVE") == "true" || os.Getenv("CI") == "true" {
		opts.NonInteractive = true
	}
	return opts
}

// Init writes a new .pulse.yaml, probing the endpoint first.
func Init(ctx context.Context, opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				"Config file already exists: "+configPath,
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("'%s' already exists. Overwrite?", config.ConfigFileName)).
				Value(&overwrite),
		))
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Run with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Endpoint != "" {
		cfg.Endpoint = strings.TrimSpace(opts.Endpoint)
	}
	if opts.Interval > 0 {
		cfg.Interval = opts.Interval
	}
	if opts.Overlap != "" {
		cfg.Overlap = strings.ToLower(strings.TrimSpace(opts.Overlap))
	}

	if !opts.NonInteractive {
		if err := askConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := probeEndpoint(ctx, cfg, out); err != nil {
		if opts.NonInteractive {
			fmt.Fprintf(out, "\n%s %s\n\n", ui.Warning(ui.SymbolWarning),
				"Endpoint isn't answering yet, saving anyway: "+errors.Summary(err))
		} else {
			fmt.Fprintf(out, "\n%s %s\n\n", ui.Error(ui.SymbolFail), errors.Summary(err))

			var saveAnyway bool
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title("Save config anyway? (the dashboard shows Offline until it answers)").
					Value(&saveAnyway),
			))
			if formErr := form.Run(); formErr != nil || !saveAnyway {
				return err
			}
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.Success(ui.SymbolSuccess), configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  pulse          - open the live dashboard")
	fmt.Fprintln(out, "  pulse once     - poll once and print the result")
	fmt.Fprintln(out, "  pulse agent    - serve /analyze for this machine")
	return nil
}

func askConfig(cfg *config.Config) error {
	endpoint := cfg.Endpoint
	interval := cfg.Interval.String()
	overlap := cfg.Overlap

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Endpoint").
				Description("Base URL of the host serving "+cfg.Path).
				Placeholder(config.DefaultEndpoint).
				Value(&endpoint).
				Validate(func(s string) error {
					_, err := poll.ResolveURL(s, cfg.Path)
					if err != nil {
						return fmt.Errorf("enter a full http(s) URL")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Poll interval").
				Description("How often to poll, e.g. 2s or 500ms").
				Placeholder(config.DefaultInterval.String()).
				Value(&interval).
				Validate(validateInterval),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("When a poll is still running at the next tick").
				Options(
					huh.NewOption("Skip the tick", string(poll.OverlapSkip)),
					huh.NewOption("Start another poll anyway", string(poll.OverlapAllow)),
				).
				Value(&overlap),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive")
	}

	cfg.Endpoint = strings.TrimSpace(endpoint)
	cfg.Interval, _ = time.ParseDuration(strings.TrimSpace(interval))
	cfg.Overlap = overlap
	return nil
}

func validateInterval(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a duration such as 2s")
	}
	if d < config.MinInterval {
		return fmt.Errorf("must be at least %s", config.MinInterval)
	}
	return nil
}

// probeEndpoint fetches one snapshot behind a spinner.
func probeEndpoint(ctx context.Context, cfg *config.Config, out io.Writer) error {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = probeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	spinner := ui.NewSpinner("Checking " + fetcher.URL())
	spinner.SetOutput(out)
	spinner.Start()

	if _, err := fetcher.Fetch(ctx); err != nil {
		spinner.Fail()
		return err
	}
	spinner.Success()
	return nil
}
