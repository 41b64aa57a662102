package cli

import (
	"fmt"
	"io"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/doctor"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/ui"
	"github.com/spf13/cobra"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, endpoint and terminal",
	Long: `Run diagnostics: find and validate the config, fetch one snapshot and
check it renders, time the request against the poll interval, and see what
the terminal supports.

Exits non-zero when any check fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, loadErr := config.LoadOrDefault(cfgFile)
		if loadErr == nil {
			loadErr = applyFlagOverrides(cfg, cmd.Flags())
		}

		results := doctor.RunAll(cmd.Context(), doctorChecks(cfg, loadErr))

		out := cmd.OutOrStdout()
		if doctorJSON {
			if err := WriteJSONSuccess(out, DoctorReport{Checks: results, Summary: doctor.Summary(results)}); err != nil {
				return err
			}
		} else {
			printDoctorResults(out, results)
		}

		if doctor.HasFailures(results) {
			return errors.NewExitError(1)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "print results as JSON")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorReport is the data of `pulse doctor --json`.
type DoctorReport struct {
	Checks  []doctor.CheckResult `json:"checks"`
	Summary string               `json:"summary"`
}

// doctorChecks lists the checks to run. Endpoint checks need a valid config
// and are left out without one.
func doctorChecks(cfg *config.Config, loadErr error) []doctor.Check {
	checks := []doctor.Check{
		&doctor.ConfigFileCheck{ConfigPath: cfgFile},
		&doctor.ConfigValidCheck{Config: cfg, LoadErr: loadErr},
	}
	if loadErr == nil && config.Validate(cfg) == nil {
		if f, err := newFetcher(cfg); err == nil {
			checks = append(checks, doctor.EndpointChecks(f, cfg.Timeout, cfg.Interval)...)
		}
	}
	return append(checks, &doctor.TerminalCheck{})
}

func printDoctorResults(w io.Writer, results []doctor.CheckResult) {
	category := ""
	for _, r := range results {
		if r.Category != category {
			if category != "" {
				fmt.Fprintln(w)
			}
			category = r.Category
			fmt.Fprintln(w, ui.Muted(category))
		}

		var symbol string
		switch r.Status {
		case doctor.StatusPass:
			symbol = ui.Success(ui.SymbolSuccess)
		case doctor.StatusWarn:
			symbol = ui.Warning(ui.SymbolWarning)
		default:
			symbol = ui.Error(ui.SymbolFail)
		}
		fmt.Fprintf(w, "  %s %s\n", symbol, r.Message)
		if r.Suggestion != "" && r.Status != doctor.StatusPass {
			fmt.Fprintf(w, "      %s\n", ui.Muted(r.Suggestion))
		}
	}
	fmt.Fprintf(w, "\n%s\n", doctor.Summary(results))
}
