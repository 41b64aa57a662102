package doctor

import (
	"context"
	stderrors "errors"

	"github.com/rileyhilliard/pulse/internal/config"
	"github.com/rileyhilliard/pulse/internal/errors"
)

// ConfigFileCheck reports which config file is in effect. Running on
// defaults alone is a warning, not a failure.
type ConfigFileCheck struct {
	ConfigPath string // explicit --config value, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run(context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    errors.Summary(err),
			Suggestion: "Check the --config path or run 'pulse init'",
		}
	}
	if path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No config file, using defaults and PULSE_* environment",
			Suggestion: "Run 'pulse init' to create " + config.ConfigFileName,
		}
	}
	return CheckResult{Status: StatusPass, Message: "Config file: " + path}
}

// ConfigValidCheck validates the resolved configuration.
type ConfigValidCheck struct {
	Config *config.Config
	// LoadErr is the error from loading, if loading failed.
	LoadErr error
}

func (c *ConfigValidCheck) Name() string     { return "config_valid" }
func (c *ConfigValidCheck) Category() string { return "CONFIG" }

func (c *ConfigValidCheck) Run(context.Context) CheckResult {
	if c.LoadErr != nil {
		return failure(c.LoadErr, "Check the YAML in your config file")
	}
	if err := config.Validate(c.Config); err != nil {
		return failure(err, "")
	}
	return CheckResult{
		Status: StatusPass,
		Message: "Polling " + c.Config.Endpoint + c.Config.Path +
			" every " + c.Config.Interval.String(),
	}
}

// failure builds a failed result from a structured error, preferring the
// error's own suggestion.
func failure(err error, fallback string) CheckResult {
	var suggestion string
	var pErr *errors.Error
	if stderrors.As(err, &pErr) {
		suggestion = pErr.Suggestion
	}
	if suggestion == "" {
		suggestion = fallback
	}
	return CheckResult{Status: StatusFail, Message: errors.Summary(err), Suggestion: suggestion}
}
