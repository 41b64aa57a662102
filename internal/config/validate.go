package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rileyhilliard/pulse/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if err := validateEndpoint(cfg.Endpoint); err != nil {
		return err
	}

	if strings.ContainsAny(cfg.Path, " \t\n") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Snapshot path %q can't contain whitespace", cfg.Path),
			"Use a path such as /analyze")
	}

	if cfg.Interval < MinInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Poll interval %s is too short (minimum %s)", cfg.Interval, MinInterval),
			"Set 'interval' to something like 2s")
	}

	if cfg.Timeout < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Request timeout can't be negative (got %s)", cfg.Timeout),
			"Use 0 to disable the timeout, or a duration like 5s")
	}

	switch strings.ToLower(cfg.Overlap) {
	case "", "skip", "allow":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown overlap policy %q", cfg.Overlap),
			"Use 'skip' (one request at a time) or 'allow' (overlapping requests)")
	}

	if err := validateAgent(cfg.Agent); err != nil {
		return err
	}

	return nil
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errors.New(errors.ErrConfig,
			"No endpoint configured",
			"Set 'endpoint' in .pulse.yaml or pass --endpoint http://host:port")
	}

	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Endpoint %q isn't a valid http(s) URL", endpoint),
			"Use a full URL such as http://localhost:8080")
	}
	return nil
}

func validateAgent(agent AgentConfig) error {
	if strings.TrimSpace(agent.Addr) == "" {
		return errors.New(errors.ErrConfig,
			"Agent listen address is empty",
			"Set 'agent.addr' to something like :8080")
	}
	if agent.SampleWindow <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Agent sample window must be positive (got %s)", agent.SampleWindow),
			"Set 'agent.sample_window' to something like 200ms")
	}
	return nil
}
