package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/pulse/internal/errors"
	"gopkg.in/yaml.v3"
)

const fileHeader = `# pulse configuration
# Run 'pulse' to open the dashboard, 'pulse once' for a single reading.
# Every key can be overridden with a PULSE_* environment variable.

`

// Marshal renders cfg as commented YAML. Durations are written as strings
// such as "2s".
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append([]byte(fileHeader), data...), nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"Check the values you entered")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to create config directory: "+dir,
				"Check directory permissions")
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+path,
			"Check directory permissions")
	}
	return nil
}
