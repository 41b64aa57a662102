package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"https endpoint", func(c *Config) { c.Endpoint = "https://status.example.com" }, ""},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, "No endpoint"},
		{"endpoint without scheme", func(c *Config) { c.Endpoint = "localhost:8080" }, "valid http(s) URL"},
		{"ftp endpoint", func(c *Config) { c.Endpoint = "ftp://host" }, "valid http(s) URL"},
		{"endpoint without host", func(c *Config) { c.Endpoint = "http://" }, "valid http(s) URL"},
		{"path with space", func(c *Config) { c.Path = "/ana lyze" }, "whitespace"},
		{"minimum interval", func(c *Config) { c.Interval = MinInterval }, ""},
		{"interval too short", func(c *Config) { c.Interval = 50 * time.Millisecond }, "too short"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ""},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "negative"},
		{"allow overlap", func(c *Config) { c.Overlap = "allow" }, ""},
		{"uppercase overlap", func(c *Config) { c.Overlap = "SKIP" }, ""},
		{"unknown overlap", func(c *Config) { c.Overlap = "queue" }, "overlap policy"},
		{"empty agent addr", func(c *Config) { c.Agent.Addr = " " }, "listen address"},
		{"zero sample window", func(c *Config) { c.Agent.SampleWindow = 0 }, "sample window"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}
