package config

import "time"

// Config represents the complete .pulse.yaml configuration file.
type Config struct {
	// Endpoint is the base URL the snapshot path resolves against.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Path is the snapshot resource, relative to Endpoint.
	Path string `yaml:"path" mapstructure:"path"`

	// Interval is the time between poll cycle starts.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Timeout bounds each request. Zero disables the limit.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Overlap is "skip" or "allow": what to do when a tick fires while
	// the previous request is still in flight.
	Overlap string `yaml:"overlap" mapstructure:"overlap"`

	// LogFile receives log output while the TUI owns the terminal.
	// Empty discards it.
	LogFile string `yaml:"log_file,omitempty" mapstructure:"log_file"`

	Agent AgentConfig `yaml:"agent" mapstructure:"agent"`
}

// AgentConfig controls the local snapshot server started by 'pulse agent'.
type AgentConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// SampleWindow is how long CPU usage is measured for each snapshot.
	SampleWindow time.Duration `yaml:"sample_window" mapstructure:"sample_window"`
}

// Defaults.
const (
	DefaultEndpoint     = "http://localhost:8080"
	DefaultPath         = "/analyze"
	DefaultInterval     = 2 * time.Second
	DefaultTimeout      = 5 * time.Second
	DefaultOverlap      = "skip"
	DefaultAgentAddr    = ":8080"
	DefaultSampleWindow = 200 * time.Millisecond

	// MinInterval keeps a misconfigured interval from hammering the endpoint.
	MinInterval = 100 * time.Millisecond
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Path:     DefaultPath,
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		Overlap:  DefaultOverlap,
		Agent: AgentConfig{
			Addr:         DefaultAgentAddr,
			SampleWindow: DefaultSampleWindow,
		},
	}
}
