package reconcile

import "time"

// Config holds configuration for the update dispatch engine.
type Config struct {
	// Workers is the size of the dispatch worker pool.
	Workers int `mapstructure:"workers" default:"4"`

	// RatePerSecond is the shared outgoing-request ceiling. The default
	// matches the platform's REST admin limit of two requests per second.
	RatePerSecond float64 `mapstructure:"rate_per_second" default:"2"`

	// Burst is the token-bucket burst size.
	Burst int `mapstructure:"burst" default:"4"`

	// MaxAttempts is the per-task write attempt ceiling.
	MaxAttempts int `mapstructure:"max_attempts" default:"5"`

	// RunTimeoutSeconds is the hard wall-clock budget for the whole run.
	RunTimeoutSeconds int `mapstructure:"run_timeout_seconds" default:"900"`
}

// RunTimeout returns the run budget as a duration.
func (c Config) RunTimeout() time.Duration {
	if c.RunTimeoutSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.RunTimeoutSeconds) * time.Second
}
