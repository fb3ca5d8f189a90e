package reconcile

import "time"

// Config holds the fetch policy settings for synchronizers built from configuration.
type Config struct {
	// StaleAfterSeconds is how long a local copy counts as fresh. Zero always fetches.
	StaleAfterSeconds int `mapstructure:"stale_after_seconds" default:"300"`
	// LoadingMessage is the message attached to Loading emissions.
	LoadingMessage string `mapstructure:"loading_message" default:"Loading..."`
}

// StaleAfter returns the configured freshness window.
func (c Config) StaleAfter() time.Duration {
	if c.StaleAfterSeconds <= 0 {
		return 0
	}
	return time.Duration(c.StaleAfterSeconds) * time.Second
}
