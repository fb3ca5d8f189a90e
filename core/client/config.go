package client

// Config holds configuration for the remote API client.
type Config struct {
	// BaseURL is the root URL of the remote API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8081"`
	// APIKey is sent with every request when set.
	APIKey string `mapstructure:"api_key" default:""`
	// AuthHeader is the header carrying APIKey. "Authorization" sends a bearer token.
	AuthHeader string `mapstructure:"auth_header" default:"Authorization"`
	// TimeoutSeconds bounds connection setup and the whole request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// RetryBaseMillis is the initial backoff interval in milliseconds.
	RetryBaseMillis int `mapstructure:"retry_base_ms" default:"200"`
}
