package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// MetricsPath is where Prometheus metrics are served. Empty disables the route.
	MetricsPath string `mapstructure:"metrics_path" default:"/metrics"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	if c.Port == "" {
		return ":8080"
	}
	return ":" + c.Port
}

// PublicPaths returns the routes served without authentication.
func (c Config) PublicPaths() []string {
	paths := []string{"/health"}
	if c.MetricsPath != "" {
		paths = append(paths, c.MetricsPath)
	}
	return paths
}
