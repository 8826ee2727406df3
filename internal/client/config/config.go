package config

import "time"

// Config holds runtime settings for the licensing admin CLI.
//
// Fields:
//   - GatewayBaseURL: base URL of the backend auth gateway.
//   - RequestTimeout: per-request deadline applied by the gateway client.
//   - DatabasePath: path of the local SQLite session database.
//
// Units: RequestTimeout is a time.Duration (e.g., 15*time.Second).
type Config struct {
	GatewayBaseURL string
	RequestTimeout time.Duration
	DatabasePath   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GatewayBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "admincli.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
