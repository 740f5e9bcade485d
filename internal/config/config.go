package config

import "time"

// Config holds runtime settings for the Trotamundos CLI.
//
// Fields:
//   - APIBaseURL: root of the remote blog API (scheme://host[:port]).
//   - OnlineCheckInterval: how often the client probes API reachability.
//   - DatabasePath: SQLite file holding the persisted session.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL          string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "trotamundos.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a file was named) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
