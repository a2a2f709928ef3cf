package config

import "time"

// Config holds runtime settings for the VR-Doctor client.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the backend API.
//   - RequestTimeout: end-to-end bound for each HTTP request.
//   - DatabaseDSN: path of the local sqlite database holding session
//     metadata.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabaseDSN    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseDSN = "vrdoctor.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
