package config

import "time"

// Config holds runtime settings for the gatekeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the collaborator API, including the /api prefix.
//   - DatabasePath: local SQLite file holding Session State.
//   - RequestTimeout: per-call timeout for collaborator requests.
//   - CanonicalSize: side of the square capture surface, in pixels.
//   - StrokeWidth: pen width on the capture surface, in pixels.
//   - LogLevel: slog level name.
type Config struct {
	ServerURL      string
	DatabasePath   string
	RequestTimeout time.Duration
	CanonicalSize  int
	StrokeWidth    float64
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000/api"
	c.DatabasePath = "gatekeeper.db"
	c.RequestTimeout = 10 * time.Second
	c.CanonicalSize = 300
	c.StrokeWidth = 15
	c.LogLevel = "info"
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
