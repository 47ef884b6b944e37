// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the gatekeeper development server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - DatabasePath: bolt database file.
//   - SecretKey: HMAC secret for signing session tokens (HS256). Do not use the default outside development.
//   - AccessTokenValidityDuration: lifetime of the token returned by verify.
//   - ResetCodeValidityDuration: how long an issued reset code can be redeemed.
//   - LogLevel: slog level name.
type Config struct {
	EndpointAddr                string
	DatabasePath                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ResetCodeValidityDuration   time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.DatabasePath = "gatekeeper-server.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.ResetCodeValidityDuration = 15 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
