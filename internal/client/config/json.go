package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gatekeeper/internal/flagx"
	"github.com/dmitrijs2005/gatekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CanonicalSize  int            `json:"canonical_size"`
	StrokeWidth    float64        `json:"stroke_width"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		ServerURL:      cfg.ServerURL,
		DatabasePath:   cfg.DatabasePath,
		RequestTimeout: timex.Duration{Duration: cfg.RequestTimeout},
		CanonicalSize:  cfg.CanonicalSize,
		StrokeWidth:    cfg.StrokeWidth,
		LogLevel:       cfg.LogLevel,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerURL = jc.ServerURL
	cfg.DatabasePath = jc.DatabasePath
	cfg.RequestTimeout = jc.RequestTimeout.Duration
	cfg.CanonicalSize = jc.CanonicalSize
	cfg.StrokeWidth = jc.StrokeWidth
	cfg.LogLevel = jc.LogLevel
}
