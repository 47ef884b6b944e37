// Package config loads runtime configuration for the gatekeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   collaborator API base URL
//	-d string   local database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Keys missing from the file keep their default. The timeout accepts a
// duration string like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:5000/api",
//	  "database_path": "gatekeeper.db",
//	  "request_timeout": "10s",
//	  "canonical_size": 300,
//	  "stroke_width": 15,
//	  "log_level": "info"
//	}
package config
