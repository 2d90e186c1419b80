// Package config loads runtime configuration for the Runnio CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables prefixed with RUNNIO_ (RUNNIO_SERVER_URL, ...).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the API, e.g. http://localhost:5000/api
//	-d string   data directory for the session database
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations may be strings like "3s" or integer nanoseconds. Keys that are
// absent keep their previous value:
//
//	{
//	  "server_url": "https://runnio.example.com/api",
//	  "data_dir": "~/.runnio",
//	  "request_timeout": "10s",
//	  "requests_per_second": 5,
//	  "online_check_interval": "3s",
//	  "log_level": "info"
//	}
package config
