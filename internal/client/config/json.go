package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/runnio/internal/flagx"
	"github.com/dmitrijs2005/runnio/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file may say "3s" or give nanoseconds. Pointers tell
// "absent" apart from zero; only present keys override.
type JSONConfig struct {
	ServerURL           *string         `json:"server_url"`
	DataDir             *string         `json:"data_dir"`
	DBFile              *string         `json:"db_file"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	RequestsPerSecond   *float64        `json:"requests_per_second"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            *string         `json:"log_level"`
}

// parseJSON overlays cfg with the JSON file named by -c/-config in args.
// Without either flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.DBFile != nil {
		cfg.DBFile = *jc.DBFile
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	return nil
}
