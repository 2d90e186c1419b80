package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Runnio CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the /api prefix.
//   - DataDir: directory holding the local session database.
//   - DBFile: database file name inside DataDir (or an absolute path).
//   - RequestTimeout: upper bound for one API request.
//   - RequestsPerSecond: client-side throttle; 0 disables it.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL           string        `env:"SERVER_URL"`
	DataDir             string        `env:"DATA_DIR"`
	DBFile              string        `env:"DB_FILE"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"`
	RequestsPerSecond   float64       `env:"REQUESTS_PER_SECOND"`
	OnlineCheckInterval time.Duration `env:"ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000/api"
	c.DataDir = "~/.runnio"
	c.DBFile = "session.db"
	c.RequestTimeout = 15 * time.Second
	c.RequestsPerSecond = 10
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
}

// DBPath returns the database location: DBFile when absolute, otherwise
// DBFile inside DataDir.
func (c *Config) DBPath() string {
	if filepath.IsAbs(c.DBFile) {
		return c.DBFile
	}
	return filepath.Join(c.DataDir, c.DBFile)
}

// Validate reports the first setting the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server url %q: want http(s)://host[:port]/path", c.ServerURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data dir is empty")
	}
	if c.DBFile == "" {
		return fmt.Errorf("db file is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second must not be negative, got %v", c.RequestsPerSecond)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
