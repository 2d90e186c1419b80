package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Run("loads from -config", func(t *testing.T) {
		path := writeTempJSON(t, map[string]any{
			"server_url":            "http://www.example:9000/api",
			"online_check_interval": "10s",
			"requests_per_second":   0,
		})

		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "http://www.example:9000/api", cfg.ServerURL)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Zero(t, cfg.RequestsPerSecond, "explicit zero overrides")
		assert.Equal(t, "~/.runnio", cfg.DataDir, "absent keys keep their value")
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-a", "http://x/api"}))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("missing file", func(t *testing.T) {
		err := parseJSON(defaults(), []string{"-c", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		err := parseJSON(defaults(), []string{"-c", bad})
		require.Error(t, err)
	})
}
