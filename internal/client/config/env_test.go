package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("process environment", func(t *testing.T) {
		os.Args = []string{"brokerdesk"}
		t.Setenv("BROKERDESK_API_URL", "https://api.example")
		t.Setenv("BROKERDESK_REQUEST_TIMEOUT", "7s")
		t.Setenv("BROKERDESK_RATE_LIMIT", "2.5")
		t.Setenv("BROKERDESK_RATE_BURST", "4")
		t.Setenv("BROKERDESK_FORCE_LOGOUT", "false")
		t.Setenv("BROKERDESK_DOWNLOAD_DIR", "/var/claims")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "https://api.example", cfg.APIBaseURL)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2.5, cfg.RateLimit)
		assert.Equal(t, 4, cfg.RateBurst)
		assert.False(t, cfg.ForceLogoutOnUnauthorized)
		assert.Equal(t, "/var/claims", cfg.DownloadDir)
	})

	t.Run("malformed values keep current", func(t *testing.T) {
		os.Args = []string{"brokerdesk"}
		t.Setenv("BROKERDESK_REQUEST_TIMEOUT", "soon")
		t.Setenv("BROKERDESK_RATE_BURST", "many")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Zero(t, cfg.RequestTimeout)
		assert.Equal(t, 1, cfg.RateBurst)
	})

	t.Run("dotenv file from flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("BROKERDESK_SESSION_DB=/tmp/from-dotenv.db\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("BROKERDESK_SESSION_DB") })
		os.Args = []string{"brokerdesk", "-env", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "/tmp/from-dotenv.db", cfg.SessionDBPath)
	})

	t.Run("missing dotenv named by flag panics", func(t *testing.T) {
		os.Args = []string{"brokerdesk", "-env", filepath.Join(t.TempDir(), "absent.env")}
		cfg := &Config{}
		require.Panics(t, func() { parseEnv(cfg) })
	})
}
