package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with BROKERDESK_* environment variables.
//
// A dotenv file is loaded first: the one named by -env, or ./.env when present.
// godotenv never overrides variables already set in the process environment.
// A missing file named explicitly with -env panics; a missing ./.env is
// ignored. Malformed values keep the current setting.
func parseEnv(cfg *Config) {
	file := flagx.EnvFileFlag()
	if file != "" {
		if err := godotenv.Load(file); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg.APIBaseURL = getString("BROKERDESK_API_URL", cfg.APIBaseURL)
	cfg.SessionDBPath = getString("BROKERDESK_SESSION_DB", cfg.SessionDBPath)
	cfg.DownloadDir = getString("BROKERDESK_DOWNLOAD_DIR", cfg.DownloadDir)
	cfg.RequestTimeout = getDuration("BROKERDESK_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RateLimit = getFloat("BROKERDESK_RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = getInt("BROKERDESK_RATE_BURST", cfg.RateBurst)
	cfg.LogLevel = getString("BROKERDESK_LOG_LEVEL", cfg.LogLevel)
	cfg.LogEncoding = getString("BROKERDESK_LOG_ENCODING", cfg.LogEncoding)
	cfg.ForceLogoutOnUnauthorized = getBool("BROKERDESK_FORCE_LOGOUT", cfg.ForceLogoutOnUnauthorized)
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return fallback
}
