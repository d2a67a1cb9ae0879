package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/brokerdesk/internal/flagx"
	"github.com/dmitrijs2005/brokerdesk/internal/timex"
)

// JsonConfig is the on-disk shape of the -c/-config file. Durations accept
// "5s" style strings or integer nanoseconds. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	APIBaseURL                string          `json:"api_base_url"`
	SessionDBPath             string          `json:"session_db_path"`
	DownloadDir               string          `json:"download_dir"`
	RequestTimeout            *timex.Duration `json:"request_timeout"`
	RateLimit                 *float64        `json:"rate_limit"`
	RateBurst                 *int            `json:"rate_burst"`
	LogLevel                  string          `json:"log_level"`
	LogEncoding               string          `json:"log_encoding"`
	ForceLogoutOnUnauthorized *bool           `json:"force_logout_on_unauthorized"`
}

// parseJson overlays Config with the file passed via -c or -config.
// It panics when the file cannot be read or decoded.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.DownloadDir != "" {
		cfg.DownloadDir = jc.DownloadDir
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogEncoding != "" {
		cfg.LogEncoding = jc.LogEncoding
	}
	if jc.ForceLogoutOnUnauthorized != nil {
		cfg.ForceLogoutOnUnauthorized = *jc.ForceLogoutOnUnauthorized
	}
}
