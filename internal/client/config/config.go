package config

import "time"

// Config holds runtime settings for the brokerdesk client.
//
// Fields:
//   - APIBaseURL: origin of the brokerage REST API, e.g. http://localhost:8080.
//   - SessionDBPath: sqlite file holding the cached session.
//   - DownloadDir: where downloaded claim documents are saved.
//   - RequestTimeout: per-request deadline; zero leaves requests unbounded.
//   - RateLimit / RateBurst: outbound request budget per second; zero disables it.
//   - LogLevel / LogEncoding: log level and "console", "json" or "text" output.
//   - ForceLogoutOnUnauthorized: drop the session and return to /login when
//     an authenticated call is rejected with 401 or 403.
type Config struct {
	APIBaseURL                string
	SessionDBPath             string
	DownloadDir               string
	RequestTimeout            time.Duration
	RateLimit                 float64
	RateBurst                 int
	LogLevel                  string
	LogEncoding               string
	ForceLogoutOnUnauthorized bool
}

// LoadDefaults populates c with defaults suitable for a local API.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.SessionDBPath = "brokerdesk.db"
	c.DownloadDir = "downloads"
	c.RequestTimeout = 0
	c.RateLimit = 0
	c.RateBurst = 1
	c.LogLevel = "info"
	c.LogEncoding = "console"
	c.ForceLogoutOnUnauthorized = true
}

// LoadConfig applies defaults, then the environment (optionally seeded from a
// dotenv file), then a JSON file, then command-line flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
