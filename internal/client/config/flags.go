package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/brokerdesk/internal/flagx"
)

// parseFlags overlays Config with command-line flags:
//
//	-a string         API base URL
//	-s string         session database path
//	-d string         download directory for claim documents
//	-t duration       per-request timeout (0 disables)
//	-r float          outbound requests per second (0 disables)
//	-l string         log level
//	-force-logout     log out automatically on 401/403
//
// Only these flags are parsed; -c and -env belong to other stages.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-d", "-t", "-r", "-l", "-force-logout"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.Float64Var(&cfg.RateLimit, "r", cfg.RateLimit, "outbound requests per second")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.ForceLogoutOnUnauthorized, "force-logout", cfg.ForceLogoutOnUnauthorized, "log out on 401/403")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
