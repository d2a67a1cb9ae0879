// Package config loads runtime configuration for the brokerdesk client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a dotenv file (-env, or
//     ./.env when it exists).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Environment
//
//	BROKERDESK_API_URL          API base URL
//	BROKERDESK_SESSION_DB       session database path
//	BROKERDESK_REQUEST_TIMEOUT  e.g. "10s"
//	BROKERDESK_RATE_LIMIT       requests per second, 0 disables
//	BROKERDESK_RATE_BURST       limiter burst
//	BROKERDESK_LOG_LEVEL        debug|info|warn|error
//	BROKERDESK_LOG_ENCODING     console|json|text
//	BROKERDESK_FORCE_LOGOUT     true|false
//
// # JSON schema
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "session_db_path": "brokerdesk.db",
//	  "request_timeout": "10s",
//	  "rate_limit": 5,
//	  "rate_burst": 2,
//	  "log_level": "debug",
//	  "log_encoding": "json",
//	  "force_logout_on_unauthorized": true
//	}
package config
