// Package config holds runtime settings for the Mentorlink CLI.
//
// Values are layered: defaults, then a JSON file (when -c/-config points to
// one), then environment variables, then command-line flags. Later sources
// take precedence over earlier ones.
package config

import "time"

// Config holds runtime settings for the Mentorlink CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: whole-request timeout for every API call.
//   - CredentialsDBPath: path of the local SQLite credentials database.
//   - SessionCheckInterval: how often the app re-verifies the session.
//   - LogLevel: debug, info, warn, or error.
type Config struct {
	APIBaseURL           string        `env:"MENTORLINK_API_URL"`
	RequestTimeout       time.Duration `env:"MENTORLINK_REQUEST_TIMEOUT"`
	CredentialsDBPath    string        `env:"MENTORLINK_CREDENTIALS_DB"`
	SessionCheckInterval time.Duration `env:"MENTORLINK_SESSION_CHECK_INTERVAL"`
	LogLevel             string        `env:"MENTORLINK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.CredentialsDBPath = "mentorlink.db"
	c.SessionCheckInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from all sources.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
