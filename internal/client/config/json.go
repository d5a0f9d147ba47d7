package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mentorlink/client/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations are
// given as plain seconds. Zero values are treated as "not provided" so a
// partial file only overrides what it mentions.
type JsonConfig struct {
	APIBaseURL              string `json:"api_base_url"`
	RequestTimeoutSec       int    `json:"request_timeout_sec"`
	CredentialsDBPath       string `json:"credentials_db_path"`
	SessionCheckIntervalSec int    `json:"session_check_interval_sec"`
	LogLevel                string `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. No flag, no file, no overlay. Read or unmarshal errors
// panic; the entrypoint treats a broken config file as fatal.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeoutSec > 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeoutSec) * time.Second
	}
	if jc.CredentialsDBPath != "" {
		cfg.CredentialsDBPath = jc.CredentialsDBPath
	}
	if jc.SessionCheckIntervalSec > 0 {
		cfg.SessionCheckInterval = time.Duration(jc.SessionCheckIntervalSec) * time.Second
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
