package config

import (
	"encoding/json"
	"os"

	"trotamundos/internal/flagx"
	"trotamundos/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling; intervals accept either
// strings like "3s" or integer nanoseconds via timex.Duration.
type jsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabasePath        string         `json:"database_path"`
	LogLevel            string         `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flags. No file named means no overlay. Only fields present
// in the file override; absent ones keep their current value.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
