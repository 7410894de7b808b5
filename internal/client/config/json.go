package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pharmadesk/internal/flagx"
	"github.com/dmitrijs2005/pharmadesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the corresponding Config field untouched.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionDBPath  string          `json:"session_db_path"`
	Ephemeral      *bool           `json:"ephemeral"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
	LogBackend     string          `json:"log_backend"`
	OTLPEndpoint   string          `json:"otlp_endpoint"`
	OTLPInsecure   *bool           `json:"otlp_insecure"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Without the flag nothing happens. Read or decode errors panic, mirroring
// parseFlags: a broken config file must stop the program at start-up.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
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
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionDBPath != "" {
		cfg.SessionDBPath = jc.SessionDBPath
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.LogBackend != "" {
		cfg.LogBackend = jc.LogBackend
	}
	if jc.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = jc.OTLPEndpoint
	}
	if jc.OTLPInsecure != nil {
		cfg.OTLPInsecure = *jc.OTLPInsecure
	}
}
