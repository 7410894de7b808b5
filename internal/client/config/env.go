package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type envConfig struct {
	APIBaseURL     string        `env:"PHARMADESK_API_URL"`
	RequestTimeout time.Duration `env:"PHARMADESK_REQUEST_TIMEOUT"`
	SessionDBPath  string        `env:"PHARMADESK_SESSION_DB"`
	Ephemeral      string        `env:"PHARMADESK_EPHEMERAL"`
	LogLevel       string        `env:"PHARMADESK_LOG_LEVEL"`
	LogFormat      string        `env:"PHARMADESK_LOG_FORMAT"`
	LogBackend     string        `env:"PHARMADESK_LOG_BACKEND"`
	OTLPEndpoint   string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure   string        `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first when present; its absence is not an error.
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.SessionDBPath != "" {
		cfg.SessionDBPath = ec.SessionDBPath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.LogFormat != "" {
		cfg.LogFormat = ec.LogFormat
	}
	if ec.LogBackend != "" {
		cfg.LogBackend = ec.LogBackend
	}
	if ec.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = ec.OTLPEndpoint
	}

	if ec.Ephemeral != "" {
		v, err := strconv.ParseBool(ec.Ephemeral)
		if err != nil {
			return fmt.Errorf("PHARMADESK_EPHEMERAL: %w", err)
		}
		cfg.Ephemeral = v
	}
	if ec.OTLPInsecure != "" {
		v, err := strconv.ParseBool(ec.OTLPInsecure)
		if err != nil {
			return fmt.Errorf("OTEL_EXPORTER_OTLP_INSECURE: %w", err)
		}
		cfg.OTLPInsecure = v
	}

	return nil
}
