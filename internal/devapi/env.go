package devapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type envConfig struct {
	Addr         string        `env:"DEVAPI_ADDR"`
	SecretKey    string        `env:"DEVAPI_SECRET_KEY"`
	TokenTTL     time.Duration `env:"DEVAPI_TOKEN_TTL"`
	SeedName     string        `env:"DEVAPI_SEED_NAME"`
	SeedEmail    string        `env:"DEVAPI_SEED_EMAIL"`
	SeedPassword string        `env:"DEVAPI_SEED_PASSWORD"`
	SeedCatalog  string        `env:"DEVAPI_SEED_CATALOG"`
	IDsAsStrings string        `env:"DEVAPI_IDS_AS_STRINGS"`
	LogLevel     string        `env:"DEVAPI_LOG_LEVEL"`
	OTLPEndpoint string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure string        `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if ec.Addr != "" {
		cfg.Addr = ec.Addr
	}
	if ec.SecretKey != "" {
		cfg.SecretKey = ec.SecretKey
	}
	if ec.TokenTTL != 0 {
		cfg.TokenTTL = ec.TokenTTL
	}
	if ec.SeedName != "" {
		cfg.SeedName = ec.SeedName
	}
	if ec.SeedEmail != "" {
		cfg.SeedEmail = ec.SeedEmail
	}
	if ec.SeedPassword != "" {
		cfg.SeedPassword = ec.SeedPassword
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.OTLPEndpoint != "" {
		cfg.OTLPEndpoint = ec.OTLPEndpoint
	}

	for _, b := range []struct {
		name string
		raw  string
		dst  *bool
	}{
		{"DEVAPI_SEED_CATALOG", ec.SeedCatalog, &cfg.SeedCatalog},
		{"DEVAPI_IDS_AS_STRINGS", ec.IDsAsStrings, &cfg.IDsAsStrings},
		{"OTEL_EXPORTER_OTLP_INSECURE", ec.OTLPInsecure, &cfg.OTLPInsecure},
	} {
		if b.raw == "" {
			continue
		}
		v, err := strconv.ParseBool(b.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
		*b.dst = v
	}

	return nil
}
