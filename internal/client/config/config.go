package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the PharmaDesk CLI.
//
// Fields:
//   - APIBaseURL: base URL of the catalog REST API (e.g. http://host:8080/api).
//   - RequestTimeout: per-request timeout for API calls.
//   - SessionDBPath: SQLite file keeping the session between runs.
//   - Ephemeral: keep the session in memory only (nothing written to disk).
//   - LogLevel / LogFormat / LogBackend: logger settings, see package logging.
//   - OTLPEndpoint / OTLPInsecure: optional trace exporter target.
type Config struct {
	APIBaseURL     string        `validate:"required,url"`
	RequestTimeout time.Duration `validate:"gt=0"`
	SessionDBPath  string        `validate:"required_unless=Ephemeral true"`
	Ephemeral      bool
	LogLevel       string `validate:"oneof=debug info warn error"`
	LogFormat      string `validate:"oneof=text json"`
	LogBackend     string `validate:"oneof=slog zap"`
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "session.db"
	c.Ephemeral = false
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogBackend = "slog"
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
