package devapi

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/pharmadesk/internal/common"
)

// Config holds dev API server settings.
//
// Fields:
//   - Addr: listen address, e.g. ":8080".
//   - SecretKey: HMAC key for access tokens. Generated at start when empty.
//   - TokenTTL: access token lifetime.
//   - SeedName / SeedEmail / SeedPassword: the account created on start.
//   - SeedCatalog: pre-populate a few products.
//   - IDsAsStrings: serialise product ids as JSON strings.
type Config struct {
	Addr         string        `validate:"required,hostname_port"`
	SecretKey    string        `validate:"required"`
	TokenTTL     time.Duration `validate:"gt=0"`
	SeedName     string
	SeedEmail    string `validate:"required,email"`
	SeedPassword string `validate:"required"`
	SeedCatalog  bool
	IDsAsStrings bool
	LogLevel     string `validate:"oneof=debug info warn error"`
	OTLPEndpoint string
	OTLPInsecure bool
}

// LoadDefaults populates c with defaults suitable for a local run.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = ""
	c.TokenTTL = 60 * time.Minute
	c.SeedName = "Demo Pharmacist"
	c.SeedEmail = "demo@pharmadesk.local"
	c.SeedPassword = "demo1234"
	c.SeedCatalog = true
	c.IDsAsStrings = false
	c.LogLevel = "info"
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// LoadConfig applies defaults, then the environment, then command-line flags.
// A missing secret is replaced with a random one, so tokens do not survive
// a restart unless the key is set explicitly.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if cfg.SecretKey == "" {
		key, err := common.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		cfg.SecretKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
