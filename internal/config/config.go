package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"pautas-radio/internal/config/configs"
	"pautas-radio/internal/core/domain"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	Redis configs.Redis `envPrefix:"REDIS_"`
	Kafka configs.Kafka `envPrefix:"KAFKA_"`

	// Pauta holds business defaults, read from PAUTA_ variables.
	Pauta configs.Pauta `envPrefix:"PAUTA_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, or a business default names an unknown tax option or
// currency, an error is returned.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if !domain.TaxOption(cfg.Pauta.DefaultTaxOption).Valid() {
		return cfg, fmt.Errorf("PAUTA_DEFAULT_TAX_OPTION: unknown tax option %q", cfg.Pauta.DefaultTaxOption)
	}
	if !domain.Currency(cfg.Pauta.DefaultCurrency).Valid() {
		return cfg, fmt.Errorf("PAUTA_DEFAULT_CURRENCY: unknown currency %q", cfg.Pauta.DefaultCurrency)
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return cfg, fmt.Errorf("KAFKA_BROKERS: at least one broker is required")
	}
	return cfg, nil
}
