package config

import (
	"fmt"
	"time"

	"go-inventory-ledger/pkg/validator"

	"github.com/caarlos0/env/v11"
)

const (
	ServiceName    = "inventory-ledger"
	ServiceVersion = "1.0.0"
)

const (
	TracesPath    = "/otlp/v1/traces"
	ExportTimeout = 30 * time.Second
	MaxQueueSize  = 2048
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"Inventory Ledger v1.0" validate:"notblank"`
	Port    string `env:"PORT" envDefault:"3000" validate:"required,numeric"`
	AppEnv  string `env:"APP_ENV" envDefault:"production" validate:"oneof=development production test"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Products below this quantity count as low stock on the dashboard
	LowStockThreshold   int  `env:"LOW_STOCK_THRESHOLD" envDefault:"10" validate:"gte=1"`
	TransactionPageSize int  `env:"TRANSACTION_PAGE_SIZE" envDefault:"10" validate:"gte=1,lte=100"`
	SeedDemo            bool `env:"SEED_DEMO" envDefault:"false"`

	// Tracing is disabled when OtelEndpoint is empty
	OtelEndpoint   string `env:"OTEL_ENDPOINT"`
	OtelAuthHeader string `env:"OTEL_AUTH_HEADER"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
}

func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func (c *Config) TracingEnabled() bool {
	return c.OtelEndpoint != ""
}

// Load reads the configuration from the environment. Callers load .env
// beforehand when they want one.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
