package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Pricing  PricingConfig  `envPrefix:"PRICING_"`
	Session  SessionConfig  `envPrefix:"SESSION_"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST,required"`
	Port            int           `env:"PORT,required"`
	User            string        `env:"USER,required"`
	Password        string        `env:"PASSWORD,required"`
	Name            string        `env:"NAME,required"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
}

type RedisConfig struct {
	Addr     string        `env:"ADDR,required"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"24h"`
}

// CatalogConfig points at the remote catalog API. When BaseURL is empty the
// local postgres catalog is used instead.
type CatalogConfig struct {
	BaseURL        string        `env:"API_BASE_URL"`
	APIKey         string        `env:"API_KEY"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

type PricingConfig struct {
	BaseUnitRate float64 `env:"BASE_UNIT_RATE" envDefault:"0.25"`
	DeliveryFee  float64 `env:"DELIVERY_FEE" envDefault:"15.90"`
	VATRate      float64 `env:"VAT_RATE" envDefault:"0.23"`
	EURRate      float64 `env:"EUR_RATE" envDefault:"4.30"`
}

type SessionConfig struct {
	ID  string        `env:"ID" envDefault:"default"`
	TTL time.Duration `env:"TTL" envDefault:"24h"`

	// QuoteExportDir enables .xlsx export of checked-out quotes when set.
	QuoteExportDir string `env:"QUOTE_EXPORT_DIR"`

	CheckoutLimit  int64         `env:"CHECKOUT_LIMIT" envDefault:"5"`
	CheckoutWindow time.Duration `env:"CHECKOUT_WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Pricing.VATRate < 0 || cfg.Pricing.VATRate >= 1 {
		return nil, fmt.Errorf("VAT rate out of range: %.2f", cfg.Pricing.VATRate)
	}
	if cfg.Pricing.EURRate <= 0 {
		return nil, fmt.Errorf("EUR rate must be positive: %.2f", cfg.Pricing.EURRate)
	}

	return &cfg, nil
}
