package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Catalog backends selectable with CATALOG_BACKEND.
const (
	CatalogBackendMemory   = "memory"
	CatalogBackendPostgres = "postgres"
	CatalogBackendHTTP     = "http"
)

// Cache backends selectable with CACHE_BACKEND.
const (
	CacheBackendNone   = "none"
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type LoggerConfig struct {
	Level        string `env:"LEVEL" envDefault:"info"`
	JSON         bool   `env:"JSON" envDefault:"false"`
	Color        bool   `env:"COLOR" envDefault:"true"`
	FluentEnable bool   `env:"FLUENT_ENABLE" envDefault:"false"`
	FluentHost   string `env:"FLUENT_HOST" envDefault:"localhost"`
	FluentPort   int    `env:"FLUENT_PORT" envDefault:"24224"`
	FluentTag    string `env:"FLUENT_TAG" envDefault:"storefront"`
	FluentLevel  string `env:"FLUENT_LEVEL" envDefault:"info"`
}

type RESTConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

type CatalogConfig struct {
	Backend     string        `env:"BACKEND" envDefault:"memory"`
	FixturePath string        `env:"FIXTURE_PATH" envDefault:"fixtures/inventory.json"`
	DatabaseURL string        `env:"DATABASE_URL"`
	BaseURL     string        `env:"URL"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"3s"`
}

type CacheConfig struct {
	Backend       string        `env:"BACKEND" envDefault:"memory"`
	FacetTTL      time.Duration `env:"FACET_TTL" envDefault:"2m"`
	PageTTL       time.Duration `env:"PAGE_TTL" envDefault:"30s"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string        `env:"REDIS_PREFIX" envDefault:"storefront:"`
}

type FacetsConfig struct {
	SelfPolicy    string        `env:"SELF_POLICY" envDefault:"exclude"`
	Concurrency   int           `env:"CONCURRENCY" envDefault:"4"`
	FlightTimeout time.Duration `env:"FLIGHT_TIMEOUT" envDefault:"10s"`
}

type RabbitMQConfig struct {
	Enable bool   `env:"ENABLE" envDefault:"false"`
	URL    string `env:"URL"`
}

// AppConfig holds the whole service configuration.
type AppConfig struct {
	AppName  string         `env:"APP_NAME" envDefault:"storefront-service"`
	Logger   LoggerConfig   `envPrefix:"LOG_"`
	Rest     RESTConfig     `envPrefix:"HTTP_"`
	Catalog  CatalogConfig  `envPrefix:"CATALOG_"`
	Cache    CacheConfig    `envPrefix:"CACHE_"`
	Facets   FacetsConfig   `envPrefix:"FACET_"`
	RabbitMQ RabbitMQConfig `envPrefix:"RABBITMQ_"`
}

// LoadConfig reads an optional .env file (the given path or ./.env) and
// then the process environment. Real environment variables win over the file.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 && envPath[0] != "" {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
	}

	return Parse(env.Options{})
}

// Parse builds the config from the environment only. Tests pass
// opts.Environment to avoid touching the process environment.
func Parse(opts env.Options) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	c.Catalog.Backend = strings.ToLower(strings.TrimSpace(c.Catalog.Backend))
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))

	switch c.Catalog.Backend {
	case CatalogBackendMemory:
		if c.Catalog.FixturePath == "" {
			return errors.New("CATALOG_FIXTURE_PATH is required for the memory catalog")
		}
	case CatalogBackendPostgres:
		if c.Catalog.DatabaseURL == "" {
			return errors.New("CATALOG_DATABASE_URL is required for the postgres catalog")
		}
	case CatalogBackendHTTP:
		if c.Catalog.BaseURL == "" {
			return errors.New("CATALOG_URL is required for the http catalog")
		}
	default:
		return fmt.Errorf("unknown CATALOG_BACKEND %q", c.Catalog.Backend)
	}

	switch c.Cache.Backend {
	case CacheBackendNone, CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}

	if c.RabbitMQ.Enable && c.RabbitMQ.URL == "" {
		return errors.New("RABBITMQ_URL is required when RABBITMQ_ENABLE is set")
	}
	return nil
}
