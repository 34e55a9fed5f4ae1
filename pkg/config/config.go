package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tradebinder/tradebinder/pkg/cache/inmemory"
	"github.com/tradebinder/tradebinder/pkg/cache/redis"
	"github.com/tradebinder/tradebinder/pkg/logger"
	"github.com/tradebinder/tradebinder/pkg/request/httpclient"
)

// App identifies the running process.
type App struct {
	Name        string `json:"name" mapstructure:"name"`
	Version     string `json:"version" mapstructure:"version"`
	Environment string `json:"environment" mapstructure:"environment"`
}

// Marketplace holds the connection settings for the marketplace REST API.
type Marketplace struct {
	BaseURL string `json:"base_url" mapstructure:"base_url"`
}

// CacheConfig selects and configures the catalog cache backend.
type CacheConfig struct {
	// Backend is "inmemory" or "redis"
	Backend  string           `json:"backend" mapstructure:"backend"`
	TTL      int              `json:"ttl" mapstructure:"ttl"`
	InMemory *inmemory.Config `json:"inmemory" mapstructure:"inmemory"`
	Redis    *redis.Config    `json:"redis" mapstructure:"redis"`
}

// Telemetry configures the otel metrics exporter.
type Telemetry struct {
	Enabled      bool   `json:"enabled" mapstructure:"enabled"`
	OTLPEndpoint string `json:"otlp_endpoint" mapstructure:"otlp_endpoint"`
	Insecure     bool   `json:"insecure" mapstructure:"insecure"`
}

// AppConfig is the root configuration, loaded from yaml with environment
// variable overrides (TRADEBINDER_ prefix, dots replaced by underscores).
type AppConfig struct {
	App            App                                `json:"app" mapstructure:"app"`
	Log            logger.Config                      `json:"log" mapstructure:"log"`
	Marketplace    Marketplace                        `json:"marketplace" mapstructure:"marketplace"`
	ConnectionPool httpclient.ConnectionPoolConfig    `json:"connection_pool" mapstructure:"connection_pool"`
	Hystrix        httpclient.HystrixResiliencyConfig `json:"hystrix" mapstructure:"hystrix"`
	Cache          CacheConfig                        `json:"cache" mapstructure:"cache"`
	Telemetry      Telemetry                          `json:"telemetry" mapstructure:"telemetry"`
}

// Load reads app.yaml from the given directories (first match wins) and
// applies environment overrides. A missing config file is not an error; the
// defaults describe a local development setup.
func Load(paths ...string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRADEBINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tradebinder")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "local")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "local")

	v.SetDefault("marketplace.base_url", "http://localhost:8084")

	v.SetDefault("connection_pool.timeout", 10000)
	v.SetDefault("connection_pool.max_idle_conns", 100)
	v.SetDefault("connection_pool.max_idle_conns_per_host", 10)

	v.SetDefault("hystrix.hystrix_timeout", 15000)
	v.SetDefault("hystrix.error_percent_threshold", 50)

	v.SetDefault("cache.backend", "inmemory")
	v.SetDefault("cache.ttl", 300)
	v.SetDefault("cache.inmemory.default_expiration", 300)
	v.SetDefault("cache.inmemory.cleanup_interval", 600)

	v.SetDefault("telemetry.enabled", false)
}
