package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SourceStaticData = "staticdata"
	SourceDatabase   = "database"
)

// Config is the application configuration. Values come from defaults, then
// the YAML file, then environment variables named by the env tags.
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_CONNECTION_STRING"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MinConns        int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	StaticData struct {
		BaseURL string `yaml:"base_url" env:"STATIC_DATA_URL"`
		Timeout string `yaml:"timeout" env:"STATIC_DATA_TIMEOUT"`
		Retries int    `yaml:"retries" env:"STATIC_DATA_RETRIES"`
	} `yaml:"static_data"`

	Catalog struct {
		BaseURL   string   `yaml:"base_url" env:"CATALOG_URL"`
		SearchURL string   `yaml:"search_url" env:"CATALOG_SEARCH_URL"`
		Semester  string   `yaml:"semester" env:"CATALOG_SEMESTER"`
		Prefixes  []string `yaml:"prefixes" env:"CATALOG_PREFIXES"`
	} `yaml:"catalog"`

	Resolver struct {
		Source    string `yaml:"source" env:"NAME_SOURCE"`
		CacheSize int    `yaml:"cache_size" env:"NAME_CACHE_SIZE"`
		CacheTTL  string `yaml:"cache_ttl" env:"NAME_CACHE_TTL"`
	} `yaml:"resolver"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
	} `yaml:"logging"`
}

// Load reads the configuration. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "release"
	config.Server.ShutdownTimeout = "10s"

	config.Database.MaxConns = 10
	config.Database.MinConns = 2
	config.Database.ConnMaxLifetime = "1h"

	config.StaticData.BaseURL = "https://buscaramos-v2-static-data.osuc.workers.dev"
	config.StaticData.Timeout = "10s"
	config.StaticData.Retries = 2

	config.Catalog.BaseURL = "https://catalogo.uc.cl/index.php"
	config.Catalog.SearchURL = "https://buscacursos.uc.cl/"

	config.Resolver.Source = SourceStaticData
	config.Resolver.CacheSize = 4096
	config.Resolver.CacheTTL = "6h"

	config.Logging.Level = "info"
	config.Logging.Pretty = true
}

func validate(config *Config) error {
	durations := map[string]string{
		"server.shutdown_timeout":    config.Server.ShutdownTimeout,
		"database.conn_max_lifetime": config.Database.ConnMaxLifetime,
		"static_data.timeout":        config.StaticData.Timeout,
		"resolver.cache_ttl":         config.Resolver.CacheTTL,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if config.StaticData.Retries < 0 {
		return fmt.Errorf("static_data.retries must not be negative")
	}
	if config.Database.MaxConns < 1 {
		return fmt.Errorf("database.max_conns must be positive")
	}

	switch config.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown server mode %q", config.Server.Mode)
	}

	switch config.Resolver.Source {
	case SourceStaticData, SourceDatabase:
	default:
		return fmt.Errorf("unknown resolver source %q", config.Resolver.Source)
	}

	return nil
}

// The accessors below are only valid after Load has validated the config.

func (c *Config) ShutdownTimeout() time.Duration {
	return mustDuration(c.Server.ShutdownTimeout)
}

func (c *Config) ConnMaxLifetime() time.Duration {
	return mustDuration(c.Database.ConnMaxLifetime)
}

func (c *Config) StaticDataTimeout() time.Duration {
	return mustDuration(c.StaticData.Timeout)
}

func (c *Config) CacheTTL() time.Duration {
	return mustDuration(c.Resolver.CacheTTL)
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
