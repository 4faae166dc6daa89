// Package config loads the runtime configuration.
//
// Values are layered with koanf, lowest priority first:
//  1. struct defaults (DefaultConfig)
//  2. an optional YAML file named by PLACERATE_CONFIG_FILE
//  3. environment variables prefixed with PLACERATE_ (a `.env` file is autoloaded)
//
// Nested keys are separated by a double underscore in env names:
//
//	PLACERATE_DATABASE__HOST         -> database.host
//	PLACERATE_SERVER__READ_TIMEOUT   -> server.read_timeout
//	PLACERATE_GEO__ENRICH_NEARBY     -> geo.enrich_nearby
//
// The result is validated with go-playground/validator so the app fails fast
// on bad or missing config.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is stripped from every environment variable koanf reads.
	EnvPrefix = "PLACERATE_"

	// ConfigFileEnvVar names an optional YAML file layered under env vars.
	ConfigFileEnvVar = "PLACERATE_CONFIG_FILE"

	// ServiceName tags logs and traces.
	ServiceName = "placerate"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is missing.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Geo           GeoConfig            `koanf:"geo"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" validate:"min=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`

	// QueryTimeout bounds every repository call. Zero leaves the caller's
	// context untouched.
	QueryTimeout time.Duration `koanf:"query_timeout" validate:"min=0"`
}

// DSN builds the postgres URL for pgx. The password is URL-escaped.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User,
		url.QueryEscape(d.Password),
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		d.Name,
		d.SSLMode,
	)
}

// RedisConfig contains Redis connection details ("host:port").
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// GeoConfig tunes proximity search.
type GeoConfig struct {
	// EnrichNearby adds avg_rating and review_count to nearby results.
	EnrichNearby bool `koanf:"enrich_nearby"`
}

// IntegrationConfig holds third-party credentials. An empty ResendAPIKey
// disables the welcome e-mail job.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// DefaultConfig returns the lowest-priority configuration layer.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "3001",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "placerate",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
			ConnMaxIdleTime: 60,
			QueryTimeout:    5 * time.Second,
		},
		Redis: RedisConfig{Address: "localhost:6379"},
		Geo:   GeoConfig{EnrichNearby: true},
		Integration: IntegrationConfig{
			EmailFrom: "Placerate <onboarding@resend.dev>",
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// envKey turns PLACERATE_DATABASE__MAX_OPEN_CONNS into database.max_open_conns.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// listKeys are the []string settings; their env values are comma separated.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// envValue maps an env var to its koanf key and splits list values.
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}

// LoadConfig loads, validates and returns the configuration.
func LoadConfig() (*Config, error) {
	return load(os.Getenv(ConfigFileEnvVar))
}

func load(configFile string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
