// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// HTTPReadTimeout is the server read timeout (e.g. "15s").
	HTTPReadTimeout string `mapstructure:"HTTP_READ_TIMEOUT"`
	// HTTPWriteTimeout is the server write timeout (e.g. "15s").
	HTTPWriteTimeout string `mapstructure:"HTTP_WRITE_TIMEOUT"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `mapstructure:"MONGODB_URI"`
	// MongoDatabase is the database holding the users, orgs and permissions collections.
	MongoDatabase string `mapstructure:"MONGODB_DATABASE"`
	// MongoTimeout bounds server selection and the startup ping (e.g. "10s").
	MongoTimeout string `mapstructure:"MONGODB_TIMEOUT"`

	// DefaultPageLimit is the list limit used when the request has no limit parameter.
	DefaultPageLimit int `mapstructure:"DEFAULT_PAGE_LIMIT"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"LOG_FORMAT"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// OTLPEndpoint is the OTLP gRPC collector endpoint. Empty disables export.
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext connection to the collector.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// ServiceName is reported as service.name on all telemetry.
	ServiceName string `mapstructure:"OTEL_SERVICE_NAME"`
	// OTLPTarget is the host:port dialed for OTLP export, derived from OTLPEndpoint by Load.
	OTLPTarget string `mapstructure:"-"`

	// TelemetryKafkaBrokers is a comma-separated list of Kafka broker addresses. When set, request
	// telemetry events are also written to TelemetryKafkaTopic.
	TelemetryKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// TelemetryKafkaTopic is the Kafka topic for telemetry events.
	TelemetryKafkaTopic string `mapstructure:"TELEMETRY_KAFKA_TOPIC"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8000")
	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "15s")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017/")
	v.SetDefault("MONGODB_DATABASE", "cosmoDB")
	v.SetDefault("MONGODB_TIMEOUT", "10s")
	v.SetDefault("DEFAULT_PAGE_LIMIT", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_ENV", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_SERVICE_NAME", "org-access-registry")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("TELEMETRY_KAFKA_TOPIC", "org-access-telemetry")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if strings.TrimSpace(cfg.MongoURI) == "" {
		return nil, errors.New("config: MONGODB_URI must be set")
	}
	if strings.TrimSpace(cfg.MongoDatabase) == "" {
		return nil, errors.New("config: MONGODB_DATABASE must be set")
	}
	if cfg.DefaultPageLimit < 0 {
		return nil, errors.New("config: DEFAULT_PAGE_LIMIT must not be negative")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.New("config: LOG_FORMAT must be text or json")
	}
	if err := cfg.resolveOTLP(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveOTLP reduces OTLPEndpoint to the gRPC dial target. A path in the endpoint is dropped.
// Any scheme other than https implies a plaintext connection.
func (c *Config) resolveOTLP() error {
	endpoint := strings.TrimSpace(c.OTLPEndpoint)
	if endpoint == "" {
		return nil
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("config: invalid OTEL_EXPORTER_OTLP_ENDPOINT: %w", err)
	}
	if u.Host == "" {
		return errors.New("config: invalid OTEL_EXPORTER_OTLP_ENDPOINT: missing host")
	}
	c.OTLPTarget = u.Host
	if u.Scheme != "https" {
		c.OTLPInsecure = true
	}
	return nil
}

// MongoTimeoutDuration parses MongoTimeout. Returns 10s if unset or invalid.
func (c *Config) MongoTimeoutDuration() time.Duration {
	return parseDuration(c.MongoTimeout, 10*time.Second)
}

// ReadTimeout parses HTTPReadTimeout. Returns 15s if unset or invalid.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.HTTPReadTimeout, 15*time.Second)
}

// WriteTimeout parses HTTPWriteTimeout. Returns 15s if unset or invalid.
func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.HTTPWriteTimeout, 15*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// TelemetryKafkaBrokersList returns Kafka broker addresses from the comma-separated config.
// Used to decide if the Kafka telemetry sink is enabled (non-empty list) and to create the producer.
func (c *Config) TelemetryKafkaBrokersList() []string {
	if c == nil || c.TelemetryKafkaBrokers == "" {
		return nil
	}
	parts := strings.Split(c.TelemetryKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
