// Package config holds the application configuration. A single Config struct
// is loaded at startup and passed into the composition root; components never
// read the environment themselves.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the provisioning service.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Session     SessionConfig     `mapstructure:"session"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Log         LogConfig         `mapstructure:"log"`
	Tracing     TracingConfig     `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// DevMode enables the /dev/stub-register endpoint and relaxes the session
	// secret requirement.
	DevMode      bool `mapstructure:"dev_mode"`
	PprofEnabled bool `mapstructure:"pprof_enabled"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN builds the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type RedisConfig struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`

	// LookupTTL bounds how long VNI/ENI to tenant resolutions stay cached.
	LookupTTL time.Duration `mapstructure:"lookup_ttl"`
}

type SessionConfig struct {
	// Secret is the shared HMAC-SHA256 signing key for bearer tokens.
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
	// TokenTTL is the validity window of issued tokens.
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// MarketplaceConfig selects and configures the customer resolver used by the
// registration flow.
type MarketplaceConfig struct {
	// Mode is "http" for the real resolution service or "static" for the
	// development resolver.
	Mode     string        `mapstructure:"mode"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type KafkaConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Brokers        []string      `mapstructure:"brokers"`
	DetectionTopic string        `mapstructure:"detection_topic"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	BatchTimeout   time.Duration `mapstructure:"batch_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
}

// Validate checks essential configuration values.
func (c *Config) Validate() error {
	if c.Session.Secret == "" && !c.Server.DevMode {
		return fmt.Errorf("session.secret is required outside dev mode")
	}
	if c.Session.TokenTTL <= 0 {
		return fmt.Errorf("session.token_ttl must be positive")
	}
	if c.Marketplace.Mode != "http" && c.Marketplace.Mode != "static" {
		return fmt.Errorf("marketplace.mode must be %q or %q", "http", "static")
	}
	if c.Marketplace.Mode == "http" && c.Marketplace.Endpoint == "" {
		return fmt.Errorf("marketplace.endpoint is required in http mode")
	}
	return nil
}
