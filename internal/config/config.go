package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	RabbitMQ RabbitMQConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string // gorm logger: silent, error, warn, info
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds JWT and bootstrap account settings.
type AuthConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

// RabbitMQConfig holds the broker used for menu events. An empty URL
// disables publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// Load reads configuration from an optional config.yml in the working
// directory and from environment variables, which take precedence.
// Nested keys map to env vars with "." replaced by "_", e.g. DATABASE_DSN.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			DSN:             v.GetString("database.dsn"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogLevel:        v.GetString("database.log_level"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("jwt.secret"),
			TokenTTL:      v.GetDuration("jwt.ttl"),
			AdminUsername: v.GetString("admin.username"),
			AdminPassword: v.GetString("admin.password"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("rabbitmq.url"),
			Exchange: v.GetString("rabbitmq.exchange"),
			Queue:    v.GetString("rabbitmq.queue"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=127.0.0.1 user=postgres password=postgres dbname=rikky port=5432 sslmode=disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", "24h")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "menu")
	v.SetDefault("rabbitmq.queue", "menu_events")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid database driver: %s (must be postgres or sqlite)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database max open connections must be at least 1")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database max idle connections cannot exceed max open connections")
	}

	validGormLevels := map[string]bool{"silent": true, "error": true, "warn": true, "info": true}
	if !validGormLevels[c.Database.LogLevel] {
		return fmt.Errorf("invalid database log level: %s", c.Database.LogLevel)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT ttl must be positive")
	}

	if c.RabbitMQ.URL != "" && c.RabbitMQ.Exchange == "" {
		return fmt.Errorf("RabbitMQ exchange is required when RabbitMQ is enabled")
	}
	return nil
}

// EventsEnabled reports whether menu events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQ.URL != ""
}
