// Package config loads settings for the zinc binaries from defaults, an
// optional YAML file, an optional .env file and ZINC_* environment
// variables, in that order.
package config

import (
	"time"

	"github.com/Neumenon/zinc/zinc"
	"go.uber.org/zap"
)

// Config holds all binary configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Parser  ParserConfig  `yaml:"parser"`

	// Zones maps Haystack zone names to tz database names, e.g.
	// "Plant: Europe/Berlin". Checked before the built-in resolver.
	Zones map[string]string `yaml:"zones" env:"ZINC_ZONES"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr" env:"ZINC_SERVER_ADDR" default:":8080"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"ZINC_SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"ZINC_SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"ZINC_SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"ZINC_SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout bounds a single request in the router (default: 30s)
	RequestTimeout time.Duration `yaml:"request_timeout" env:"ZINC_SERVER_REQUEST_TIMEOUT" default:"30s"`

	// MaxBodyBytes caps the request body (default: 8 MiB)
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"ZINC_SERVER_MAX_BODY_BYTES" default:"8388608"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error (default: info)
	Level string `yaml:"level" env:"ZINC_LOG_LEVEL" default:"info"`

	// Format is console or json (default: console)
	Format string `yaml:"format" env:"ZINC_LOG_FORMAT" default:"console"`
}

// ParserConfig holds dispatcher settings.
type ParserConfig struct {
	// RequireFullConsumption is passed to the full-grammar parser (default: true)
	RequireFullConsumption bool `yaml:"require_full_consumption" env:"ZINC_PARSER_REQUIRE_FULL_CONSUMPTION" default:"true"`

	// FastPath enables the fast path (default: true)
	FastPath bool `yaml:"fast_path" env:"ZINC_PARSER_FAST_PATH" default:"true"`
}

// ZoneResolver returns the configured aliases layered over the default
// resolver.
func (c *Config) ZoneResolver() zinc.ZoneResolver {
	if len(c.Zones) == 0 {
		return zinc.DefaultZones()
	}
	return zinc.ZoneAliases{Aliases: c.Zones}
}

// ParserOptions returns the zinc.Parser options this config describes.
func (c *Config) ParserOptions(logger *zap.Logger) []zinc.Option {
	return []zinc.Option{
		zinc.WithZones(c.ZoneResolver()),
		zinc.WithRequireFullConsumption(c.Parser.RequireFullConsumption),
		zinc.WithFastPath(c.Parser.FastPath),
		zinc.WithLogger(logger),
	}
}
