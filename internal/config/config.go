package config

import (
	"errors"
	"fmt"

	"github.com/sssecrets/go-sssecrets/token"
)

// Padding names accepted in configuration.
const (
	PaddingLeft  = "left"
	PaddingRight = "right"
)

var (
	// ErrUnknownPadding is returned for a padding other than "left" or "right".
	ErrUnknownPadding = errors.New("padding must be \"left\" or \"right\"")

	// ErrUnknownLogLevel is returned for a log level outside debug, info, warn and error.
	ErrUnknownLogLevel = errors.New("log_level must be one of debug, info, warn, error")
)

// Config is the CLI configuration.
type Config struct {
	Org      string `koanf:"org"`
	Type     string `koanf:"type"`
	Padding  string `koanf:"padding"`
	LogLevel string `koanf:"log_level"`

	Serve ServeConfig `koanf:"serve"`
}

// ServeConfig configures the demo HTTP server.
type ServeConfig struct {
	Addr        string `koanf:"addr"`
	MetricsPath string `koanf:"metrics_path"`
}

// Defaults returns the built-in configuration as a nested koanf key map.
func Defaults() map[string]any {
	return map[string]any{
		"org":       "",
		"type":      "",
		"padding":   PaddingLeft,
		"log_level": "warn",
		"serve": map[string]any{
			"addr":         "127.0.0.1:8080",
			"metrics_path": "/metrics",
		},
	}
}

// Validate checks enumerated fields and the prefix length.
func (c *Config) Validate() error {
	switch c.Padding {
	case PaddingLeft, PaddingRight:
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownPadding, c.Padding)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownLogLevel, c.LogLevel)
	}

	if _, err := c.Engine(); err != nil {
		return err
	}
	return nil
}

// Engine builds the token engine described by the configuration.
func (c *Config) Engine(opts ...token.Option) (*token.Engine, error) {
	padding := token.PadLeft
	if c.Padding == PaddingRight {
		padding = token.PadRight
	}
	return token.New(c.Org, c.Type, append([]token.Option{token.WithChecksumPadding(padding)}, opts...)...)
}
