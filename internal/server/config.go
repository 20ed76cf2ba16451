// Package server provides configuration helpers that define runtime defaults,
// validation, and environment loading for the NeoChat relay.
package server

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

// Config holds the relay settings. Field tags drive both environment
// decoding and validation.
type Config struct {
	Host            string        `env:"NEOCHAT_HOST,default=0.0.0.0"`
	Port            int           `env:"NEOCHAT_PORT,default=9999" validate:"min=1,max=65535"`
	AllowedOrigins  string        `env:"NEOCHAT_ALLOWED_ORIGINS,default=*"`
	MaxMessageSize  int64         `env:"NEOCHAT_MAX_MESSAGE_SIZE,default=1048576" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"NEOCHAT_WRITE_TIMEOUT,default=10s" validate:"gt=0"`
	PingInterval    time.Duration `env:"NEOCHAT_PING_INTERVAL,default=0s" validate:"gte=0"`
	AdminAddr       string        `env:"NEOCHAT_ADMIN_ADDR,default=:9090"`
	LogLevel        string        `env:"NEOCHAT_LOG_LEVEL,default=info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	LogFormat       string        `env:"NEOCHAT_LOG_FORMAT,default=text" validate:"oneof=text json"`
	Colours         bool          `env:"NEOCHAT_COLOURS,default=true"`
	ConsoleCommands bool          `env:"NEOCHAT_CONSOLE_COMMANDS,default=false"`
}

// DefaultConfig returns the settings used when no environment is provided.
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           9999,
		AllowedOrigins: "*",
		MaxMessageSize: 1 << 20,
		WriteTimeout:   10 * time.Second,
		AdminAddr:      ":9090",
		LogLevel:       "info",
		LogFormat:      "text",
		Colours:        true,
	}
}

// LoadConfig decodes the NEOCHAT_* environment variables and validates the
// result.
func LoadConfig() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Addr is the host:port the relay listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Origins splits AllowedOrigins on commas.
func (c Config) Origins() []string {
	return parseOrigins(c.AllowedOrigins)
}

func parseOrigins(origins string) []string {
	if strings.TrimSpace(origins) == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
