// Package config assembles the gateway configuration from environment
// variables, optionally overridden by a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration. Everything is read once at startup
// and passed down as plain values; nothing here changes at runtime.
type Config struct {
	BindAddress string `env:"BIND_ADDRESS" envDefault:"0.0.0.0" yaml:"bind_address"`
	BindPort    int    `env:"BIND_PORT"    envDefault:"8080"    yaml:"bind_port"`

	RosterBaseURL string `env:"ROSTER_BASE_URL"      yaml:"roster_base_url"`
	RosterAPIKey  string `env:"ROSTER_API_KEY,unset" yaml:"roster_api_key"`

	AlertBaseURL string `env:"ALERT_BASE_URL"    yaml:"alert_base_url"`
	AlertToken   string `env:"ALERT_TOKEN,unset" yaml:"alert_token"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s" yaml:"request_timeout"`
	LogLevel       string        `env:"LOG_LEVEL"       envDefault:"info" yaml:"log_level"`
}

// Load parses the environment and, when file is non-empty, applies overrides
// from the YAML file on top.
func Load(file string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return cfg, err
		}
		defer f.Close()
		if err = yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("error decoding yaml file %s: %w", file, err)
		}
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.RosterBaseURL == "" {
		return errors.New("roster base URL must be provided")
	}
	if c.AlertBaseURL == "" {
		return errors.New("alert base URL must be provided")
	}
	if c.BindPort <= 0 || c.BindPort > 65535 {
		return fmt.Errorf("invalid bind port %d", c.BindPort)
	}
	return nil
}

// Addr returns the host:port the server binds to.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.BindPort)
}
