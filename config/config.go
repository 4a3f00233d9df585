// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/stacklok/slacklog/env"
	"github.com/stacklok/slacklog/filter"
	"github.com/stacklok/slacklog/level"
	httpval "github.com/stacklok/slacklog/validation/http"
)

// Environment variables read by [Load].
const (
	EnvWebhookURL       = "SLACKLOG_WEBHOOK_URL"
	EnvLegacyWebhookURL = "SLACK_WEBHOOK_URL"
	EnvAppName          = "SLACKLOG_APP_NAME"
	EnvMinLogLevel      = "SLACKLOG_MIN_LOG_LEVEL"
	EnvTimeout          = "SLACKLOG_TIMEOUT"
	EnvFilter           = "SLACKLOG_FILTER"
)

// Defaults applied by [Load].
const (
	DefaultAppName     = "slacklog"
	DefaultMinLogLevel = level.Debug
	DefaultTimeout     = 10 * time.Second
	DefaultDotEnvFile  = ".env"
)

// ErrInvalidConfig is returned by [Config.Validate].
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings of the command-line tool.
type Config struct {
	WebhookURL  string            `yaml:"webhook_url"`
	AppName     string            `yaml:"app_name"`
	MinLogLevel string            `yaml:"min_log_level"`
	Timeout     time.Duration     `yaml:"timeout"`
	Filter      string            `yaml:"filter"`
	Headers     map[string]string `yaml:"headers"`
}

// DefaultPath returns the config file read when no path is given:
// slacklog/config.yaml under the XDG config directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "slacklog", "config.yaml")
}

type loadOptions struct {
	dotEnvFile string
}

// Option configures [Load].
type Option func(*loadOptions)

// WithDotEnvFile reads variables from file instead of ".env".
// An empty name disables the dotenv file.
func WithDotEnvFile(file string) Option {
	return func(o *loadOptions) {
		o.dotEnvFile = file
	}
}

// Load resolves the configuration from, in increasing precedence, the
// defaults, the YAML file at path, a dotenv file and the environment read
// through reader.
//
// An empty path means [DefaultPath], which may be missing. A path given
// explicitly must exist. A missing dotenv file is ignored.
func Load(reader env.Reader, path string, opts ...Option) (*Config, error) {
	o := &loadOptions{dotEnvFile: DefaultDotEnvFile}
	for _, opt := range opts {
		opt(o)
	}

	cfg := &Config{
		AppName:     DefaultAppName,
		MinLogLevel: DefaultMinLogLevel.String(),
		Timeout:     DefaultTimeout,
	}

	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}

	vars, err := readDotEnv(o.dotEnvFile)
	if err != nil {
		return nil, err
	}
	lookup := layered{primary: reader, fallback: vars}

	if v := env.FirstOf(lookup, EnvWebhookURL, EnvLegacyWebhookURL); v != "" {
		cfg.WebhookURL = v
	}
	if v := lookup.Getenv(EnvAppName); v != "" {
		cfg.AppName = v
	}
	if v := lookup.Getenv(EnvMinLogLevel); v != "" {
		cfg.MinLogLevel = v
	}
	if v := lookup.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := lookup.Getenv(EnvFilter); v != "" {
		cfg.Filter = v
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func readDotEnv(file string) (env.MapReader, error) {
	if file == "" {
		return env.MapReader{}, nil
	}

	vars, err := godotenv.Read(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env.MapReader{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return env.MapReader(vars), nil
}

// layered reads from primary and falls back to fallback for unset keys.
type layered struct {
	primary  env.Reader
	fallback env.Reader
}

func (l layered) Getenv(key string) string {
	if v := l.primary.Getenv(key); v != "" {
		return v
	}
	return l.fallback.Getenv(key)
}

// Level returns the parsed minimum level. Names are case-insensitive.
func (c *Config) Level() (level.Level, error) {
	return level.Parse(c.MinLogLevel)
}

// Validate checks that the configuration can be used to send messages.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if err := httpval.ValidateWebhookURL(c.WebhookURL); err != nil {
		errs = append(errs, fmt.Errorf("webhook URL: %w", err))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("minimum log level: %w", err))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout: must not be negative, got %s", c.Timeout))
	}
	if c.Filter != "" {
		if err := filter.NewEngine().Check(c.Filter); err != nil {
			errs = append(errs, fmt.Errorf("filter: %w", err))
		}
	}
	for name, value := range c.Headers {
		if err := httpval.ValidateHeaderName(name); err != nil {
			errs = append(errs, fmt.Errorf("header %q: %w", name, err))
			continue
		}
		if err := httpval.ValidateHeaderValue(value); err != nil {
			errs = append(errs, fmt.Errorf("header %q: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
