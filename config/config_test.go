// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/slacklog/env"
	"github.com/stacklok/slacklog/env/mocks"
	"github.com/stacklok/slacklog/level"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleYAML = `
webhook_url: https://hooks.slack.com/services/T000/B000/FILE
app_name: From file
min_log_level: warning
timeout: 3s
filter: priority >= 3
headers:
  X-Source: slacklog
`

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", "")
	cfg, err := Load(env.MapReader{}, path, WithDotEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		AppName:     DefaultAppName,
		MinLogLevel: "debug",
		Timeout:     DefaultTimeout,
	}, cfg)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", sampleYAML)
	cfg, err := Load(env.MapReader{}, path, WithDotEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		WebhookURL:  "https://hooks.slack.com/services/T000/B000/FILE",
		AppName:     "From file",
		MinLogLevel: "warning",
		Timeout:     3 * time.Second,
		Filter:      "priority >= 3",
		Headers:     map[string]string{"X-Source": "slacklog"},
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)
	values := map[string]string{
		EnvWebhookURL:  "https://hooks.slack.com/services/T000/B000/ENV",
		EnvAppName:     "From env",
		EnvMinLogLevel: "ERROR",
		EnvTimeout:     "250ms",
		EnvFilter:      `level == "error"`,
	}
	reader.EXPECT().Getenv(gomock.Any()).DoAndReturn(func(key string) string {
		return values[key]
	}).AnyTimes()

	path := writeFile(t, "config.yaml", sampleYAML)
	cfg, err := Load(reader, path, WithDotEnvFile(""))
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.slack.com/services/T000/B000/ENV", cfg.WebhookURL)
	assert.Equal(t, "From env", cfg.AppName)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, `level == "error"`, cfg.Filter)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, level.Error, lvl)
}

func TestLoad_LegacyWebhookVariable(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", "")

	cfg, err := Load(env.MapReader{EnvLegacyWebhookURL: "https://example.com/legacy"}, path, WithDotEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/legacy", cfg.WebhookURL)

	cfg, err = Load(env.MapReader{
		EnvLegacyWebhookURL: "https://example.com/legacy",
		EnvWebhookURL:       "https://example.com/current",
	}, path, WithDotEnvFile(""))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/current", cfg.WebhookURL)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", sampleYAML)
	dotenv := writeFile(t, ".env", "SLACKLOG_APP_NAME=From dotenv\nSLACKLOG_MIN_LOG_LEVEL=notice\n")

	cfg, err := Load(env.MapReader{EnvMinLogLevel: "alert"}, path, WithDotEnvFile(dotenv))
	require.NoError(t, err)

	assert.Equal(t, "From dotenv", cfg.AppName)
	assert.Equal(t, "alert", cfg.MinLogLevel, "the environment wins over the dotenv file")
}

func TestLoad_MissingDotEnvIsIgnored(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "config.yaml", "")
	_, err := Load(env.MapReader{}, path, WithDotEnvFile(filepath.Join(t.TempDir(), ".env")))
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		reader  env.MapReader
		wantErr string
	}{
		{
			name:    "explicit file is missing",
			path:    func(t *testing.T) string { t.Helper(); return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: "failed to read config file",
		},
		{
			name:    "malformed YAML",
			path:    func(t *testing.T) string { t.Helper(); return writeFile(t, "config.yaml", "headers: [") },
			wantErr: "failed to parse config file",
		},
		{
			name:    "malformed timeout",
			path:    func(t *testing.T) string { t.Helper(); return writeFile(t, "config.yaml", "") },
			reader:  env.MapReader{EnvTimeout: "soon"},
			wantErr: "invalid SLACKLOG_TIMEOUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tt.reader, tt.path(t), WithDotEnvFile(""))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		return &Config{
			WebhookURL:  "https://hooks.slack.com/services/T000/B000/XXXX",
			AppName:     "app",
			MinLogLevel: "info",
			Timeout:     time.Second,
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{"valid", func(*Config) {}, nil},
		{"upper-case level", func(c *Config) { c.MinLogLevel = "Warning" }, nil},
		{"missing URL", func(c *Config) { c.WebhookURL = "" }, []string{"webhook URL"}},
		{"relative URL", func(c *Config) { c.WebhookURL = "foo.bar/" }, []string{"webhook URL"}},
		{"unknown level", func(c *Config) { c.MinLogLevel = "loud" }, []string{"minimum log level"}},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, []string{"timeout"}},
		{"bad filter", func(c *Config) { c.Filter = "level ==" }, []string{"filter"}},
		{"bad header", func(c *Config) { c.Headers = map[string]string{"X Bad": "v"} }, []string{"header"}},
		{
			name: "all problems together",
			modify: func(c *Config) {
				c.WebhookURL = ""
				c.MinLogLevel = "loud"
			},
			wantErr: []string{"webhook URL", "minimum log level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidConfig)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Parallel()

	path := DefaultPath()
	assert.True(t, strings.HasSuffix(path, filepath.Join("slacklog", "config.yaml")), path)
}
