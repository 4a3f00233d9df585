// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging provides a pre-configured [log/slog.Logger] factory and a
[log/slog.Handler] that forwards records to Slack.

The command-line tool and the library's diagnostics share the same
timestamp format, output destination, and handler configuration.

# Defaults

  - Format: JSON ([FormatJSON]) via [log/slog.JSONHandler]
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Basic Usage

Create a logger with default settings:

	logger := logging.New()
	logger.Info("server started", "port", 8080)

# Configuration

Use functional options to customize the logger:

	logger := logging.New(
		logging.WithFormat(logging.FormatText),
		logging.WithLevel(slog.LevelDebug),
	)

# Dynamic Level Changes

Pass a [log/slog.LevelVar] to change the level at runtime:

	var lvl slog.LevelVar
	logger := logging.New(logging.WithLevel(&lvl))
	lvl.Set(slog.LevelDebug) // takes effect immediately

# Testing

Inject a buffer to capture log output in tests:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))
	logger.Info("test message")
	// inspect buf.String()

# Handler Access

Use [NewHandler] when you need to wrap the handler with middleware:

	base := logging.NewHandler(logging.WithLevel(slog.LevelDebug))
	wrapped := &myMiddleware{Handler: base}
	logger := slog.New(wrapped)

# Sending Records to Slack

[NewSlackHandler] adapts a [logger.Logger] to slog. slog levels map onto log
levels with [level.FromSlog], attributes become context fields, and groups
are flattened with a dot:

	l, _ := logger.Create("billing", webhookURL)
	log := slog.New(logging.NewSlackHandler(l, nil))
	log.With("tenant", "acme").Error("invoice failed", "id", 42)

Use [WithSlack] to keep local output and copy records to Slack:

	log := logging.New(logging.WithSlack(
		logging.NewSlackHandler(l, &logging.SlackHandlerOptions{Level: slog.LevelWarn}),
	))

# Stability

This package is Alpha stability. The API may change without notice.
*/
package logging
