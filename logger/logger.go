// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package logger provides a leveled logger that posts each entry to Slack.
package logger

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=logger.go -destination=mocks/mock_sender.go -package=mocks Sender

import (
	"context"
	"errors"

	"github.com/stacklok/slacklog/appcontext"
	"github.com/stacklok/slacklog/blockkit"
	"github.com/stacklok/slacklog/env"
	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/filter"
	"github.com/stacklok/slacklog/level"
	"github.com/stacklok/slacklog/message"
	"github.com/stacklok/slacklog/metrics"
	"github.com/stacklok/slacklog/webhook"
)

// OptionMinLogLevel is the key recognised by [FromOptions] for the minimum level.
const OptionMinLogLevel = "minLogLevel"

// ErrNoSender is returned by [New] when no sender is given.
var ErrNoSender = errors.New("a sender is required")

// Sender delivers a built message. *webhook.Client satisfies it.
type Sender interface {
	Send(ctx context.Context, msg *blockkit.Message) (string, error)
}

// Logger sends log entries at or above a minimum level to a Sender.
// It is immutable after creation and safe for concurrent use if its Sender is.
type Logger struct {
	app         *appcontext.AppContext
	sender      Sender
	minLevel    level.Level
	minPriority int
	filter      *filter.Expression
	metrics     *metrics.Metrics
}

type config struct {
	minLevel       any
	filter         *filter.Expression
	metrics        *metrics.Metrics
	webhookOptions []webhook.Option
}

// Option configures a [Logger].
type Option func(*config)

// WithMinLevel sets the lowest level that is sent. It accepts a level.Level
// or its name; [New] fails for anything else. The default is debug.
func WithMinLevel(lvl any) Option {
	return func(c *config) {
		c.minLevel = lvl
	}
}

// WithFilter drops entries for which expr does not allow sending.
// The filter runs after the level check.
func WithFilter(expr *filter.Expression) Option {
	return func(c *config) {
		c.filter = expr
	}
}

// WithMetrics counts entries dropped by the level check or the filter.
// With [Create], deliveries are recorded as well.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithWebhookOptions passes options to the webhook client built by [Create].
// [New] ignores them.
func WithWebhookOptions(opts ...webhook.Option) Option {
	return func(c *config) {
		c.webhookOptions = append(c.webhookOptions, opts...)
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{minLevel: level.Lowest()}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// New creates a logger that describes every entry with app and sends it
// through sender. app may be nil.
//
// It returns a *level.InvalidLevelError if the minimum level is unknown.
func New(app *appcontext.AppContext, sender Sender, opts ...Option) (*Logger, error) {
	if sender == nil {
		return nil, ErrNoSender
	}

	cfg := newConfig(opts)

	minLevel, err := level.Of(cfg.minLevel)
	if err != nil {
		return nil, err
	}
	minPriority, _ := level.PriorityOf(minLevel)

	return &Logger{
		app:         app,
		sender:      sender,
		minLevel:    minLevel,
		minPriority: minPriority,
		filter:      cfg.filter,
		metrics:     cfg.metrics,
	}, nil
}

// FromOptions creates a logger from a loosely typed options map.
// Only OptionMinLogLevel is recognised; other keys are ignored.
func FromOptions(app *appcontext.AppContext, sender Sender, options map[string]any, opts ...Option) (*Logger, error) {
	if lvl, ok := options[OptionMinLogLevel]; ok {
		opts = append(opts, WithMinLevel(lvl))
	}
	return New(app, sender, opts...)
}

// Create builds a logger for the running process that posts to webhookURL.
// The app context is read from the process environment.
func Create(appName, webhookURL string, opts ...Option) (*Logger, error) {
	cfg := newConfig(opts)

	webhookOpts := append([]webhook.Option{webhook.WithMetrics(cfg.metrics)}, cfg.webhookOptions...)
	client, err := webhook.New(webhookURL, webhookOpts...)
	if err != nil {
		return nil, err
	}

	return New(appcontext.FromProcess(appName, &env.OSReader{}), client, opts...)
}

// MinLevel returns the lowest level that is sent.
func (l *Logger) MinLevel() level.Level {
	return l.minLevel
}

// Enabled reports whether entries at lvl pass the level check.
func (l *Logger) Enabled(lvl level.Level) bool {
	priority, ok := level.PriorityOf(lvl)
	return ok && priority >= l.minPriority
}

// Log sends an entry at lvl, which must be a level.Level or a level name.
//
// An unknown level is always an error, even if it would have been filtered.
// Entries below the minimum level, or rejected by the filter, are dropped
// and nil is returned. Otherwise the entry is built into a message, with the
// logger's app context under message.AppContextKey unless f sets that key
// itself, and sent. Delivery errors are returned as is.
func (l *Logger) Log(ctx context.Context, lvl any, msg string, f *fields.Fields) error {
	entryLevel, err := level.Of(lvl)
	if err != nil {
		return err
	}

	reason, err := l.check(entryLevel, msg, f)
	if err != nil {
		return err
	}
	if reason != "" {
		l.metrics.Filtered(reason)
		return nil
	}

	defaults := fields.New()
	if l.app != nil {
		defaults.Set(message.AppContextKey, l.app)
	}

	_, err = l.sender.Send(ctx, message.Build(entryLevel, msg, fields.Merge(defaults, f)))
	return err
}

// Check reports why an entry would be dropped by [Logger.Log]: it returns
// metrics.ReasonLevel or metrics.ReasonFilter, or "" if the entry would be
// sent. Nothing is sent or counted.
func (l *Logger) Check(lvl any, msg string, f *fields.Fields) (string, error) {
	entryLevel, err := level.Of(lvl)
	if err != nil {
		return "", err
	}
	return l.check(entryLevel, msg, f)
}

func (l *Logger) check(lvl level.Level, msg string, f *fields.Fields) (string, error) {
	if !l.Enabled(lvl) {
		return metrics.ReasonLevel, nil
	}
	if l.filter == nil {
		return "", nil
	}
	allowed, err := l.filter.Allow(lvl, msg, f)
	if err != nil {
		return "", err
	}
	if !allowed {
		return metrics.ReasonFilter, nil
	}
	return "", nil
}

// Debug logs at debug level. keysAndValues are alternating keys and values.
func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Debug, msg, fields.New(keysAndValues...))
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Info, msg, fields.New(keysAndValues...))
}

// Notice logs at notice level.
func (l *Logger) Notice(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Notice, msg, fields.New(keysAndValues...))
}

// Warning logs at warning level.
func (l *Logger) Warning(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Warning, msg, fields.New(keysAndValues...))
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Error, msg, fields.New(keysAndValues...))
}

// Critical logs at critical level.
func (l *Logger) Critical(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Critical, msg, fields.New(keysAndValues...))
}

// Alert logs at alert level.
func (l *Logger) Alert(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Alert, msg, fields.New(keysAndValues...))
}

// Emergency logs at emergency level.
func (l *Logger) Emergency(ctx context.Context, msg string, keysAndValues ...any) error {
	return l.Log(ctx, level.Emergency, msg, fields.New(keysAndValues...))
}
