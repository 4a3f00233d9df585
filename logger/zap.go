// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/level"
)

// LoggerNameKey is the context key that holds the name of a named zap logger.
const LoggerNameKey = "logger"

type zapCore struct {
	zapcore.LevelEnabler
	logger *Logger
	fields []zapcore.Field
}

// NewCore returns a zap core that sends entries enabled by enab to l.
// Zap levels map onto log levels with level.FromZap, so an entry is only
// sent if l accepts the mapped level too. Delivery errors are returned from
// Write, where zap reports them to its ErrorOutput.
func NewCore(l *Logger, enab zapcore.LevelEnabler) zapcore.Core {
	return &zapCore{LevelEnabler: enab, logger: l}
}

// NewLogr returns a logr.Logger backed by l. V(0) maps to info and V(1) to
// debug; higher V-levels are dropped. Error maps to error.
func NewLogr(l *Logger) logr.Logger {
	return zapr.NewLogger(zap.New(NewCore(l, zapcore.DebugLevel)))
}

func (c *zapCore) With(fs []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fs...)
	return &clone
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) && c.logger.Enabled(level.FromZap(ent.Level)) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fs []zapcore.Field) error {
	all := append(append([]zapcore.Field(nil), c.fields...), fs...)

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range all {
		f.AddTo(enc)
	}

	ctx := fields.New()
	if ent.LoggerName != "" {
		ctx.Set(LoggerNameKey, ent.LoggerName)
	}
	for _, f := range all {
		if v, ok := enc.Fields[f.Key]; ok {
			ctx.Set(f.Key, v)
		}
	}

	return c.logger.Log(context.Background(), level.FromZap(ent.Level), ent.Message, ctx)
}

func (*zapCore) Sync() error {
	return nil
}
