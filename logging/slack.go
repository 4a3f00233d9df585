// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"log/slog"
	"slices"

	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/level"
	"github.com/stacklok/slacklog/logger"
)

type noSlackKey struct{}

// WithoutSlack returns a context whose records a [SlackHandler] ignores.
// Handle uses it while delivering, so a logger that tees into Slack can
// also log the delivery itself.
func WithoutSlack(ctx context.Context) context.Context {
	return context.WithValue(ctx, noSlackKey{}, true)
}

func skipSlack(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	skip, _ := ctx.Value(noSlackKey{}).(bool)
	return skip
}

// SlackHandlerOptions configures [NewSlackHandler].
type SlackHandlerOptions struct {
	// Level is the minimum slog level that is passed on. The logger's own
	// minimum level applies as well. The default is [log/slog.LevelInfo].
	Level slog.Leveler

	// OnError receives delivery errors. Handle returns them too, but
	// [log/slog.Logger] discards them. The default ignores them.
	OnError func(context.Context, error)
}

// SlackHandler is a [log/slog.Handler] that sends records to a
// [logger.Logger]. Attributes become context fields; group names prefix
// the keys of their members, joined with a dot.
type SlackHandler struct {
	logger *logger.Logger
	opts   SlackHandlerOptions
	attrs  []slog.Attr
	groups []string
}

// NewSlackHandler creates a handler that sends records to l. opts may be nil.
func NewSlackHandler(l *logger.Logger, opts *SlackHandlerOptions) *SlackHandler {
	h := &SlackHandler{logger: l}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// Enabled implements [log/slog.Handler].
func (h *SlackHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return !skipSlack(ctx) && lvl >= h.opts.Level.Level() && h.logger.Enabled(level.FromSlog(lvl))
}

// Handle implements [log/slog.Handler].
func (h *SlackHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}

	f := fields.New()
	for _, a := range h.attrs {
		addAttr(f, "", a)
	}

	prefix := groupPrefix(h.groups)
	r.Attrs(func(a slog.Attr) bool {
		addAttr(f, prefix, a)
		return true
	})

	if ctx == nil {
		ctx = context.Background()
	}
	ctx = WithoutSlack(ctx)
	err := h.logger.Log(ctx, level.FromSlog(r.Level), r.Message, f)
	if err != nil && h.opts.OnError != nil {
		h.opts.OnError(ctx, err)
	}
	return err
}

// WithAttrs implements [log/slog.Handler].
func (h *SlackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = slices.Clone(h.attrs)
	prefix := groupPrefix(h.groups)
	for _, a := range attrs {
		if prefix != "" {
			a = slog.Attr{Key: prefix + a.Key, Value: a.Value}
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements [log/slog.Handler].
func (h *SlackHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = append(slices.Clone(h.groups), name)
	return &clone
}

func groupPrefix(groups []string) string {
	prefix := ""
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

// addAttr flattens a into f, following the rules of the slog handler docs:
// empty attributes are skipped and groups without a key are inlined.
func addAttr(f *fields.Fields, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner = prefix + a.Key + "."
		}
		for _, member := range a.Value.Group() {
			addAttr(f, inner, member)
		}
		return
	}

	f.Set(prefix+a.Key, a.Value.Any())
}
