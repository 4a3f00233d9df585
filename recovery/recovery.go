// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/stacklok/slacklog/appcontext"
	"github.com/stacklok/slacklog/display"
	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/level"
	"github.com/stacklok/slacklog/logger"
	"github.com/stacklok/slacklog/message"
)

// RequestIDHeader is the header a request ID is taken from when present.
const RequestIDHeader = "X-Request-Id"

// maxStackBytes keeps a stack trace within the size Slack accepts for a
// section field.
const maxStackBytes = 1800

// Context keys of a panic report.
const (
	KeyPanic      = "Panic"
	KeyStackTrace = "Stack trace"
	KeyRequestID  = "Request ID"
)

type config struct {
	hostname string
	logger   *slog.Logger
}

// Option configures [Middleware].
type Option func(*config)

// WithHostname sets the hostname reported for each panic. The default is
// the Host header of the request.
func WithHostname(hostname string) Option {
	return func(c *config) {
		c.hostname = hostname
	}
}

// WithLogger sets the logger that receives reports which could not be sent.
// The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// Middleware returns an HTTP middleware that recovers from panics.
//
// A panic is reported to l at critical level with the request as app
// context, the panic value, the stack trace and a request ID, and the client
// gets a 500 Internal Server Error. A report that cannot be sent is written
// to the fallback slog logger; it never panics again.
//
// http.ErrAbortHandler is re-raised so that net/http can abort the response.
func Middleware(l *logger.Logger, appName string, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
					panic(rec)
				}

				stack := debug.Stack()
				report(l, cfg, appName, r, rec, stack)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func report(l *logger.Logger, cfg *config, appName string, r *http.Request, rec any, stack []byte) {
	requestID := r.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	hostname := cfg.hostname
	if hostname == "" {
		hostname = r.Host
	}

	ctx := fields.New(
		message.AppContextKey, appcontext.FromRequest(appName, hostname, r),
		KeyPanic, fmt.Sprint(rec),
		KeyStackTrace, display.CodeFence+truncate(string(stack), maxStackBytes)+display.CodeFence,
		KeyRequestID, requestID,
	)

	if err := l.Log(r.Context(), level.Critical, "Recovered from a panic while serving "+r.URL.Path, ctx); err != nil {
		cfg.logger.ErrorContext(r.Context(), "failed to report panic",
			"error", err,
			"panic", fmt.Sprint(rec),
			"request_id", requestID,
		)
	}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "\n..."
}
