// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package webhook

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=webhook.go -destination=mocks/mock_doer.go -package=mocks Doer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/stacklok/slacklog/blockkit"
	"github.com/stacklok/slacklog/metrics"
	httpval "github.com/stacklok/slacklog/validation/http"
)

const instrumentationName = "github.com/stacklok/slacklog/webhook"

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// header is a custom request header.
type header struct {
	name  string
	value string
}

// Client delivers messages to a single incoming-webhook URL.
// A Client is immutable once created and is safe for concurrent use when
// its Doer is.
type Client struct {
	url     string
	doer    Doer
	timeout time.Duration
	headers []header
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

// config holds the resolved options for [New].
type config struct {
	doer           Doer
	timeout        time.Duration
	headers        []header
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	metrics        *metrics.Metrics
	err            error
}

// Option configures a [Client].
type Option func(*config)

// WithHTTPClient sets the HTTP client used to send requests.
// The default is [http.DefaultClient].
func WithHTTPClient(d Doer) Option {
	return func(c *config) {
		c.doer = d
	}
}

// WithTimeout bounds each delivery. Zero, the default, means no limit
// beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithHeader adds a header to every request. Content-Type cannot be
// overridden.
func WithHeader(name, value string) Option {
	return func(c *config) {
		if err := httpval.ValidateHeaderName(name); err != nil {
			c.err = &ConfigError{Msg: fmt.Sprintf("the header %q is invalid", name), Err: err}
			return
		}
		if err := httpval.ValidateHeaderValue(value); err != nil {
			c.err = &ConfigError{Msg: fmt.Sprintf("the value of header %q is invalid", name), Err: err}
			return
		}
		c.headers = append(c.headers, header{name: name, value: value})
	}
}

// WithLogger sets the logger for delivery diagnostics.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithTracerProvider sets the tracer provider. The default is the global
// provider returned by [otel.GetTracerProvider].
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMetrics records deliveries in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// New creates a client for webhookURL.
//
// It returns a *ConfigError, which matches ErrInvalidConfiguration, if the
// URL is not a well-formed absolute http or https URL or an option is invalid.
func New(webhookURL string, opts ...Option) (*Client, error) {
	if err := httpval.ValidateWebhookURL(webhookURL); err != nil {
		return nil, &ConfigError{Msg: "the webhook URL is invalid", Err: err}
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	if cfg.doer == nil {
		cfg.doer = http.DefaultClient
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.tracerProvider == nil {
		cfg.tracerProvider = otel.GetTracerProvider()
	}

	return &Client{
		url:     webhookURL,
		doer:    cfg.doer,
		timeout: cfg.timeout,
		headers: cfg.headers,
		logger:  cfg.logger,
		tracer:  cfg.tracerProvider.Tracer(instrumentationName),
		metrics: cfg.metrics,
	}, nil
}

// URL returns the webhook URL.
func (c *Client) URL() string {
	return c.url
}

// Send serializes msg and posts it to the webhook. See [Client.SendJSON].
func (c *Client) Send(ctx context.Context, msg *blockkit.Message) (string, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return "", &TransportError{Op: "encode message", Err: err}
	}
	return c.SendJSON(ctx, body)
}

// SendJSON posts an already serialized message to the webhook in a single
// attempt and returns the response body.
//
// It returns a *TransportError if the request could not be made or its
// response could not be read, and a *RejectedError if the webhook answered
// with any status other than 200.
func (c *Client) SendJSON(ctx context.Context, body []byte) (string, error) {
	ctx, span := c.tracer.Start(ctx, "webhook.Send",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.Int("http.request.body.size", len(body)),
		),
	)
	defer span.End()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := c.post(ctx, body)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			span.SetAttributes(attribute.Int("http.response.status_code", rejected.StatusCode))
			c.metrics.Failed(metrics.KindRejected, elapsed)
		} else {
			c.metrics.Failed(metrics.KindTransport, elapsed)
		}
		c.logger.DebugContext(ctx, "webhook delivery failed", "error", err, "duration", elapsed)
		return "", err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", http.StatusOK))
	span.SetStatus(codes.Ok, "")
	c.metrics.Sent(elapsed)
	c.logger.DebugContext(ctx, "webhook delivery succeeded", "duration", elapsed)

	return result, nil
}

func (c *Client) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Op: "create request", Err: err}
	}
	for _, h := range c.headers {
		req.Header.Set(h.name, h.value)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &RejectedError{
			StatusCode:   resp.StatusCode,
			ResponseBody: string(respBody),
			RequestBody:  string(body),
		}
	}

	return string(respBody), nil
}
