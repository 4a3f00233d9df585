// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package metrics provides Prometheus collectors for log delivery.
//
// All methods are safe to call on a nil *Metrics, which records nothing, so
// instrumented code does not need to check whether metrics are enabled.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reasons a log entry was not sent.
const (
	ReasonLevel  = "level"
	ReasonFilter = "filter"
)

// Kinds of delivery failure.
const (
	KindTransport = "transport"
	KindRejected  = "rejected"
)

// Metrics bundles the prometheus collectors used by the logger and webhook client.
type Metrics struct {
	MessagesSent        prometheus.Counter
	MessagesFiltered    *prometheus.CounterVec
	DeliveryFailures    *prometheus.CounterVec
	DeliveryDurationSec prometheus.Histogram
}

// New creates the collectors and registers them with registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "slacklog_messages_sent_total",
			Help: "Total number of messages accepted by the webhook.",
		}),
		MessagesFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slacklog_messages_filtered_total",
			Help: "Total number of log entries that were not sent.",
		}, []string{"reason"}),
		DeliveryFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slacklog_delivery_failures_total",
			Help: "Total number of failed webhook deliveries.",
		}, []string{"kind"}),
		DeliveryDurationSec: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "slacklog_delivery_duration_seconds",
			Help:    "Webhook delivery duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	registry.MustRegister(
		m.MessagesSent,
		m.MessagesFiltered,
		m.DeliveryFailures,
		m.DeliveryDurationSec,
	)

	return m
}

// Sent records a successful delivery.
func (m *Metrics) Sent(d time.Duration) {
	if m == nil {
		return
	}
	m.MessagesSent.Inc()
	m.DeliveryDurationSec.Observe(d.Seconds())
}

// Failed records a failed delivery of the given kind.
func (m *Metrics) Failed(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.DeliveryFailures.WithLabelValues(kind).Inc()
	m.DeliveryDurationSec.Observe(d.Seconds())
}

// Filtered records a log entry that was dropped before delivery.
func (m *Metrics) Filtered(reason string) {
	if m == nil {
		return
	}
	m.MessagesFiltered.WithLabelValues(reason).Inc()
}
