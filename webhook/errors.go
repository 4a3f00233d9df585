// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package webhook

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for webhook operations.
var (
	// ErrInvalidConfiguration is returned when a client cannot be created
	// from the given URL or options.
	ErrInvalidConfiguration = errors.New("invalid webhook configuration")

	// ErrTransport is returned when a message could not be sent or its
	// response could not be read.
	ErrTransport = errors.New("failed to send the message JSON to Slack")

	// ErrRejected is returned when Slack answers with a status other than 200.
	ErrRejected = errors.New("the message JSON was rejected by Slack")
)

// ConfigError describes an invalid client configuration.
type ConfigError struct {
	Msg string
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Msg, e.Err)
}

// Unwrap returns both ErrInvalidConfiguration and the underlying cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfiguration}
	}
	return []error{ErrInvalidConfiguration, e.Err}
}

// TransportError wraps a failure to reach the webhook.
type TransportError struct {
	// Op names the step that failed, such as "create request" or "read response".
	Op  string
	Err error
}

// Error implements the error interface for TransportError.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrTransport, e.Op, e.Err)
}

// Unwrap returns both ErrTransport and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// RejectedError is returned when the webhook answers with a non-200 status.
// It carries the full exchange so that callers can report it.
type RejectedError struct {
	StatusCode   int
	ResponseBody string
	RequestBody  string
}

// Error implements the error interface for RejectedError.
func (e *RejectedError) Error() string {
	var b strings.Builder
	b.WriteString("The message JSON was rejected by Slack.\n\n")
	fmt.Fprintf(&b, "**Response code**\n%d\n\n", e.StatusCode)
	fmt.Fprintf(&b, "**Transfer**\n%s\n\n", e.ResponseBody)
	fmt.Fprintf(&b, "**Request body**\n%s", e.RequestBody)
	return b.String()
}

// Unwrap returns ErrRejected.
func (*RejectedError) Unwrap() error {
	return ErrRejected
}

// HTTPCode returns the status code Slack answered with.
func (e *RejectedError) HTTPCode() int {
	return e.StatusCode
}
