// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package http provides validation functions for webhook URLs and HTTP headers.
package http

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/http/httpguts"
)

// ValidateHeaderName validates that a string is a valid HTTP header name per RFC 7230.
// It checks for CRLF injection, control characters, and ensures RFC token compliance.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name cannot be empty")
	}

	// Length limit to prevent DoS
	if len(name) > 256 {
		return fmt.Errorf("header name exceeds maximum length of 256 bytes")
	}

	// Use httpguts validation (same as Go's HTTP/2 implementation)
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("invalid HTTP header name: contains invalid characters")
	}

	return nil
}

// ValidateHeaderValue validates that a string is a valid HTTP header value per RFC 7230.
// It checks for CRLF injection and control characters.
func ValidateHeaderValue(value string) error {
	if value == "" {
		return fmt.Errorf("header value cannot be empty")
	}

	// Length limit to prevent DoS (common HTTP server limit)
	if len(value) > 8192 {
		return fmt.Errorf("header value exceeds maximum length of 8192 bytes")
	}

	// Use httpguts validation
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid HTTP header value: contains control characters")
	}

	return nil
}

// ValidateWebhookURL validates that a string is a well-formed absolute URL
// that a webhook request can be sent to.
//
// A valid webhook URL must:
//   - Use the http or https scheme
//   - Include a host
//   - Not contain whitespace
func ValidateWebhookURL(webhookURL string) error {
	if webhookURL == "" {
		return fmt.Errorf("webhook URL cannot be empty")
	}

	if strings.ContainsFunc(webhookURL, unicode.IsSpace) {
		return fmt.Errorf("webhook URL must not contain whitespace")
	}

	parsed, err := url.Parse(webhookURL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}

	if parsed.Scheme == "" {
		return fmt.Errorf("webhook URL must include a scheme (e.g., https://)")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("webhook URL scheme must be http or https, got %q", parsed.Scheme)
	}

	if parsed.Host == "" || parsed.Hostname() == "" {
		return fmt.Errorf("webhook URL must include a host")
	}

	return nil
}
