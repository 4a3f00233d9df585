// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package http provides validation functions for webhook URLs and HTTP headers.

The webhook client validates its configuration with these functions when it
is constructed, so a bad URL or header is reported before any log entry is
sent.

# Webhook URL Validation

	if err := http.ValidateWebhookURL("https://hooks.slack.com/services/T/B/X"); err != nil {
		// Handle invalid URL
	}

Webhook URLs must:
  - Use the http or https scheme
  - Include a host
  - Not contain whitespace

# Header Validation

Validate extra request headers per RFC 7230:

	if err := http.ValidateHeaderName("X-Custom-Header"); err != nil {
		// Handle invalid header name
	}

	if err := http.ValidateHeaderValue("Bearer token123"); err != nil {
		// Handle invalid header value
	}

The validators check for:
  - CRLF injection attempts (\r\n sequences)
  - Control characters
  - RFC 7230 token compliance for header names
  - Length limits to prevent DoS (256 bytes for names, 8192 for values)
*/
package http
