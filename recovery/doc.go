// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package recovery provides panic recovery middleware for HTTP handlers that
// reports each panic to Slack.
//
// The middleware recovers from panics in HTTP handlers, logs them at critical
// level with the request, the stack trace and a request ID, and returns a
// 500 Internal Server Error response to the client. This prevents a single
// panicking request from crashing the entire server.
//
// # Basic Usage
//
//	l, err := logger.Create("api", webhookURL)
//	if err != nil {
//		return err
//	}
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", handler)
//	http.ListenAndServe(":8080", recovery.Middleware(l, "api")(mux))
//
// # Stability
//
// This package is Beta stability. The API may have minor changes before
// reaching stable status in v1.0.0.
package recovery
