// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env provides an interface-based abstraction for environment variable
access, enabling dependency injection and testing isolation.

# Basic Usage

Use OSReader to read environment variables via the standard os package:

	reader := &env.OSReader{}
	value := reader.Getenv("MY_VAR")

# Testing

The Reader interface allows injecting a mock in tests to avoid relying on
real environment variables. A generated mock is available in the mocks
sub-package:

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockReader(ctrl)
	mock.EXPECT().Getenv("MY_VAR").Return("test-value")

	result := myFunc(mock)

For table-driven tests where call expectations do not matter, MapReader
serves a fixed set of variables:

	reader := env.MapReader{"SLACKLOG_WEBHOOK_URL": "https://hooks.slack.com/services/T/B/X"}

# Fallback Names

FirstOf reads the first non-empty variable from a list, so a setting can be
read under its current and legacy names:

	url := env.FirstOf(reader, "SLACKLOG_WEBHOOK_URL", "SLACK_WEBHOOK_URL")

# Design

Production code accepts an env.Reader, while tests substitute the generated
mock or a MapReader. The configuration loader and appcontext.FromProcess are
the only consumers.
*/
package env
