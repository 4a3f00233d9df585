// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package level defines the eight ordered log severities used by slacklog.

The levels and their order match PSR-3 and RFC 5424, lowest first:

	debug < info < notice < warning < error < critical < alert < emergency

Each level has a Slack emoji shortcode shown in front of its name in the
message:

	debug, info, notice                  :information_source:
	warning                              :warning:
	error, critical, alert, emergency    :bangbang:

# Lookups

Lookups never fail on unknown input; they report absence instead and let the
caller decide:

	p, ok := level.PriorityOf("notice") // 2, true
	_, ok = level.PriorityOf("verbose") // -1, false
	m, ok := level.MarkerFor(level.Warning) // ":warning:", true

[AssertExists] turns absence into an error. It accepts any value, because
levels often arrive untyped from configuration files and flags:

	if err := level.AssertExists(cfg["minLogLevel"]); err != nil {
		// errors.Is(err, level.ErrInvalidLevel) == true
	}

The error message contains a readable dump of the offending value: strings
are quoted, nil is printed as null.
*/
package level
