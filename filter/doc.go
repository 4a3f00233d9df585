// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package filter decides, with a CEL expression, whether a log entry is sent.

An expression sees four variables:

	level     string            the level name, such as "error"
	priority  int               0 for debug up to 7 for emergency
	message   string            the log message
	context   map(string, dyn)  the context fields

and must produce a bool:

	expr, err := filter.Compile(`priority >= 4 || context["user"] == "admin"`)
	if err != nil {
	    // err is a *ParseError or *CheckError with line and column details
	}
	ok, err := expr.Allow(level.Error, "disk full", fields.New("user", "bob"))

Expressions are limited in length and runtime cost. Use [NewEngine] with
[Engine.WithMaxExpressionLength] and [Engine.WithCostLimit] to change the
limits.
*/
package filter
