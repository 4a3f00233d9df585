// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package message builds the Slack message for a single log entry.

The layout is fixed. With an app context present:

	divider
	context   *App*: …   *Hostname*: …   *Script*: …
	section   *:warning: Warning*: the log message
	section   one field per extra context entry (omitted if none)
	section   request URI, method, parameters, user agent, referrer (omitted if none)

Without one, only the two middle sections remain. Values are converted to
text with the display package, and empty values (see [IsEmpty]) are left out.
*/
package message
