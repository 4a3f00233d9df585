// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package display turns arbitrary context values into text for Slack messages.

Strings, booleans, numbers and anything implementing [fmt.Stringer] or
[error] are shown verbatim. Everything else (maps, slices, structs) is dumped
as YAML with sorted map keys and wrapped in a code block:

	display.Render("bar")                        // bar
	display.Render(map[string]any{"foo": "bar"}) // ```foo: bar\n```

The dump is deterministic, which keeps golden-output tests stable.
*/
package display
