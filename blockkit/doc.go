// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package blockkit models the subset of Slack's Block Kit used by slacklog
messages: dividers, sections and context blocks carrying mrkdwn text.

A [Message] serializes to the incoming-webhook payload:

	{"blocks": [{"type": "divider"}, {"type": "section", "text": {"type": "mrkdwn", "text": "..."}}]}

Section text and fields are omitted from the JSON when absent. [Message.Append]
skips empty blocks, so builders can append optional blocks unconditionally.

[Message.Validate] checks a message against an embedded JSON schema that
mirrors Slack's limits (at most 50 blocks, 10 fields per section, 3000
characters per text object).
*/
package blockkit
