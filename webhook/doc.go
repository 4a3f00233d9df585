// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package webhook delivers Block Kit messages to a Slack incoming webhook.

Each delivery is a single synchronous POST with a JSON body. There are no
retries and no queueing; the caller decides what to do with a failure.

# Basic Usage

	client, err := webhook.New("https://hooks.slack.com/services/T000/B000/XXXX")
	if err != nil {
		return err
	}
	body, err := client.Send(ctx, msg)

# Errors

[New] returns a [*ConfigError] for a malformed URL or header. [Client.Send]
and [Client.SendJSON] return a [*TransportError] when the webhook could not
be reached and a [*RejectedError] when it answered with a status other than
200. All of them match a sentinel with [errors.Is]:

	var rejected *webhook.RejectedError
	switch {
	case errors.As(err, &rejected):
		log.Printf("slack said %d: %s", rejected.StatusCode, rejected.ResponseBody)
	case errors.Is(err, webhook.ErrTransport):
		log.Printf("slack is unreachable: %v", err)
	}

# Instrumentation

Every delivery runs in an OpenTelemetry span named "webhook.Send". Use
[WithMetrics] to record Prometheus counters and [WithLogger] to receive
debug logs.
*/
package webhook
