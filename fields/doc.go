// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package fields provides the insertion-ordered key/value context attached
// to a log entry. Order matters because each entry becomes one field of the
// Slack message, shown in the order the caller supplied them.
package fields
