// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the settings of the slacklog command from a YAML
// file, a dotenv file and the environment.
package config
