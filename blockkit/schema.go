// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package blockkit

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const messageSchemaFile = "data/message.schema.json"

//go:embed data/message.schema.json
var embeddedSchemaFS embed.FS

// Validate checks the message against the subset of the Block Kit schema
// that slacklog produces.
func (m *Message) Validate() error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}
	return ValidateJSON(data)
}

// ValidateJSON checks a raw webhook payload against the message schema.
func ValidateJSON(data []byte) error {
	schemaData, err := embeddedSchemaFS.ReadFile(messageSchemaFile)
	if err != nil {
		return fmt.Errorf("failed to read embedded schema %s: %w", messageSchemaFile, err)
	}

	const errPrefix = "message schema validation failed"
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errPrefix, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return formatNumberedErrors(errPrefix, msgs)
}

// formatNumberedErrors formats a list of messages as a single error with a numbered list.
func formatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%s: %s", prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return errors.New(strings.TrimSuffix(b.String(), "\n"))
}
