// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// CodeFence delimits structured dumps so that Slack renders them in a
// fixed-width font.
const CodeFence = "```"

// dumpIndent is the indentation used for nested values in a dump.
const dumpIndent = 2

// IsDisplayableAsText reports whether v can be shown as plain text: strings,
// booleans, numbers, and values implementing fmt.Stringer or error.
// Nil pointers are not, even when their type has a String method.
func IsDisplayableAsText(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return false
	}
	switch v.(type) {
	case fmt.Stringer, error:
		return true
	}
	return isScalar(rv.Kind())
}

// Render returns v as text. Values that cannot be displayed as text are
// dumped as YAML inside a code block.
func Render(v any) string {
	if !IsDisplayableAsText(v) {
		return CodeFence + structuredDump(v) + CodeFence
	}

	switch val := v.(type) {
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}
	return fmt.Sprint(v)
}

// Dump returns a short, readable representation of v for error messages:
// nil is "null", strings are wrapped in double quotes and anything else is
// dumped as YAML.
func Dump(v any) string {
	if v == nil {
		return "null"
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return `"` + rv.String() + `"`
	}
	return strings.TrimSuffix(structuredDump(v), "\n")
}

// structuredDump renders v as YAML. Map keys are sorted, so the output is
// stable for identical input.
func structuredDump(v any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%#v\n", v)
		}
	}()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(dumpIndent)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%#v\n", v)
	}
	if err := enc.Close(); err != nil {
		return fmt.Sprintf("%#v\n", v)
	}
	return buf.String()
}

func isScalar(k reflect.Kind) bool {
	switch k {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
