// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"fmt"
	"reflect"

	"github.com/stacklok/slacklog/appcontext"
	"github.com/stacklok/slacklog/blockkit"
	"github.com/stacklok/slacklog/display"
	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/level"
)

// AppContextKey is the context key under which an *appcontext.AppContext is
// recognised and rendered as the message header and footer.
const AppContextKey = "appContext"

// Labels of the request footer, in display order.
const (
	LabelRequestURI    = "Request URI"
	LabelRequestMethod = "Request Method"
	LabelRequestParams = "Request Parameters"
	LabelUserAgent     = "User Agent"
	LabelReferrer      = "Referrer"
)

// field is a label with the value shown under it.
type field struct {
	label string
	value any
}

// Build creates the Slack message for a log entry.
//
// When ctx holds an *appcontext.AppContext under AppContextKey, the message
// starts with a divider and a context block naming the app, host and script,
// and ends with a section describing the request. The remaining entries of
// ctx are shown as fields below the log message; empty values are left out.
// ctx is not modified.
func Build(lvl level.Level, msg string, ctx *fields.Fields) *blockkit.Message {
	extra := ctx.Clone()
	app := extractAppContext(extra)

	m := &blockkit.Message{}

	if app != nil {
		m.Append(
			blockkit.Divider{},
			&blockkit.Context{Elements: textObjects([]field{
				{"App", app.AppName()},
				{"Hostname", app.Hostname()},
				{"Script", app.ScriptName()},
			}, ": ")},
		)
	}

	marker, _ := level.MarkerFor(lvl)
	primary := blockkit.Mrkdwn(fmt.Sprintf("*%s %s*: %s", marker, lvl.Capitalized(), msg))
	m.Append(&blockkit.Section{Text: &primary})

	extraFields := make([]field, 0, extra.Len())
	for k, v := range extra.All() {
		extraFields = append(extraFields, field{k, v})
	}
	m.Append(fieldsSection(extraFields))

	if app != nil {
		m.Append(fieldsSection([]field{
			{LabelRequestURI, app.RequestURI()},
			{LabelRequestMethod, app.RequestMethod()},
			{LabelRequestParams, app.Request()},
			{LabelUserAgent, app.UserAgent()},
			{LabelReferrer, app.Referrer()},
		}))
	}

	return m
}

// extractAppContext removes and returns the app context held by ctx, if any.
// Any other value under AppContextKey stays where it is.
func extractAppContext(ctx *fields.Fields) *appcontext.AppContext {
	v, ok := ctx.Get(AppContextKey)
	if !ok {
		return nil
	}

	var app *appcontext.AppContext
	switch val := v.(type) {
	case *appcontext.AppContext:
		app = val
	case appcontext.AppContext:
		app = &val
	}
	if app == nil {
		return nil
	}

	ctx.Delete(AppContextKey)
	return app
}

// fieldsSection returns a section with one field per non-empty value, or nil
// if every value is empty.
func fieldsSection(pairs []field) *blockkit.Section {
	nonEmpty := make([]field, 0, len(pairs))
	for _, p := range pairs {
		if !IsEmpty(p.value) {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return nil
	}
	return &blockkit.Section{Fields: textObjects(nonEmpty, "\n")}
}

func textObjects(pairs []field, glue string) []blockkit.TextObject {
	objects := make([]blockkit.TextObject, 0, len(pairs))
	for _, p := range pairs {
		objects = append(objects, blockkit.Mrkdwn("*"+p.label+"*"+glue+display.Render(p.value)))
	}
	return objects
}

// IsEmpty reports whether v has nothing worth showing: nil, false, zero
// numbers, empty strings and empty collections, and nil pointers.
// Structs are never empty.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
