// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stacklok/slacklog/appcontext"
	"github.com/stacklok/slacklog/blockkit"
	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/level"
)

type stringable struct{}

func (stringable) String() string {
	return "My type implements `fmt.Stringer`"
}

type plainObject struct {
	Foo string `yaml:"foo"`
	Baz string `yaml:"baz"`
}

func webAppContext() *appcontext.AppContext {
	return appcontext.New("Webpage", "host.name", appcontext.Server{
		ScriptName:    "/path/to/script",
		RequestMethod: http.MethodPost,
		RequestURI:    "/checkout?foo=bar",
		UserAgent:     "Mozilla/5.0",
		Referrer:      "https://www.google.co.uk/",
	}, map[string]any{"username": "qux"})
}

func cliAppContext() *appcontext.AppContext {
	return appcontext.New("Command-line script", "host.name", appcontext.Server{
		ScriptName: "/path/to/script",
	}, map[string]any{})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		level level.Level
		msg   string
		ctx   *fields.Fields
		want  string
	}{
		{
			name:  "message only",
			level: level.Debug,
			msg:   "Hello, World :-)",
			ctx:   fields.New(),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Debug*: Hello, World :-)"}}
			]}`,
		},
		{
			name:  "extra context keeps insertion order",
			level: level.Emergency,
			msg:   "Goodbye, cruel World :-(",
			ctx:   fields.New("foo", "bar", "baz", "qux"),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:bangbang: Emergency*: Goodbye, cruel World :-("}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*foo*\nbar"},
					{"type":"mrkdwn","text":"*baz*\nqux"}
				]}
			]}`,
		},
		{
			name:  "values that can be converted to a string",
			level: level.Info,
			msg:   "Objects that can be converted to a string",
			ctx:   fields.New("Stringer", stringable{}, "Error", errors.New("connection refused")),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Info*: Objects that can be converted to a string"}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*Stringer*\nMy type implements ` + "`fmt.Stringer`" + `"},
					{"type":"mrkdwn","text":"*Error*\nconnection refused"}
				]}
			]}`,
		},
		{
			name:  "plain object is dumped",
			level: level.Info,
			msg:   "A plain object",
			ctx:   fields.New("Dump", plainObject{Foo: "bar", Baz: "qux"}),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Info*: A plain object"}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*Dump*\n` + "```" + `foo: bar\nbaz: qux\n` + "```" + `"}
				]}
			]}`,
		},
		{
			name:  "web app context",
			level: level.Info,
			msg:   "With app-context",
			ctx:   fields.New(AppContextKey, webAppContext()),
			want: `{"blocks":[
				{"type":"divider"},
				{"type":"context","elements":[
					{"type":"mrkdwn","text":"*App*: Webpage"},
					{"type":"mrkdwn","text":"*Hostname*: host.name"},
					{"type":"mrkdwn","text":"*Script*: /path/to/script"}
				]},
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Info*: With app-context"}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*Request URI*\n/checkout?foo=bar"},
					{"type":"mrkdwn","text":"*Request Method*\nPOST"},
					{"type":"mrkdwn","text":"*Request Parameters*\n` + "```" + `username: qux\n` + "```" + `"},
					{"type":"mrkdwn","text":"*User Agent*\nMozilla/5.0"},
					{"type":"mrkdwn","text":"*Referrer*\nhttps://www.google.co.uk/"}
				]}
			]}`,
		},
		{
			name:  "command-line app context has no request section",
			level: level.Info,
			msg:   "With app-context",
			ctx:   fields.New(AppContextKey, cliAppContext()),
			want: `{"blocks":[
				{"type":"divider"},
				{"type":"context","elements":[
					{"type":"mrkdwn","text":"*App*: Command-line script"},
					{"type":"mrkdwn","text":"*Hostname*: host.name"},
					{"type":"mrkdwn","text":"*Script*: /path/to/script"}
				]},
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Info*: With app-context"}}
			]}`,
		},
		{
			name:  "app context value that is not an AppContext",
			level: level.Info,
			msg:   "With a `appContext` context element that isn't an `AppContext` object",
			ctx:   fields.New(AppContextKey, "something"),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Info*: With a ` + "`appContext`" + ` context element that isn't an ` + "`AppContext`" + ` object"}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*appContext*\nsomething"}
				]}
			]}`,
		},
		{
			name:  "app context with extra context",
			level: level.Warning,
			msg:   "A quick brown fox jumps over the lazy dog",
			ctx: fields.New(
				AppContextKey, cliAppContext(),
				"foo", "bar",
				"baz", map[string]any{"foo": "bar", "baz": "qux"},
			),
			want: `{"blocks":[
				{"type":"divider"},
				{"type":"context","elements":[
					{"type":"mrkdwn","text":"*App*: Command-line script"},
					{"type":"mrkdwn","text":"*Hostname*: host.name"},
					{"type":"mrkdwn","text":"*Script*: /path/to/script"}
				]},
				{"type":"section","text":{"type":"mrkdwn","text":"*:warning: Warning*: A quick brown fox jumps over the lazy dog"}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*foo*\nbar"},
					{"type":"mrkdwn","text":"*baz*\n` + "```" + `baz: qux\nfoo: bar\n` + "```" + `"}
				]}
			]}`,
		},
		{
			name:  "empty values are dropped",
			level: level.Error,
			msg:   "Partially empty",
			ctx:   fields.New("empty", "", "nil", nil, "zero", 0, "false", false, "list", []string{}, "kept", "yes"),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:bangbang: Error*: Partially empty"}},
				{"type":"section","fields":[
					{"type":"mrkdwn","text":"*kept*\nyes"}
				]}
			]}`,
		},
		{
			name:  "all values empty",
			level: level.Notice,
			msg:   "Nothing else",
			ctx:   fields.New("empty", "", "nil", nil),
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:information_source: Notice*: Nothing else"}}
			]}`,
		},
		{
			name:  "empty message is still sent",
			level: level.Critical,
			msg:   "",
			ctx:   nil,
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"*:bangbang: Critical*: "}}
			]}`,
		},
		{
			name:  "unknown level has no marker",
			level: level.Level("verbose"),
			msg:   "Hello",
			ctx:   nil,
			want: `{"blocks":[
				{"type":"section","text":{"type":"mrkdwn","text":"* Verbose*: Hello"}}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := Build(tt.level, tt.msg, tt.ctx)

			got, err := json.Marshal(m)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
			assert.NoError(t, m.Validate())
		})
	}
}

func TestBuild_BlockOrder(t *testing.T) {
	t.Parallel()

	m := Build(level.Alert, "order", fields.New("foo", "bar", AppContextKey, webAppContext()))

	types := make([]string, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		types = append(types, b.BlockType())
	}
	assert.Equal(t, []string{
		blockkit.TypeDivider,
		blockkit.TypeContext,
		blockkit.TypeSection,
		blockkit.TypeSection,
		blockkit.TypeSection,
	}, types)

	primary := m.Blocks[2].(*blockkit.Section)
	require.NotNil(t, primary.Text)
	assert.Equal(t, "*:bangbang: Alert*: order", primary.Text.Text)

	extra := m.Blocks[3].(*blockkit.Section)
	assert.Equal(t, []blockkit.TextObject{blockkit.Mrkdwn("*foo*\nbar")}, extra.Fields)

	footer := m.Blocks[4].(*blockkit.Section)
	assert.Len(t, footer.Fields, 5)
}

func TestBuild_DoesNotModifyContext(t *testing.T) {
	t.Parallel()

	ctx := fields.New(AppContextKey, webAppContext(), "foo", "bar")
	_ = Build(level.Info, "msg", ctx)

	assert.Equal(t, []string{AppContextKey, "foo"}, ctx.Keys())
}

func TestBuild_AppContextByValue(t *testing.T) {
	t.Parallel()

	m := Build(level.Info, "msg", fields.New(AppContextKey, *cliAppContext()))
	require.Len(t, m.Blocks, 3)
	assert.Equal(t, blockkit.TypeDivider, m.Blocks[0].BlockType())
}

func TestBuild_NilAppContextIsDropped(t *testing.T) {
	t.Parallel()

	var app *appcontext.AppContext
	m := Build(level.Info, "msg", fields.New(AppContextKey, app))
	require.Len(t, m.Blocks, 1)
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	var nilPtr *plainObject
	var nilErr error

	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"nil error", nilErr, true},
		{"empty string", "", true},
		{"zero string is not empty", "0", false},
		{"false", false, true},
		{"true", true, false},
		{"zero int", 0, true},
		{"zero uint", uint(0), true},
		{"zero float", 0.0, true},
		{"non-zero float", 0.1, false},
		{"empty map", map[string]any{}, true},
		{"empty slice", []int{}, true},
		{"nil pointer", nilPtr, true},
		{"struct", plainObject{}, false},
		{"pointer to struct", &plainObject{}, false},
		{"stringer", stringable{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsEmpty(tt.value))
		})
	}
}
