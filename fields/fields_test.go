// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []any
		wantKeys []string
		wantMap  map[string]any
	}{
		{
			name:     "empty",
			args:     nil,
			wantKeys: []string{},
			wantMap:  map[string]any{},
		},
		{
			name:     "keeps insertion order",
			args:     []any{"foo", "bar", "baz", "qux", "abc", 1},
			wantKeys: []string{"foo", "baz", "abc"},
			wantMap:  map[string]any{"foo": "bar", "baz": "qux", "abc": 1},
		},
		{
			name:     "dangling key has nil value",
			args:     []any{"foo", "bar", "orphan"},
			wantKeys: []string{"foo", "orphan"},
			wantMap:  map[string]any{"foo": "bar", "orphan": nil},
		},
		{
			name:     "non-string key is formatted",
			args:     []any{42, "answer"},
			wantKeys: []string{"42"},
			wantMap:  map[string]any{"42": "answer"},
		},
		{
			name:     "repeated key keeps first position and last value",
			args:     []any{"a", 1, "b", 2, "a", 3},
			wantKeys: []string{"a", "b"},
			wantMap:  map[string]any{"a": 3, "b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := New(tt.args...)
			assert.Equal(t, tt.wantKeys, f.Keys())
			assert.Equal(t, tt.wantMap, f.ToMap())
			assert.Equal(t, len(tt.wantKeys), f.Len())
		})
	}
}

func TestFields_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var f *Fields
	assert.Equal(t, 0, f.Len())
	assert.False(t, f.Delete("foo"))
	_, ok := f.Get("foo")
	assert.False(t, ok)
	assert.Empty(t, f.Keys())
	assert.Equal(t, 0, f.Clone().Len())
}

func TestFields_SetGetDelete(t *testing.T) {
	t.Parallel()

	f := New("foo", "bar")
	f.Set("baz", "qux").Set("foo", "changed")

	v, ok := f.Get("foo")
	require.True(t, ok)
	assert.Equal(t, "changed", v)
	assert.Equal(t, []string{"foo", "baz"}, f.Keys())

	assert.True(t, f.Delete("foo"))
	assert.False(t, f.Delete("foo"))
	assert.Equal(t, []string{"baz"}, f.Keys())
}

func TestFields_SetOnZeroValue(t *testing.T) {
	t.Parallel()

	var f Fields
	f.Set("foo", "bar")
	assert.Equal(t, 1, f.Len())
}

func TestFields_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	original := New("foo", "bar")
	clone := original.Clone()
	clone.Set("baz", "qux")
	clone.Delete("foo")

	assert.Equal(t, []string{"foo"}, original.Keys())
	assert.Equal(t, []string{"baz"}, clone.Keys())
}

func TestFields_AllStopsEarly(t *testing.T) {
	t.Parallel()

	f := New("a", 1, "b", 2, "c", 3)
	var seen []string
	for k := range f.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("override wins and keeps default position", func(t *testing.T) {
		t.Parallel()
		defaults := New("appContext", "stored")
		overrides := New("foo", "bar", "appContext", "explicit")

		merged := Merge(defaults, overrides)

		assert.Equal(t, []string{"appContext", "foo"}, merged.Keys())
		v, _ := merged.Get("appContext")
		assert.Equal(t, "explicit", v)
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		t.Parallel()
		defaults := New("appContext", "stored")
		overrides := New("foo", "bar")

		_ = Merge(defaults, overrides)

		assert.Equal(t, []string{"appContext"}, defaults.Keys())
		assert.Equal(t, []string{"foo"}, overrides.Keys())
	})

	t.Run("nil overrides", func(t *testing.T) {
		t.Parallel()
		merged := Merge(New("a", 1), nil)
		assert.Equal(t, map[string]any{"a": 1}, merged.ToMap())
	})
}
