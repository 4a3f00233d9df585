// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package fields

import (
	"fmt"
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is an insertion-ordered set of named context values.
// A nil *Fields is a valid, empty set for every read operation.
type Fields struct {
	m *orderedmap.OrderedMap[string, any]
}

// New builds Fields from alternating keys and values, in the style of
// zap's Infow. A trailing key without a value is stored with a nil value.
// Keys that are not strings are formatted with fmt.Sprint.
func New(keysAndValues ...any) *Fields {
	f := &Fields{m: orderedmap.New[string, any]()}
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		var value any
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		f.m.Set(key, value)
	}
	return f
}

// Set stores value under key. An existing key keeps its position.
func (f *Fields) Set(key string, value any) *Fields {
	if f.m == nil {
		f.m = orderedmap.New[string, any]()
	}
	f.m.Set(key, value)
	return f
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) {
	if f == nil || f.m == nil {
		return nil, false
	}
	return f.m.Get(key)
}

// Delete removes key and reports whether it was present.
func (f *Fields) Delete(key string) bool {
	if f == nil || f.m == nil {
		return false
	}
	_, present := f.m.Delete(key)
	return present
}

// Len returns the number of entries.
func (f *Fields) Len() int {
	if f == nil || f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	keys := make([]string, 0, f.Len())
	for k := range f.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over the entries in insertion order.
func (f *Fields) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if f == nil || f.m == nil {
			return
		}
		for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy. Cloning nil yields an empty set.
func (f *Fields) Clone() *Fields {
	clone := New()
	for k, v := range f.All() {
		clone.m.Set(k, v)
	}
	return clone
}

// ToMap returns the entries as a plain map, losing their order.
func (f *Fields) ToMap() map[string]any {
	out := make(map[string]any, f.Len())
	for k, v := range f.All() {
		out[k] = v
	}
	return out
}

// Merge returns a new set holding defaults overlaid with overrides.
// Keys from defaults keep their position but take the override's value;
// keys only present in overrides are appended in their own order.
// Neither argument is modified.
func Merge(defaults, overrides *Fields) *Fields {
	merged := defaults.Clone()
	for k, v := range overrides.All() {
		merged.m.Set(k, v)
	}
	return merged
}
