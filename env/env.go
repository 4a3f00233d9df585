// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package env

//go:generate mockgen -copyright_file=../.github/license-header.txt -source=env.go -destination=mocks/mock_reader.go -package=mocks Reader

import "os"

// Reader defines an interface for environment variable access
type Reader interface {
	Getenv(key string) string
}

// OSReader implements Reader using the standard os package
type OSReader struct{}

// Getenv returns the value of the environment variable named by the key
func (*OSReader) Getenv(key string) string {
	return os.Getenv(key)
}

// MapReader implements Reader over a fixed set of variables.
// Unset keys read as "".
type MapReader map[string]string

// Getenv returns the value stored under key
func (m MapReader) Getenv(key string) string {
	return m[key]
}

// FirstOf returns the first non-empty value among keys, or "" if all of
// them are unset. It lets a setting keep working under a legacy name.
func FirstOf(r Reader, keys ...string) string {
	for _, key := range keys {
		if v := r.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}
