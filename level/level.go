// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/stacklok/slacklog/display"
)

// Level is a log severity, named as in PSR-3 and RFC 5424.
type Level string

// Levels, lowest to highest priority.
const (
	Debug     Level = "debug"
	Info      Level = "info"
	Notice    Level = "notice"
	Warning   Level = "warning"
	Error     Level = "error"
	Critical  Level = "critical"
	Alert     Level = "alert"
	Emergency Level = "emergency"
)

// Slack emoji shortcodes shown in front of the level name.
const (
	MarkerInfo    = ":information_source:"
	MarkerWarning = ":warning:"
	MarkerAlert   = ":bangbang:"
)

// ErrInvalidLevel is wrapped by every InvalidLevelError.
var ErrInvalidLevel = errors.New("invalid log level")

// ordered holds every level with its marker, lowest priority first.
var ordered = []struct {
	level  Level
	marker string
}{
	{Debug, MarkerInfo},
	{Info, MarkerInfo},
	{Notice, MarkerInfo},
	{Warning, MarkerWarning},
	{Error, MarkerAlert},
	{Critical, MarkerAlert},
	{Alert, MarkerAlert},
	{Emergency, MarkerAlert},
}

// InvalidLevelError reports a value that is not a known log level.
type InvalidLevelError struct {
	// Value is the offending value, as it was passed in.
	Value any
}

// Error implements the error interface.
func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("The log-level, `%s`, does not exist", display.Dump(e.Value))
}

// Unwrap returns ErrInvalidLevel.
func (*InvalidLevelError) Unwrap() error {
	return ErrInvalidLevel
}

// All returns every level, lowest priority first.
func All() []Level {
	levels := make([]Level, len(ordered))
	for i, entry := range ordered {
		levels[i] = entry.level
	}
	return levels
}

// PriorityOf returns the priority of l, 0 being the lowest.
// The second return value is false if l is not a known level.
func PriorityOf(l Level) (int, bool) {
	for i, entry := range ordered {
		if entry.level == l {
			return i, true
		}
	}
	return -1, false
}

// Exists reports whether l is a known level.
func Exists(l Level) bool {
	_, ok := PriorityOf(l)
	return ok
}

// AssertExists returns an *InvalidLevelError unless v is a known level.
// v may be a Level or a string; anything else is never a level.
func AssertExists(v any) error {
	if _, ok := asLevel(v); !ok {
		return &InvalidLevelError{Value: v}
	}
	return nil
}

// Lowest returns the level with the lowest priority.
func Lowest() Level {
	return ordered[0].level
}

// MarkerFor returns the emoji shortcode for l.
func MarkerFor(l Level) (string, bool) {
	for _, entry := range ordered {
		if entry.level == l {
			return entry.marker, true
		}
	}
	return "", false
}

// Parse looks up a level by name, ignoring case and surrounding whitespace.
func Parse(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !Exists(l) {
		return "", &InvalidLevelError{Value: s}
	}
	return l, nil
}

// Of converts v to a known level, as accepted by AssertExists.
func Of(v any) (Level, error) {
	l, ok := asLevel(v)
	if !ok {
		return "", &InvalidLevelError{Value: v}
	}
	return l, nil
}

// String implements fmt.Stringer.
func (l Level) String() string {
	return string(l)
}

// Capitalized returns the name with its first letter upper-cased, e.g. "Debug".
func (l Level) Capitalized() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// FromSlog maps a slog level onto the closest level.
// Anything above slog.LevelError climbs through critical, alert and emergency
// in steps of four, following the slog convention for custom levels.
func FromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return Debug
	case l < slog.LevelInfo+2:
		return Info
	case l < slog.LevelWarn:
		return Notice
	case l < slog.LevelError:
		return Warning
	case l < slog.LevelError+4:
		return Error
	case l < slog.LevelError+8:
		return Critical
	case l < slog.LevelError+12:
		return Alert
	default:
		return Emergency
	}
}

// FromZap maps a zap level onto the closest level.
func FromZap(l zapcore.Level) Level {
	switch l {
	case zapcore.DebugLevel:
		return Debug
	case zapcore.InfoLevel:
		return Info
	case zapcore.WarnLevel:
		return Warning
	case zapcore.ErrorLevel:
		return Error
	case zapcore.DPanicLevel, zapcore.PanicLevel:
		return Critical
	case zapcore.FatalLevel:
		return Emergency
	default:
		if l < zapcore.DebugLevel {
			return Debug
		}
		return Emergency
	}
}

func asLevel(v any) (Level, bool) {
	var l Level
	switch val := v.(type) {
	case Level:
		l = val
	case string:
		l = Level(val)
	default:
		return "", false
	}
	return l, Exists(l)
}
