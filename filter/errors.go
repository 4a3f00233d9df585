// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
)

// Sentinel errors for filter operations.
var (
	// ErrExpressionCheck is returned when a filter expression fails syntax or type checking.
	ErrExpressionCheck = errors.New("filter expression check failed")

	// ErrEvaluation is returned when a filter expression fails at runtime.
	ErrEvaluation = errors.New("filter expression evaluation failed")

	// ErrInvalidResult is returned when a filter expression does not yield a bool.
	ErrInvalidResult = errors.New("filter expression returned invalid result type")
)

// ErrKind is a string identifying the type of filter error.
type ErrKind string

const (
	// ErrKindParse indicates a syntax error in the expression.
	ErrKindParse ErrKind = "parse"
	// ErrKindCheck indicates a type checking error in the expression.
	ErrKindCheck ErrKind = "check"
)

// ErrInstance represents one problem found in an expression.
type ErrInstance struct {
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
	Msg  string `json:"msg,omitempty"`
}

// ErrDetails contains structured error information for an expression.
type ErrDetails struct {
	Errors []ErrInstance `json:"errors,omitempty"`
	Source string        `json:"source,omitempty"`
}

// AsJSON returns the ErrDetails as a JSON string.
func (ed *ErrDetails) AsJSON() string {
	b, err := json.Marshal(ed)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal JSON: %s"}`, err)
	}
	return string(b)
}

func detailsFromIssues(source string, issues *cel.Issues) ErrDetails {
	ed := ErrDetails{
		Source: source,
		Errors: make([]ErrInstance, 0, len(issues.Errors())),
	}
	for _, err := range issues.Errors() {
		ed.Errors = append(ed.Errors, ErrInstance{
			Line: err.Location.Line(),
			Col:  err.Location.Column(),
			Msg:  err.Message,
		})
	}
	return ed
}

// ParseError is a syntax error in a filter expression.
type ParseError struct {
	ErrDetails
	original error
}

// Error implements the error interface for ParseError.
func (pe *ParseError) Error() string {
	return fmt.Sprintf("filter %s error in expression %q: %s", ErrKindParse, pe.Source, pe.original)
}

// Unwrap returns the underlying error.
func (pe *ParseError) Unwrap() error {
	return pe.original
}

// CheckError is a type error in a filter expression, such as an unknown
// variable or a comparison between incompatible types.
type CheckError struct {
	ErrDetails
	original error
}

// Error implements the error interface for CheckError.
func (ce *CheckError) Error() string {
	return fmt.Sprintf("filter %s error in expression %q: %s", ErrKindCheck, ce.Source, ce.original)
}

// Unwrap returns the underlying error.
func (ce *CheckError) Unwrap() error {
	return ce.original
}

func newParseError(source string, issues *cel.Issues) error {
	return &ParseError{
		ErrDetails: detailsFromIssues(source, issues),
		original:   fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}

func newCheckError(source string, issues *cel.Issues) error {
	return &CheckError{
		ErrDetails: detailsFromIssues(source, issues),
		original:   fmt.Errorf("%w: %w", ErrExpressionCheck, issues.Err()),
	}
}
