// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package filter

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/stacklok/slacklog/display"
	"github.com/stacklok/slacklog/fields"
	"github.com/stacklok/slacklog/level"
)

const (
	// DefaultMaxExpressionLength is the maximum allowed length of an expression.
	DefaultMaxExpressionLength = 4096

	// DefaultCostLimit is the runtime cost limit for evaluating an expression.
	DefaultCostLimit = 100000
)

// Names of the variables available to an expression.
const (
	VarLevel    = "level"
	VarPriority = "priority"
	VarMessage  = "message"
	VarContext  = "context"
)

// Engine compiles filter expressions. It is safe for concurrent use.
type Engine struct {
	env                 func() (*cel.Env, error)
	maxExpressionLength int
	costLimit           uint64
}

// NewEngine creates an engine with the default limits.
func NewEngine() *Engine {
	return &Engine{
		env:                 sync.OnceValues(newEnv),
		maxExpressionLength: DefaultMaxExpressionLength,
		costLimit:           DefaultCostLimit,
	}
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(VarLevel, cel.StringType),
		cel.Variable(VarPriority, cel.IntType),
		cel.Variable(VarMessage, cel.StringType),
		cel.Variable(VarContext, cel.MapType(cel.StringType, cel.DynType)),
	)
}

// WithMaxExpressionLength sets the maximum allowed length of an expression.
func (e *Engine) WithMaxExpressionLength(maxLen int) *Engine {
	e.maxExpressionLength = maxLen
	return e
}

// WithCostLimit sets the runtime cost limit for evaluating an expression.
func (e *Engine) WithCostLimit(limit uint64) *Engine {
	e.costLimit = limit
	return e
}

var defaultEngine = NewEngine()

// Compile compiles expr with the default engine.
func Compile(expr string) (*Expression, error) {
	return defaultEngine.Compile(expr)
}

// Compile parses and type-checks expr and prepares it for evaluation.
//
// It returns a *ParseError for syntax errors and a *CheckError for type
// errors. Both match ErrExpressionCheck, as does an expression that is too
// long or cannot produce a bool.
func (e *Engine) Compile(expr string) (*Expression, error) {
	ast, env, err := e.check(expr)
	if err != nil {
		return nil, err
	}

	program, err := env.Program(ast, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create program for %q: %w", expr, err)
	}

	return &Expression{source: expr, program: program}, nil
}

// Check reports whether expr would compile, without building a program.
func (e *Engine) Check(expr string) error {
	_, _, err := e.check(expr)
	return err
}

func (e *Engine) check(expr string) (*cel.Ast, *cel.Env, error) {
	if len(expr) > e.maxExpressionLength {
		return nil, nil, fmt.Errorf("%w: expression length %d exceeds maximum of %d",
			ErrExpressionCheck, len(expr), e.maxExpressionLength)
	}

	env, err := e.env()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create filter environment: %w", err)
	}

	parsed, issues := env.Parse(expr)
	if issues.Err() != nil {
		return nil, nil, newParseError(expr, issues)
	}

	checked, issues := env.Check(parsed)
	if issues.Err() != nil {
		return nil, nil, newCheckError(expr, issues)
	}

	out := checked.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, nil, fmt.Errorf("%w: expression %q returns %s, not bool",
			ErrExpressionCheck, expr, out)
	}

	return checked, env, nil
}

// Expression is a compiled filter. It is safe for concurrent use.
type Expression struct {
	source  string
	program cel.Program
}

// Source returns the expression as it was written.
func (x *Expression) Source() string {
	return x.source
}

// Allow evaluates the expression for a log entry. The context fields are
// exposed as the map variable "context"; values that are neither scalars
// nor collections are converted to their display text first.
func (x *Expression) Allow(lvl level.Level, msg string, ctx *fields.Fields) (bool, error) {
	priority, _ := level.PriorityOf(lvl)

	vars := map[string]any{
		VarLevel:    lvl.String(),
		VarPriority: priority,
		VarMessage:  msg,
		VarContext:  contextValues(ctx),
	}

	out, _, err := x.program.Eval(vars)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrEvaluation, err)
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: expected bool, got %T", ErrInvalidResult, out.Value())
	}
	return allowed, nil
}

func contextValues(ctx *fields.Fields) map[string]any {
	values := make(map[string]any, ctx.Len())
	for k, v := range ctx.All() {
		values[k] = celValue(v)
	}
	return values
}

func celValue(v any) any {
	if v == nil {
		return nil
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil
	}

	switch val := v.(type) {
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Map, reflect.Slice, reflect.Array:
		return v
	default:
		return display.Render(v)
	}
}
