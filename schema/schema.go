// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package schema

import (
	"context"
	"fmt"
)

// An Issue is a single structured validation failure reported by a
// Validator. Issues are ordered: a Validator that finds several problems
// reports them in the order it encountered them.
type Issue struct {
	// Path locates the failing value within the input, for example
	// "user.email" or "items[2].id". Empty means the input as a whole.
	Path string
	// Code is a short machine-readable failure code, for example
	// "required" or "invalid_type". Validators choose their own codes.
	Code string
	// Message is a human-readable description of the failure.
	Message string
}

// String renders the issue in "path: message (code)" form.
func (i Issue) String() string {
	switch {
	case i.Path != "" && i.Code != "":
		return fmt.Sprintf("%s: %s (%s)", i.Path, i.Message, i.Code)
	case i.Path != "":
		return fmt.Sprintf("%s: %s", i.Path, i.Message)
	case i.Code != "":
		return fmt.Sprintf("%s (%s)", i.Message, i.Code)
	default:
		return i.Message
	}
}

// A Result is the outcome of running a Validator against an input value.
//
// A Result with no issues is a success and Value holds the (possibly
// transformed) output value. A Result with one or more issues is a
// failure and Value must be ignored.
type Result struct {
	Value  any
	Issues []Issue
}

// OK reports whether the validation succeeded.
func (r Result) OK() bool {
	return len(r.Issues) == 0
}

// Value constructs a successful Result carrying v.
func Value(v any) Result {
	return Result{Value: v}
}

// Fail constructs a failed Result carrying the given issues. At least
// one issue must be supplied, otherwise the result would read as a
// success.
func Fail(issues ...Issue) Result {
	if len(issues) == 0 {
		panic("resfetch/schema: Fail requires at least one issue")
	}
	return Result{Issues: issues}
}

// A Validator checks an input value against a schema and produces either
// a (possibly transformed) output value or a list of issues.
//
// The context parameter covers validators that need to suspend, for
// example schemas performing asynchronous lookups; synchronous validators
// may ignore it. Implementations must be safe for concurrent use by
// multiple goroutines.
type Validator interface {
	Validate(ctx context.Context, input any) Result
}

// The ValidatorFunc type is an adapter to allow the use of ordinary
// functions as validators.
type ValidatorFunc func(ctx context.Context, input any) Result

// Validate calls f(ctx, input).
func (f ValidatorFunc) Validate(ctx context.Context, input any) Result {
	return f(ctx, input)
}

// A Route bundles the validators attached to a single route, plus an
// optional default method for calls made against that route. Any of the
// validator fields may be nil, meaning that part of the call is not
// validated.
type Route struct {
	// Body validates the raw request body value before serialization.
	Body Validator
	// Query validates the merged query parameters (map[string]any).
	Query Validator
	// Params validates the path parameters (map[string]any).
	Params Validator
	// Response validates the parsed response body.
	Response Validator
	// Method, if non-empty, is the HTTP method used for calls against
	// this route when the caller does not specify one.
	Method string
}

// Routes maps literal route strings, exactly as written at the call
// site (for example "/user/:id"), to their Route entries.
//
// A Routes table is immutable after creation: build it once and share
// it freely. When a route is present in the table, its entry takes
// absolute precedence over any per-call schema supplied for that route.
type Routes map[string]Route

// Lookup returns the entry for the given route string.
func (r Routes) Lookup(route string) (Route, bool) {
	entry, ok := r[route]
	return entry, ok
}
