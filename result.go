// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"errors"
	"fmt"
)

// A Result is the tagged success/failure outcome of a resfetch call.
//
// Exactly one of Data and Err is meaningful, and OK is the discriminant:
// when OK is true, Data holds the parsed and validated response value;
// when OK is false, Err holds either a *ValidationError or a
// *ResponseError. Results are immutable once constructed.
type Result[T any] struct {
	OK   bool
	Data T
	Err  error
}

// Handlers supplies one callback per result kind for Match. Every
// failure is exactly one of the two error kinds, so the three callbacks
// are exhaustive.
type Handlers[T, R any] struct {
	OK              func(data T) R
	ValidationError func(err *ValidationError) R
	ResponseError   func(err *ResponseError) R
}

// Match dispatches a Result to the matching handler and returns the
// handler's value. It is a pure function of its inputs: matching the
// same result twice with equivalent handlers yields equal outputs.
func Match[T, R any](res Result[T], h Handlers[T, R]) R {
	if res.OK {
		return h.OK(res.Data)
	}
	var verr *ValidationError
	if errors.As(res.Err, &verr) {
		return h.ValidationError(verr)
	}
	var rerr *ResponseError
	if errors.As(res.Err, &rerr) {
		return h.ResponseError(rerr)
	}
	// A failure built outside the engine. Classify it the same way the
	// result boundary would.
	rerr, _ = classify(res.Err).(*ResponseError)
	return h.ResponseError(rerr)
}

func success[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

func failure[T any](err error) Result[T] {
	return Result[T]{Err: classify(err)}
}

// classify normalizes an arbitrary error into one of the two public
// error kinds. Errors that already carry one of the two shapes pass
// through verbatim.
func classify(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	var rerr *ResponseError
	if errors.As(err, &rerr) {
		return rerr
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ResponseError{Message: msg, OriginalErr: err}
}

// recovered converts a recovered panic value into an error suitable for
// classify. Values that behave like errors keep their message; anything
// else is wrapped with an empty message, preserving the value.
func recovered(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return &ResponseError{OriginalErr: fmt.Errorf("%v", v)}
}
