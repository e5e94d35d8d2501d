// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/resfetch/resfetch-go/schema"
)

// A ValidationError reports that a value failed schema validation. It is
// one of the two error kinds a resfetch call can surface; the other is
// ResponseError.
//
// Validation failures are always terminal: they are never retried,
// whether they occur while validating the request (body, query, path
// parameters) or the parsed response.
type ValidationError struct {
	// Issues holds the validator's failure reports, in the order the
	// validator produced them. Never empty.
	Issues []schema.Issue

	// Data is the original value that failed validation, exactly as it
	// was passed to the validator, not any partially transformed form.
	Data any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("resfetch: validation failed: %s", e.Issues[0])
	}
	return fmt.Sprintf("resfetch: validation failed: %s (and %d more issues)", e.Issues[0], len(e.Issues)-1)
}

// A ResponseError reports any call failure other than schema validation:
// an HTTP-level rejection, a transport or network failure, a parse
// failure, a failing event handler, or an unknown value recovered at the
// result boundary.
type ResponseError struct {
	// Message describes the failure. It may be empty when the failure
	// originated from a recovered non-error value.
	Message string

	// Status is the HTTP status code of the rejected response. It is
	// greater than zero if and only if an HTTP exchange actually
	// completed; zero signals a transport-level failure where no
	// exchange took place.
	Status int

	// Request is the HTTP request of the attempt that produced the
	// error, when one was built.
	Request *http.Request

	// Response is the rejected HTTP response, when one was received.
	Response *http.Response

	// Data is the parsed response body of a rejected response, when the
	// body could be parsed.
	Data any

	// OriginalErr is the underlying error, when the failure wraps one.
	OriginalErr error
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	msg := e.Message
	if msg == "" && e.OriginalErr != nil {
		msg = e.OriginalErr.Error()
	}
	if e.Status > 0 {
		return fmt.Sprintf("resfetch: request failed with status %d: %s", e.Status, msg)
	}
	return fmt.Sprintf("resfetch: request failed: %s", msg)
}

// Unwrap returns the underlying error, if any.
func (e *ResponseError) Unwrap() error {
	return e.OriginalErr
}

// Timeout reports whether the underlying error was a timeout.
func (e *ResponseError) Timeout() bool {
	if e.OriginalErr == nil {
		return false
	}
	var t interface{ Timeout() bool }
	return errors.As(e.OriginalErr, &t) && t.Timeout()
}
