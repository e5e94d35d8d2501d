// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package request holds the per-call execution record shared between the
// resfetch engine, retry policies, and event handlers.
package request

import (
	"context"
	"net/http"
	"time"
)

// An Execution represents the state of a single resfetch call as it moves
// through the attempt/retry loop.
//
// An Execution is created when a call starts, updated as attempts are
// made, and returned (inside the result) when the call ends. It is never
// shared between concurrent calls. Retry policies and event handlers may
// attach their own data via SetValue/Value, but should treat the exported
// fields as read-only; they reflect engine state.
type Execution struct {
	// ID uniquely identifies this execution, for correlation in logs
	// and handler chains.
	ID string

	// Route is the route string exactly as passed to the call, before
	// path parameter substitution, for example "/user/:id".
	Route string

	// URL is the fully resolved request URL for this execution.
	URL string

	// Attempt is the zero-based number of the current request attempt.
	// It is zero on the initial attempt, one on the first retry, and so
	// on. When the execution ends it holds the number of the final
	// attempt, so a call that ends after two retries reads 2.
	Attempt int

	// Request is the HTTP request sent (or about to be sent) in the
	// current attempt. It is rebuilt for every attempt so that each
	// attempt gets a fresh cancellation signal.
	Request *http.Request

	// Response is the HTTP response received in the most recent attempt,
	// or nil if the attempt ended in an error.
	Response *http.Response

	// Body is the fully buffered response body from the most recent
	// attempt, or nil if the attempt ended before a body was read.
	Body []byte

	// Data is the parsed (and, when a response schema applies,
	// validated) response value. It is only set on the success path.
	Data any

	// Err is the error from the most recent attempt, or nil. Exactly one
	// of Response and Err is set once an attempt concludes. While the
	// execution is in flight Err may fluctuate between nil and non-nil;
	// once the execution ends it is the call's terminal error.
	Err error

	// Start is the time the execution started.
	Start time.Time

	// End is the time the execution ended, or the zero time while it is
	// still in flight.
	End time.Time

	// data carries user values attached via SetValue.
	data context.Context
}

// StatusCode returns the status code of the HTTP response from the most
// recent attempt, or 0 if there is no response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the response headers from the most recent attempt, or
// the nil header if there is no response. The nil header is safe for
// read-only use.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns the elapsed time of the execution: zero before it
// starts, time since start while in flight, and End minus Start once it
// has ended.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return 0
	}
	if !e.Ended() {
		return time.Since(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended. Once Ended returns
// true there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// SetValue attaches a user value to the execution. The key must follow
// the same rules as the key parameter of context.WithValue: comparable,
// non-nil, and preferably of an unexported type to avoid collisions
// between independent handlers.
func (e *Execution) SetValue(key, value any) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}
	e.data = context.WithValue(ctx, key, value)
}

// Value returns the user value associated with key, or nil.
func (e *Execution) Value(key any) any {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
