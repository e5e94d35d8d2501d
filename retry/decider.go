// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"github.com/resfetch/resfetch-go/request"
)

// A Decider decides whether the most recent attempt's outcome warrants
// a retry. It sees the full execution state: the attempt's request, and
// exactly one of its response or error.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Decider interface {
	Decide(e *request.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as deciders. Simple deciders compose into decision trees
// via DeciderFunc.And and DeciderFunc.Or.
type DeciderFunc func(e *request.Execution) bool

// Decide calls f(e).
func (f DeciderFunc) Decide(e *request.Execution) bool {
	return f(e)
}

// And composes two deciders into one that reports true only when both
// do. Short-circuit logic is used: g is not evaluated if f reports
// false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two deciders into one that reports true when either does.
// Short-circuit logic is used: g is not evaluated if f reports true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *request.Execution) bool {
		return f(e) || g(e)
	}
}

// DefaultDecider is the decider used when a Policy leaves When nil. It
// retries transient transport errors (timeouts, connection resets and
// refusals) and the retryable HTTP status codes 408, 429, 502, 503 and
// 504.
var DefaultDecider = StatusCode(408, 429, 502, 503, 504).Or(TransientErr)

// TransientErr is a decider that indicates a retry when the current
// attempt ended in a transient transport error according to Transient.
//
// TransientErr only looks at the error, so it always reports false when
// an HTTP response was received. Compose it with StatusCode for
// response-aware behavior.
var TransientErr DeciderFunc = func(e *request.Execution) bool {
	return Transient(e.Err)
}

// StatusCode constructs a decider that indicates a retry when the most
// recent attempt received an HTTP response whose status code is one of
// ss.
func StatusCode(ss ...int) DeciderFunc {
	ss2 := make([]int, len(ss))
	copy(ss2, ss)
	return func(e *request.Execution) bool {
		for _, s := range ss2 {
			if e.StatusCode() == s {
				return true
			}
		}
		return false
	}
}
