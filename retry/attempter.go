// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"github.com/resfetch/resfetch-go/request"
)

// An Attempter resolves the maximum number of retries permitted for an
// execution. It is evaluated lazily, after each failed attempt, so the
// cap may vary over the lifetime of an execution.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Attempter interface {
	Attempts(e *request.Execution) int
}

// The AttempterFunc type is an adapter to allow the use of ordinary
// functions as attempters.
type AttempterFunc func(e *request.Execution) int

// Attempts calls f(e).
func (f AttempterFunc) Attempts(e *request.Execution) int {
	return f(e)
}

// Count constructs an Attempter permitting a fixed number of retries.
// Count(0) permits no retries; Count(3) permits up to four total
// transport calls.
func Count(n int) Attempter {
	return count(n)
}

type count int

func (c count) Attempts(_ *request.Execution) int {
	return int(c)
}
