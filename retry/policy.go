// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/resfetch/resfetch-go/request"
)

// A Policy controls if and how the resfetch engine retries failed
// request attempts.
//
// Every field is optional. When set to nil, When defaults to
// DefaultDecider, Delay defaults to DefaultWaiter, and Attempts defaults
// to Count(0), meaning no retries.
//
// All three fields are evaluated lazily, once per attempt, so function
// forms may consult mutable external state (for example a dynamic
// configuration source).
//
// Policies must be safe for concurrent use by multiple goroutines: the
// same Policy value may serve many simultaneous calls.
type Policy struct {
	// Attempts resolves the maximum number of retries permitted for an
	// execution. An execution with Attempts n makes at most n+1 total
	// transport calls.
	Attempts Attempter

	// Delay resolves the wait duration before the next retry.
	Delay Waiter

	// When decides whether the most recent attempt's outcome warrants a
	// retry. It is consulted before Attempts and Delay.
	When Decider
}

// Merge layers override on top of base, field by field. A nil override
// field keeps the base field; a non-nil override field wins. Either
// argument may be nil. The result is a new Policy; neither input is
// modified.
func Merge(base, override *Policy) *Policy {
	if base == nil && override == nil {
		return nil
	}
	merged := &Policy{}
	if base != nil {
		*merged = *base
	}
	if override != nil {
		if override.Attempts != nil {
			merged.Attempts = override.Attempts
		}
		if override.Delay != nil {
			merged.Delay = override.Delay
		}
		if override.When != nil {
			merged.When = override.When
		}
	}
	return merged
}

// MaxAttempts resolves the retry cap for the execution, applying the
// Count(0) default when Attempts is nil.
func (p *Policy) MaxAttempts(e *request.Execution) int {
	if p.Attempts == nil {
		return 0
	}
	return p.Attempts.Attempts(e)
}

// Decide consults the When decider, applying the DefaultDecider default
// when When is nil.
func (p *Policy) Decide(e *request.Execution) bool {
	if p.When == nil {
		return DefaultDecider.Decide(e)
	}
	return p.When.Decide(e)
}

// Wait consults the Delay waiter, applying the DefaultWaiter default
// when Delay is nil.
func (p *Policy) Wait(e *request.Execution) time.Duration {
	if p.Delay == nil {
		return DefaultWaiter.Wait(e)
	}
	return p.Delay.Wait(e)
}
