// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/resfetch/resfetch-go/request"
)

// A Waiter resolves how long to wait before retrying a failed attempt.
// It is evaluated lazily, once per retry, and sees the full execution
// state including the failed attempt's response or error.
//
// Implementations must be safe for concurrent use by multiple
// goroutines. The engine never consults the Waiter unless the policy's
// Decider already approved a retry.
type Waiter interface {
	Wait(e *request.Execution) time.Duration
}

// The WaiterFunc type is an adapter to allow the use of ordinary
// functions as waiters.
type WaiterFunc func(e *request.Execution) time.Duration

// Wait calls f(e).
func (f WaiterFunc) Wait(e *request.Execution) time.Duration {
	return f(e)
}

// DefaultWaiter is the waiter used when a Policy leaves Delay nil. It
// uses a jittered exponential backoff with a base wait of 50
// milliseconds and a maximum wait of 1 second.
var DefaultWaiter = NewExpWaiter(50*time.Millisecond, 1*time.Second, time.Now())

// Fixed constructs a Waiter that always returns d.
func Fixed(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *request.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing exponential backoff with
// optional jitter, following the "Full Jitter" approach described in
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// The ceiling for attempt n is min(base * 2**n, max). Base must be
// positive and max must be at least base.
//
// Parameter jitter picks a random wait between 0 and the ceiling. Pass
// nil for no jitter (the waiter returns the ceiling directly), or a
// seed value (time.Time, int, or int64), or a rand.Source, or a
// *rand.Rand to control the random number generator.
func NewExpWaiter(base, max time.Duration, jitter any) Waiter {
	if base < 1 {
		panic("resfetch/retry: base must be positive")
	}
	if max < base {
		panic("resfetch/retry: max must be at least base")
	}
	return &jitterExpWaiter{
		base: base,
		max:  max,
		rand: jitterToRand(jitter),
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(e *request.Execution) time.Duration {
	exp := int64(1) << e.Attempt
	if exp < 1 {
		exp = 1<<63 - 1
	}

	ceil := int64(w.base) * exp
	if ceil < int64(w.base) || int64(w.max) < ceil {
		ceil = int64(w.max)
	}

	duration := ceil
	if ceil > 0 && w.rand != nil {
		w.lock.Lock()
		duration = w.rand.Int63n(ceil)
		w.lock.Unlock()
	}

	return time.Duration(duration)
}

func jitterToRand(jitter any) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("resfetch/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("resfetch/retry: invalid jitter type")
	}
	return rand.New(s)
}

// NewBackOffWaiter adapts a backoff.BackOff factory into a Waiter.
//
// Because a backoff.BackOff carries state across its NextBackOff calls
// while a Waiter must stay stateless across executions, the factory is
// invoked fresh on every Wait and replayed up to the current attempt
// number. Use it to plug any of the cenkalti/backoff strategies into a
// retry policy:
//
//	p := &retry.Policy{
//		Attempts: retry.Count(4),
//		Delay: retry.NewBackOffWaiter(func() backoff.BackOff {
//			return backoff.NewExponentialBackOff()
//		}),
//	}
func NewBackOffWaiter(factory func() backoff.BackOff) Waiter {
	if factory == nil {
		panic("resfetch/retry: nil backoff factory")
	}
	return backOffWaiter{factory: factory}
}

type backOffWaiter struct {
	factory func() backoff.BackOff
}

func (w backOffWaiter) Wait(e *request.Execution) time.Duration {
	b := w.factory()
	b.Reset()
	var d time.Duration
	for i := 0; i <= e.Attempt; i++ {
		d = b.NextBackOff()
		if d == backoff.Stop {
			return 0
		}
	}
	return d
}
