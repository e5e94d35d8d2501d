// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package retry defines the retry policy consulted by the resfetch engine
after every failed request attempt.

A Policy has three independent knobs, all evaluated lazily per attempt:
When (should this outcome be retried?), Attempts (how many retries are
permitted?), and Delay (how long to wait before the next attempt?).

	p := &retry.Policy{
		Attempts: retry.Count(3),
		Delay:    retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()),
		When:     retry.StatusCode(429, 503).Or(retry.TransientErr),
	}

Deciders compose with And and Or. Waiters include a fixed delay, a
jittered exponential backoff, and an adapter for the cenkalti/backoff
strategies. Attempters may be a fixed count or a function of the
execution, so the cap can react to, for example, a Retry-After header.

Policies merge field by field: a per-call policy overrides only the
fields it sets, keeping the base policy's other fields. See Merge.
*/
package retry
