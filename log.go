// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"time"

	"github.com/resfetch/resfetch-go/request"
)

// Debug logging for the engine. All lines carry the execution ID so a
// call's attempts, retries and outcome can be correlated.

func (c *Client) logAttempt(e *request.Execution) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug().
		Str("id", e.ID).
		Int("attempt", e.Attempt).
		Str("method", e.Request.Method).
		Str("url", e.URL).
		Msg("attempt start")
}

func (c *Client) logRetry(e *request.Execution, wait time.Duration) {
	if c.Logger == nil {
		return
	}
	evt := c.Logger.Debug().
		Str("id", e.ID).
		Int("attempt", e.Attempt).
		Dur("wait", wait)
	if e.Err != nil {
		evt = evt.AnErr("cause", e.Err)
	} else {
		evt = evt.Int("status", e.StatusCode())
	}
	evt.Msg("retrying")
}

func (c *Client) logOutcome(e *request.Execution) {
	if c.Logger == nil {
		return
	}
	evt := c.Logger.Debug().
		Str("id", e.ID).
		Int("attempts", e.Attempt+1).
		Dur("duration", e.Duration())
	if e.Err != nil {
		evt.Err(e.Err).Msg("call failed")
		return
	}
	evt.Int("status", e.StatusCode()).Msg("call succeeded")
}

func (c *Client) logHandlerError(e *request.Execution, err error) {
	if c.Logger == nil {
		return
	}
	c.Logger.Debug().
		Str("id", e.ID).
		Err(err).
		Msg("error handler failed; terminal error preserved")
}
