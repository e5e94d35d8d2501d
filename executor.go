// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/resfetch/resfetch-go/request"
	"github.com/resfetch/resfetch-go/schema"
	"github.com/resfetch/resfetch-go/urlx"
)

// exec carries the per-call state threaded through the attempt/retry
// loop. It is created by Execute and never shared between calls.
type exec struct {
	client      *Client
	eff         Options
	sch         *schema.Route
	groups      [2]*HandlerGroup
	e           *request.Execution
	method      string
	body        []byte
	contentType string
}

// Execute runs the full request pipeline for one call and returns the
// completed execution: option merging, request validation, URL and body
// resolution, the attempt/retry loop, response classification, response
// parsing and validation, and lifecycle handlers.
//
// A non-nil returned error is the call's terminal error, classified as
// either a *ValidationError or a *ResponseError. The returned execution
// is never nil and, on error, carries the same error in its Err field.
// OnError handlers have already run by the time Execute returns an
// error.
//
// Most callers should prefer Fetch, which additionally converts the
// outcome into a tagged Result and recovers panicking callbacks.
func (c *Client) Execute(ctx context.Context, route string, opts *Options) (*request.Execution, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	eff := resolve(c.Options, opts)

	// A route present in the global table wins absolutely: a per-call
	// schema for the same route is accepted but ignored.
	sch := eff.Schema
	entry, onRoute := c.Options.Routes.Lookup(route)
	if onRoute {
		sch = &entry
	}

	method := eff.Method
	if method == "" && onRoute {
		method = entry.Method
	}
	if method == "" {
		method = http.MethodGet
	}

	x := &exec{
		client: c,
		eff:    eff,
		sch:    sch,
		groups: c.handlerGroups(opts),
		e: &request.Execution{
			ID:    uuid.NewString(),
			Route: route,
			Start: time.Now(),
		},
		method: method,
	}
	return x.run(ctx)
}

func (x *exec) run(ctx context.Context) (*request.Execution, error) {
	e := x.e

	// Request-side validation happens once, before the loop; its
	// failures are terminal and never retried.
	params, query, err := x.validateRequest(ctx)
	if err != nil {
		return x.fail(err)
	}

	e.URL = urlx.Build(x.eff.BaseURL, e.Route, params, query, x.eff.SerializeQuery)

	x.body, x.contentType, err = serializeBody(&x.eff)
	if err != nil {
		return x.fail(err)
	}

RetryLoop:
	for {
		x.sendAndReceive(ctx)
		x.client.recordAttempt(x.method, e)

		pol := x.eff.Retry
		if pol == nil || !pol.Decide(e) {
			break
		}
		if e.Attempt >= pol.MaxAttempts(e) {
			break
		}

		// The caller's signal governs the transport call and the retry
		// delay only: an exchange already in hand stands, but no further
		// attempt starts once the caller has aborted.
		if ctxErr := ctx.Err(); ctxErr != nil {
			if e.Err == nil {
				e.Err = ctxErr
			}
			break
		}

		wait := pol.Wait(e)
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			// The sleep is tied to the caller's signal only; a
			// per-attempt timeout never outlives its attempt.
			timer.Stop()
			e.Err = ctx.Err()
			break RetryLoop
		}
		if err := x.runHandlers(OnRetry); err != nil {
			e.Err = err
			break
		}
		x.client.recordRetry(x.method)
		x.client.logRetry(e, wait)
		e.Response = nil
		e.Body = nil
		e.Err = nil
		e.Attempt++
	}

	if e.Err != nil {
		return x.fail(e.Err)
	}

	reject := x.eff.Reject
	if reject == nil {
		reject = defaultReject
	}
	if reject(e.Response) {
		parse := x.eff.ParseRejected
		if parse == nil {
			parse = defaultParseRejected
		}
		return x.fail(parse(e))
	}

	if err := x.runHandlers(OnResponse); err != nil {
		return x.fail(err)
	}

	parse := x.eff.ParseResponse
	if parse == nil {
		parse = defaultParseResponse
	}
	data, err := parse(e)
	if err != nil {
		return x.fail(err)
	}
	e.Data = data

	// Response validation is post hoc: its failure is terminal and
	// never re-enters the retry loop.
	if x.sch != nil && x.sch.Response != nil {
		v, err := applySchema(ctx, x.sch.Response, e.Data)
		if err != nil {
			return x.fail(err)
		}
		e.Data = v
	}

	if err := x.runHandlers(OnSuccess); err != nil {
		return x.fail(err)
	}

	e.End = time.Now()
	x.client.recordDuration(x.method, e)
	x.client.logOutcome(e)
	return e, nil
}

// validateRequest applies the body, query and params validators from the
// effective schema, returning the (possibly transformed) params and
// query maps. The validated body replaces the effective body.
func (x *exec) validateRequest(ctx context.Context) (params, query map[string]any, err error) {
	params = x.eff.Params
	query = x.eff.Query
	if x.sch == nil {
		return params, query, nil
	}

	if x.sch.Params != nil {
		v, err := applySchema(ctx, x.sch.Params, params)
		if err != nil {
			return nil, nil, err
		}
		if m, ok := v.(map[string]any); ok {
			params = m
		}
	}
	if x.sch.Query != nil {
		v, err := applySchema(ctx, x.sch.Query, query)
		if err != nil {
			return nil, nil, err
		}
		if m, ok := v.(map[string]any); ok {
			query = m
		}
	}
	if x.sch.Body != nil {
		v, err := applySchema(ctx, x.sch.Body, x.eff.Body)
		if err != nil {
			return nil, nil, err
		}
		x.eff.Body = v
	}
	return params, query, nil
}

// sendAndReceive makes a single request attempt: it builds the attempt's
// HTTP request bound to a fresh cancellation signal, runs OnRequest
// handlers, calls the transport, and buffers the response body. Exactly
// one of e.Response and e.Err is set when it returns.
func (x *exec) sendAndReceive(ctx context.Context) {
	e := x.e

	// Fresh timeout budget per attempt. The attempt context combines
	// the caller's signal with the per-attempt deadline: it fires when
	// either fires.
	attemptCtx := ctx
	cancel := context.CancelFunc(func() {})
	if x.eff.Timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, x.eff.Timeout)
	}
	defer cancel()

	var body io.Reader
	if len(x.body) > 0 {
		body = bytes.NewReader(x.body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, x.method, e.URL, body)
	if err != nil {
		e.Err = err
		return
	}
	for k, v := range x.eff.Headers {
		req.Header.Set(k, v)
	}
	if x.contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", x.contentType)
	}
	e.Request = req

	x.client.logAttempt(e)
	if err := x.runHandlers(OnRequest); err != nil {
		e.Err = err
		return
	}

	resp, err := x.client.doer().Do(e.Request)
	if err != nil {
		e.Err = err
		return
	}
	e.Response = resp

	b, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		e.Err = err
		e.Response = nil
		return
	}
	e.Body = b
}

// runHandlers runs the chain for evt across the global group, then the
// per-call group. The first handler error stops the run.
func (x *exec) runHandlers(evt Event) error {
	for _, g := range x.groups {
		if err := g.run(evt, x.e); err != nil {
			return err
		}
	}
	return nil
}

// fail finalizes the execution with a terminal error: the error is
// classified into one of the two public kinds, OnError handlers run,
// and metrics and logs record the failure. An error from an OnError
// handler never masks the terminal error.
func (x *exec) fail(err error) (*request.Execution, error) {
	e := x.e
	err = x.classifyTerminal(err)
	e.Err = err
	e.End = time.Now()
	if herr := x.runHandlers(OnError); herr != nil {
		x.client.logHandlerError(e, herr)
	}
	x.client.recordFailure(x.method, err)
	x.client.recordDuration(x.method, e)
	x.client.logOutcome(e)
	return e, err
}

// classifyTerminal normalizes a terminal error into a *ValidationError
// or a *ResponseError, attaching the execution's request and response
// context when it has to wrap.
func (x *exec) classifyTerminal(err error) error {
	switch err.(type) {
	case *ValidationError, *ResponseError:
		return err
	}
	return &ResponseError{
		Message:     err.Error(),
		Status:      x.e.StatusCode(),
		Request:     x.e.Request,
		Response:    x.e.Response,
		OriginalErr: err,
	}
}

func defaultReject(resp *http.Response) bool {
	return resp == nil || resp.StatusCode < 200 || resp.StatusCode > 299
}

// defaultParseRejected turns a rejected response into a *ResponseError
// carrying the status and, when the body parses, the parsed body.
func defaultParseRejected(e *request.Execution) error {
	rerr := &ResponseError{
		Message:  e.Response.Status,
		Status:   e.StatusCode(),
		Request:  e.Request,
		Response: e.Response,
	}
	if data, err := parseBody(e); err == nil {
		rerr.Data = data
	}
	return rerr
}

// defaultParseResponse parses JSON bodies into untyped values and passes
// other bodies through as strings. Empty bodies parse to nil.
func defaultParseResponse(e *request.Execution) (any, error) {
	return parseBody(e)
}
