// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/resfetch/resfetch-go/request"
)

// An HTTPDoer implements a Do method in the same manner as the Go
// standard library http.Client from the net/http package. It is the
// injectable transport: everything below the resfetch engine (connection
// management, redirects, TLS) belongs to the HTTPDoer.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response, following
	// the contract documented on the standard library http.Client.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Client executes resfetch calls: it merges its base Options with
// per-call Options, builds and validates the request, runs the
// attempt/retry loop against the injected transport, validates the
// response, and surfaces a classified outcome. Its zero value is a
// valid configuration.
//
// The zero value client uses http.DefaultClient as the HTTPDoer, no
// base options, no metrics, and no logging.
//
// A Client is safe for concurrent use by multiple goroutines: calls
// share only the immutable base configuration, the route table, and the
// global handler chains. Client instances should be reused, since the
// HTTPDoer typically caches TCP connections.
type Client struct {
	// Options is the base configuration layered under every call's
	// options. Its Routes table and Handlers chains are global.
	Options Options

	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses. If nil, http.DefaultClient is used.
	HTTPDoer HTTPDoer

	// Metrics, when non-nil, records attempt, retry, failure and
	// latency metrics for every call made through the client.
	Metrics *Metrics

	// Logger, when non-nil, emits debug-level lines for attempts,
	// retries and terminal outcomes, keyed by execution ID.
	Logger *zerolog.Logger
}

// New constructs a Client from base options. Fields other than Options
// (transport, metrics, logger) may be set directly on the returned
// client before first use.
func New(opts Options) *Client {
	return &Client{Options: opts}
}

// Fetch executes a call and wraps every outcome into a tagged Result.
// It never returns an error and never panics: terminal errors, failing
// handlers, and panicking callbacks all surface as a failure Result
// carrying a *ValidationError or a *ResponseError.
//
// The type parameter T is the desired response value type. When the
// parsed (and validated) response value is already assignable to T it
// is used directly; otherwise the raw response body is decoded into T
// as JSON. Use any to receive the untyped parsed value.
//
// The caller context cancels the in-flight attempt and any pending
// retry delay.
func Fetch[T any](ctx context.Context, c *Client, route string, opts *Options) (res Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = failure[T](recovered(r))
		}
	}()
	e, err := c.Execute(ctx, route, opts)
	if err != nil {
		return failure[T](err)
	}
	data, err := decode[T](e)
	if err != nil {
		return failure[T](err)
	}
	return success(data)
}

// Do executes a call like Fetch but returns conventional (value, error)
// pairs for callers that prefer error-style flow. The returned error,
// when non-nil, is always a *ValidationError or a *ResponseError.
func Do[T any](ctx context.Context, c *Client, route string, opts *Options) (T, error) {
	res := Fetch[T](ctx, c, route, opts)
	return res.Data, res.Err
}

// Get issues a GET to the given route using only the client's base
// options and returns the raw execution. For typed, non-panicking
// results use Fetch.
func (c *Client) Get(ctx context.Context, route string) (*request.Execution, error) {
	return c.Execute(ctx, route, &Options{Method: http.MethodGet})
}

// Post issues a POST with the given body to the given route and returns
// the raw execution. The body follows the same rules as Options.Body.
func (c *Client) Post(ctx context.Context, route string, body any) (*request.Execution, error) {
	return c.Execute(ctx, route, &Options{Method: http.MethodPost, Body: body})
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func (c *Client) handlerGroups(call *Options) [2]*HandlerGroup {
	groups := [2]*HandlerGroup{&emptyHandlers, &emptyHandlers}
	if c.Options.Handlers != nil {
		groups[0] = c.Options.Handlers
	}
	if call != nil && call.Handlers != nil {
		groups[1] = call.Handlers
	}
	return groups
}

// decode produces the typed value for a completed execution from the
// parsed (and validated) value: directly when assignable to T, via a
// JSON round trip otherwise. The raw body is only consulted when no
// parsed value exists at all, so schema transforms are never discarded.
func decode[T any](e *request.Execution) (T, error) {
	var out T
	if v, ok := e.Data.(T); ok {
		return v, nil
	}

	var raw []byte
	switch {
	case e.Data != nil:
		b, err := json.Marshal(e.Data)
		if err != nil {
			return out, decodeError(e, err)
		}
		raw = b
	case len(e.Body) > 0:
		raw = e.Body
	default:
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, decodeError(e, err)
	}
	return out, nil
}

func decodeError(e *request.Execution, err error) *ResponseError {
	return &ResponseError{
		Message:     "decoding response value: " + err.Error(),
		Status:      e.StatusCode(),
		Request:     e.Request,
		Response:    e.Response,
		OriginalErr: err,
	}
}
