// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package resfetch provides a request-execution pipeline over an
injectable HTTP transport: configuration layering, schema validation,
retries with per-attempt timeouts, lifecycle handlers, and a tagged
success/failure result instead of raised errors at the public surface.

Create a Client from base options, then make calls through the generic
Fetch function:

	client := resfetch.New(resfetch.Options{
		BaseURL: "https://api.example.com",
		Timeout: 5 * time.Second,
	})
	res := resfetch.Fetch[User](ctx, client, "/user/:id", &resfetch.Options{
		Params: map[string]any{"id": 7},
	})
	if res.OK {
		fmt.Println(res.Data.Email)
	}

Fetch never returns an error and never panics. Every failure is one of
exactly two kinds, which Match dispatches exhaustively:

	msg := resfetch.Match(res, resfetch.Handlers[User, string]{
		OK:              func(u User) string { return "hello " + u.Email },
		ValidationError: func(e *resfetch.ValidationError) string { return "bad data" },
		ResponseError:   func(e *resfetch.ResponseError) string { return e.Message },
	})

For control over retries, attach a retry policy; its fields merge
per-call over the base policy:

	client.Options.Retry = &retry.Policy{
		Attempts: retry.Count(3),
		Delay:    retry.NewExpWaiter(100*time.Millisecond, 2*time.Second, time.Now()),
		When:     retry.StatusCode(429, 503).Or(retry.TransientErr),
	}

To validate requests and responses, register validators per route in
the client's route table, or supply them per call; route table entries
always win:

	client.Options.Routes = schema.Routes{
		"/user/:id": {Response: userSchema, Method: "GET"},
	}

To hook into the execution lifecycle, install handlers in the client's
(global) or a call's (local) handler group:

	hs := &resfetch.HandlerGroup{}
	hs.PushBack(resfetch.OnRetry, resfetch.HandlerFunc(
		func(_ resfetch.Event, e *request.Execution) error {
			log.Printf("retrying %s (attempt %d)", e.URL, e.Attempt)
			return nil
		}))
	client.Options.Handlers = hs

The transport is any implementation of HTTPDoer, http.DefaultClient by
default, so the engine is fully testable without a network.
*/
package resfetch
