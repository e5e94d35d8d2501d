// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"github.com/resfetch/resfetch-go/request"
)

// A Handler observes or extends one lifecycle point of a call's
// execution.
//
// Handlers run sequentially: each handler completes before the next one
// starts, and global (client-level) chains run before per-call chains.
// A handler returning a non-nil error stops its chain; the error is
// classified and becomes the attempt's (OnRequest) or the call's
// terminal error. Handler errors are never swallowed.
type Handler interface {
	Handle(evt Event, e *request.Execution) error
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers.
type HandlerFunc func(evt Event, e *request.Execution) error

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) error {
	return f(evt, e)
}

// A HandlerGroup is a set of event handler chains, one chain per event.
// The zero value is an empty group. A HandlerGroup must not be modified
// once a client or call using it is in flight.
type HandlerGroup struct {
	handlers [][]Handler
}

// PushBack appends a handler to the back of the chain for evt.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("resfetch: nil handler")
	}

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	g.handlers[evt] = append(g.handlers[evt], h)
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) error {
	i := int(evt)
	if i >= len(g.handlers) {
		return nil
	}
	for _, h := range g.handlers[i] {
		if err := h.Handle(evt, e); err != nil {
			return err
		}
	}
	return nil
}
