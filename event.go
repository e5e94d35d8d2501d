// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

// An Event identifies a lifecycle point within a call's execution when
// installing or running a Handler. Install event handlers in a Client
// (global) or in per-call Options (local) to observe or extend the
// engine.
type Event int

const (
	// OnRequest fires before each individual request attempt, after the
	// attempt's HTTP request has been built and bound to its
	// cancellation signal. Handlers may adjust the request; reference
	// fields (URL, Header) should be cloned before modification.
	OnRequest Event = iota
	// OnResponse fires once per call, after a response has passed the
	// reject predicate but before the body is parsed.
	OnResponse
	// OnSuccess fires once per call, after the response body has been
	// parsed and validated. The execution's Data field holds the final
	// value.
	OnSuccess
	// OnError fires once per call, with the terminal error set on the
	// execution's Err field, before the error is surfaced.
	OnError
	// OnRetry fires after the retry delay has elapsed, immediately
	// before the next attempt is prepared. The execution still carries
	// the failed attempt's response or error.
	OnRetry
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events typed as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"OnRequest",
	"OnResponse",
	"OnSuccess",
	"OnError",
	"OnRetry",
}

// Events returns all events which can occur during a call's execution.
func Events() []Event {
	return []Event{
		OnRequest,
		OnResponse,
		OnSuccess,
		OnError,
		OnRetry,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
