// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"net/http"
	"time"

	"github.com/resfetch/resfetch-go/request"
	"github.com/resfetch/resfetch-go/retry"
	"github.com/resfetch/resfetch-go/schema"
	"github.com/resfetch/resfetch-go/urlx"
)

// Header values that delete a header key during merging instead of
// setting it. This guards against configurations assembled from sources
// that cannot express "unset" directly.
const (
	headerDeleteNull      = "null"
	headerDeleteUndefined = "undefined"
)

// Options configures a call. A Client carries a base Options value; each
// call may supply a per-call Options value layered on top of it. See
// the resolve merge rules on each field.
//
// An Options value is never mutated by the engine: merging produces a
// fresh effective configuration owned by the single call that built it.
type Options struct {
	// BaseURL is prepended to relative route paths. Per-call value wins
	// wholesale.
	BaseURL string

	// Method is the HTTP method. When empty, a route table entry's
	// method applies, then GET. Per-call value wins wholesale.
	Method string

	// Headers are merged key by key, per-call over base. A value of
	// exactly "null" or "undefined" deletes the key instead of setting
	// it.
	Headers map[string]string

	// Body is the raw request body value. Per-call value wins
	// wholesale. See the Client documentation for supported body types
	// and content-type inference.
	Body any

	// Query parameters are layered per-call over base. A nil value for
	// a key removes that key from the base defaults before
	// serialization.
	Query map[string]any

	// Params supplies path parameters for :name substitution. Per-call
	// value wins wholesale.
	Params map[string]any

	// Timeout bounds each individual request attempt. The budget is
	// re-armed for every attempt, so a multi-attempt call may take up
	// to attempts×Timeout plus retry delays. Zero means no per-attempt
	// timeout. Per-call value wins wholesale.
	Timeout time.Duration

	// Retry merges field by field (nested merge), never wholesale: a
	// per-call policy overrides only the fields it sets.
	Retry *retry.Policy

	// Reject classifies a completed HTTP exchange as a failure. Nil
	// means the default predicate: any status outside 2xx is rejected.
	// Per-call value wins wholesale.
	Reject func(resp *http.Response) bool

	// SerializeBody overrides the default body serialization (JSON).
	// It receives the raw body value after passthrough types (nil,
	// string, []byte, io.Reader, url.Values, multipart) have been
	// handled. Per-call value wins wholesale.
	SerializeBody func(body any) ([]byte, error)

	// ParseResponse overrides the default response body parsing. The
	// default parses JSON bodies into untyped values and passes other
	// bodies through as strings. Per-call value wins wholesale.
	ParseResponse func(e *request.Execution) (any, error)

	// ParseRejected builds the terminal error for a rejected response.
	// It runs strictly after Reject. Nil means the default, which
	// builds a *ResponseError carrying the response status and parsed
	// body. Per-call value wins wholesale.
	ParseRejected func(e *request.Execution) error

	// SerializeQuery overrides the default query serialization
	// (urlx.EncodeQuery). Per-call value wins wholesale.
	SerializeQuery urlx.Serializer

	// Schema attaches per-call validators. It is ignored when the route
	// is present in the client's Routes table: route entries take
	// absolute precedence.
	Schema *schema.Route

	// Routes is the global route schema table. Only meaningful on a
	// client's base options; a per-call value is ignored.
	Routes schema.Routes

	// Handlers holds this layer's event handler chains. Base and
	// per-call chains are not merged: the engine runs the base chain
	// first, then the per-call chain, for every event.
	Handlers *HandlerGroup
}

// resolve merges a per-call options layer over the base layer into the
// effective configuration for one call. Later wins per field, except
// Retry (nested field-by-field merge), Headers (union with
// delete-by-"null"/"undefined"), and Query (union with delete-by-nil).
// resolve is pure: neither input is modified.
func resolve(base Options, call *Options) Options {
	eff := base
	eff.Headers = mergeHeaders(base.Headers, nil)
	eff.Query = mergeQuery(base.Query, nil)
	if call == nil {
		return eff
	}

	if call.BaseURL != "" {
		eff.BaseURL = call.BaseURL
	}
	if call.Method != "" {
		eff.Method = call.Method
	}
	eff.Headers = mergeHeaders(base.Headers, call.Headers)
	if call.Body != nil {
		eff.Body = call.Body
	}
	eff.Query = mergeQuery(base.Query, call.Query)
	if call.Params != nil {
		eff.Params = call.Params
	}
	if call.Timeout != 0 {
		eff.Timeout = call.Timeout
	}
	eff.Retry = retry.Merge(base.Retry, call.Retry)
	if call.Reject != nil {
		eff.Reject = call.Reject
	}
	if call.SerializeBody != nil {
		eff.SerializeBody = call.SerializeBody
	}
	if call.ParseResponse != nil {
		eff.ParseResponse = call.ParseResponse
	}
	if call.ParseRejected != nil {
		eff.ParseRejected = call.ParseRejected
	}
	if call.SerializeQuery != nil {
		eff.SerializeQuery = call.SerializeQuery
	}
	if call.Schema != nil {
		eff.Schema = call.Schema
	}
	// Routes stays base-level; Handlers chains are run base then
	// per-call by the engine rather than merged here.
	return eff
}

func mergeHeaders(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	// Header names are case-insensitive, so keys canonicalize before
	// merging: a delete sentinel or override in one case variant must
	// reach values written in another, and two case variants of the
	// same name must not both survive.
	out := make(map[string]string, len(base)+len(override))
	for _, layer := range []map[string]string{base, override} {
		for k, v := range layer {
			k = http.CanonicalHeaderKey(k)
			if v == headerDeleteNull || v == headerDeleteUndefined {
				delete(out, k)
				continue
			}
			out[k] = v
		}
	}
	return out
}

func mergeQuery(base, override map[string]any) map[string]any {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		if v != nil {
			out[k] = v
		}
	}
	for k, v := range override {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}
