// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resfetch/resfetch-go/retry"
)

func TestResolve(t *testing.T) {
	t.Run("nil call keeps base", func(t *testing.T) {
		base := Options{BaseURL: "https://a.com", Method: "POST", Timeout: time.Second}
		eff := resolve(base, nil)
		assert.Equal(t, "https://a.com", eff.BaseURL)
		assert.Equal(t, "POST", eff.Method)
		assert.Equal(t, time.Second, eff.Timeout)
	})

	t.Run("later wins per scalar field", func(t *testing.T) {
		base := Options{BaseURL: "https://a.com", Method: "GET", Timeout: time.Second}
		eff := resolve(base, &Options{BaseURL: "https://b.org", Timeout: 2 * time.Second})
		assert.Equal(t, "https://b.org", eff.BaseURL)
		assert.Equal(t, "GET", eff.Method)
		assert.Equal(t, 2*time.Second, eff.Timeout)
	})

	t.Run("retry merges nested, not wholesale", func(t *testing.T) {
		base := Options{Retry: &retry.Policy{
			Attempts: retry.Count(5),
			Delay:    retry.Fixed(time.Second),
		}}
		eff := resolve(base, &Options{Retry: &retry.Policy{Attempts: retry.Count(1)}})
		require.NotNil(t, eff.Retry)
		assert.Equal(t, 1, eff.Retry.MaxAttempts(nil))
		// The base delay survives the per-call override.
		assert.Equal(t, time.Second, eff.Retry.Wait(nil))
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		base := Options{Headers: map[string]string{"a": "1"}, Query: map[string]any{"q": "x"}}
		call := &Options{Headers: map[string]string{"b": "2"}, Query: map[string]any{"r": "y"}}
		_ = resolve(base, call)
		assert.Equal(t, map[string]string{"a": "1"}, base.Headers)
		assert.Equal(t, map[string]string{"b": "2"}, call.Headers)
		assert.Equal(t, map[string]any{"q": "x"}, base.Query)
	})
}

func TestMergeHeaders(t *testing.T) {
	t.Run("union with later wins", func(t *testing.T) {
		out := mergeHeaders(
			map[string]string{"X-A": "1", "X-B": "2"},
			map[string]string{"X-B": "3", "X-C": "4"},
		)
		assert.Equal(t, map[string]string{"X-A": "1", "X-B": "3", "X-C": "4"}, out)
	})
	t.Run("null deletes", func(t *testing.T) {
		out := mergeHeaders(
			map[string]string{"X-Keep": "v", "X-Remove": "x"},
			map[string]string{"X-Remove": "null"},
		)
		assert.Equal(t, map[string]string{"X-Keep": "v"}, out)
	})
	t.Run("undefined deletes", func(t *testing.T) {
		out := mergeHeaders(
			map[string]string{"X-Keep": "v", "X-Remove": "x"},
			map[string]string{"X-Remove": "undefined"},
		)
		assert.Equal(t, map[string]string{"X-Keep": "v"}, out)
	})
	t.Run("sentinel never survives a single layer", func(t *testing.T) {
		out := mergeHeaders(map[string]string{"X-H": "null"}, nil)
		assert.NotContains(t, out, "X-H")
	})
	t.Run("keys canonicalize across case variants", func(t *testing.T) {
		out := mergeHeaders(
			map[string]string{"content-type": "text/plain"},
			map[string]string{"Content-Type": "application/json"},
		)
		assert.Equal(t, map[string]string{"Content-Type": "application/json"}, out)
	})
	t.Run("delete sentinel reaches other case variants", func(t *testing.T) {
		out := mergeHeaders(
			map[string]string{"Content-Type": "application/json", "X-Keep": "v"},
			map[string]string{"content-type": "null"},
		)
		assert.Equal(t, map[string]string{"X-Keep": "v"}, out)
	})
}

func TestMergeQuery(t *testing.T) {
	t.Run("layering", func(t *testing.T) {
		out := mergeQuery(
			map[string]any{"keep": "v", "replace": "old"},
			map[string]any{"replace": "new", "add": 1},
		)
		assert.Equal(t, map[string]any{"keep": "v", "replace": "new", "add": 1}, out)
	})
	t.Run("nil deletes base default", func(t *testing.T) {
		out := mergeQuery(
			map[string]any{"keep": "v", "remove": "x"},
			map[string]any{"remove": nil},
		)
		assert.Equal(t, map[string]any{"keep": "v"}, out)
	})
	t.Run("empty inputs yield nil", func(t *testing.T) {
		assert.Nil(t, mergeQuery(nil, nil))
	})
}

func TestResolveHandlersNotMerged(t *testing.T) {
	baseGroup := &HandlerGroup{}
	callGroup := &HandlerGroup{}
	c := New(Options{Handlers: baseGroup})
	groups := c.handlerGroups(&Options{Handlers: callGroup})
	assert.Same(t, baseGroup, groups[0])
	assert.Same(t, callGroup, groups[1])

	groups = c.handlerGroups(nil)
	assert.Same(t, baseGroup, groups[0])
	assert.Same(t, &emptyHandlers, groups[1])
}

func TestDefaultReject(t *testing.T) {
	assert.False(t, defaultReject(&http.Response{StatusCode: 200}))
	assert.False(t, defaultReject(&http.Response{StatusCode: 299}))
	assert.True(t, defaultReject(&http.Response{StatusCode: 199}))
	assert.True(t, defaultReject(&http.Response{StatusCode: 404}))
	assert.True(t, defaultReject(&http.Response{StatusCode: 500}))
	assert.True(t, defaultReject(nil))
}
