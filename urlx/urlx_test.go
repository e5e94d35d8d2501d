// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package urlx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	testCases := []struct {
		name     string
		base     string
		path     string
		params   map[string]any
		query    map[string]any
		expected string
	}{
		{
			name:     "param and query",
			base:     "https://a.com",
			path:     "/user/:id",
			params:   map[string]any{"id": "7"},
			query:    map[string]any{"q": "x"},
			expected: "https://a.com/user/7?q=x",
		},
		{
			name:     "unsubstituted token preserved",
			base:     "https://a.com",
			path:     "/u/:id",
			expected: "https://a.com/u/:id",
		},
		{
			name:     "nil param value leaves token",
			base:     "https://a.com",
			path:     "/u/:id",
			params:   map[string]any{"id": nil},
			expected: "https://a.com/u/:id",
		},
		{
			name:     "absolute path ignores base",
			base:     "https://a.com",
			path:     "http://b.org/x",
			expected: "http://b.org/x",
		},
		{
			name:     "exactly one joining slash",
			base:     "https://a.com/",
			path:     "/x",
			expected: "https://a.com/x",
		},
		{
			name:     "no slash inserted when base empty",
			base:     "",
			path:     "relative/x",
			expected: "relative/x",
		},
		{
			name:     "no slash inserted when path empty",
			base:     "https://a.com/",
			path:     "",
			expected: "https://a.com/",
		},
		{
			name:     "existing query string preserved",
			base:     "https://a.com",
			path:     "/x?a=1",
			query:    map[string]any{"b": "2"},
			expected: "https://a.com/x?a=1&b=2",
		},
		{
			name:     "numeric param coerces",
			base:     "https://a.com",
			path:     "/user/:id/posts/:page",
			params:   map[string]any{"id": 42, "page": 3},
			expected: "https://a.com/user/42/posts/3",
		},
		{
			name:     "multiple occurrences of a token",
			base:     "https://a.com",
			path:     "/:v/compare/:v",
			params:   map[string]any{"v": "1"},
			expected: "https://a.com/1/compare/1",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			u := Build(testCase.base, testCase.path, testCase.params, testCase.query, nil)
			assert.Equal(t, testCase.expected, u)
		})
	}
}

func TestBuildCustomSerializer(t *testing.T) {
	ser := func(q map[string]any) string { return "custom=1" }
	assert.Equal(t, "https://a.com/x?custom=1", Build("https://a.com", "/x", nil, map[string]any{"y": "z"}, ser))
}

func TestEncodeQuery(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", EncodeQuery(nil))
		assert.Equal(t, "", EncodeQuery(map[string]any{}))
	})
	t.Run("nil values skipped", func(t *testing.T) {
		assert.Equal(t, "keep=v", EncodeQuery(map[string]any{"keep": "v", "skip": nil}))
	})
	t.Run("arrays expand to repeated keys in order", func(t *testing.T) {
		assert.Equal(t, "tag=a&tag=b&tag=c", EncodeQuery(map[string]any{"tag": []string{"a", "b", "c"}}))
	})
	t.Run("nil array elements skipped", func(t *testing.T) {
		assert.Equal(t, "tag=a&tag=b", EncodeQuery(map[string]any{"tag": []any{"a", nil, "b"}}))
	})
	t.Run("time serializes to RFC 3339", func(t *testing.T) {
		ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
		assert.Equal(t, "at=2026-02-03T04%3A05%3A06Z", EncodeQuery(map[string]any{"at": ts}))
	})
	t.Run("keys in lexical order", func(t *testing.T) {
		assert.Equal(t, "a=1&b=2&c=3", EncodeQuery(map[string]any{"c": 3, "a": 1, "b": 2}))
	})
	t.Run("values escaped", func(t *testing.T) {
		assert.Equal(t, "q=a+b%26c", EncodeQuery(map[string]any{"q": "a b&c"}))
	})
}
