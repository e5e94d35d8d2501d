// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resfetch/resfetch-go/request"
)

func TestSerializeBody(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		body        any
		want        string
		contentType string
	}{
		{name: "nil"},
		{name: "bytes", body: []byte{0x1, 0x2}, want: "\x01\x02"},
		{name: "string", body: "plain", want: "plain"},
		{
			name:        "form values",
			body:        url.Values{"b": {"2"}, "a": {"1"}},
			want:        "a=1&b=2",
			contentType: "application/x-www-form-urlencoded",
		},
		{
			name:        "multipart",
			body:        &multipartBody{Reader: strings.NewReader("--x--"), contentType: "multipart/form-data; boundary=x"},
			want:        "--x--",
			contentType: "multipart/form-data; boundary=x",
		},
		{name: "reader", body: strings.NewReader("streamed"), want: "streamed"},
		{
			name:        "struct serializes to json",
			body:        struct{ A int }{A: 1},
			want:        `{"A":1}`,
			contentType: "application/json",
		},
		{
			name:        "map serializes to json",
			body:        map[string]any{"a": []int{1, 2}},
			want:        `{"a":[1,2]}`,
			contentType: "application/json",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			body, ct, err := serializeBody(&Options{Body: testCase.body})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, string(body))
			assert.Equal(t, testCase.contentType, ct)
		})
	}

	t.Run("custom serializer", func(t *testing.T) {
		opts := &Options{
			Body:          map[string]any{"a": 1},
			SerializeBody: func(any) ([]byte, error) { return []byte("custom"), nil },
		}
		body, ct, err := serializeBody(opts)
		require.NoError(t, err)
		assert.Equal(t, "custom", string(body))
		assert.Equal(t, "application/json", ct)
	})

	t.Run("unserializable body errors", func(t *testing.T) {
		_, _, err := serializeBody(&Options{Body: map[string]any{"ch": make(chan int)}})
		assert.Error(t, err)
	})
}

func TestParseBody(t *testing.T) {
	t.Parallel()

	exec := func(contentType, body string) *request.Execution {
		return &request.Execution{
			Response: &http.Response{Header: http.Header{"Content-Type": []string{contentType}}},
			Body:     []byte(body),
		}
	}

	t.Run("empty body is nil", func(t *testing.T) {
		v, err := parseBody(exec("application/json", ""))
		require.NoError(t, err)
		assert.Nil(t, v)
	})
	t.Run("json object", func(t *testing.T) {
		v, err := parseBody(exec("application/json; charset=utf-8", `{"a":1}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1)}, v)
	})
	t.Run("vendored json content type", func(t *testing.T) {
		v, err := parseBody(exec("application/problem+json", `[1]`))
		require.NoError(t, err)
		assert.Equal(t, []any{float64(1)}, v)
	})
	t.Run("text passes through", func(t *testing.T) {
		v, err := parseBody(exec("text/plain", "hello"))
		require.NoError(t, err)
		assert.Equal(t, "hello", v)
	})
	t.Run("malformed json errors", func(t *testing.T) {
		_, err := parseBody(exec("application/json", `{`))
		assert.Error(t, err)
	})
	t.Run("no response header", func(t *testing.T) {
		v, err := parseBody(&request.Execution{Body: []byte("raw")})
		require.NoError(t, err)
		assert.Equal(t, "raw", v)
	})
}
