// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resfetch/resfetch-go/schema"
)

func TestResultDiscriminant(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		res := success("data")
		assert.True(t, res.OK)
		assert.Equal(t, "data", res.Data)
		assert.Nil(t, res.Err)
	})
	t.Run("failure", func(t *testing.T) {
		res := failure[string](errors.New("boom"))
		assert.False(t, res.OK)
		assert.Zero(t, res.Data)
		assert.Error(t, res.Err)
	})
}

func TestClassify(t *testing.T) {
	t.Run("validation error passes through verbatim", func(t *testing.T) {
		verr := &ValidationError{Issues: []schema.Issue{{Message: "bad"}}, Data: 1}
		assert.Same(t, verr, classify(verr).(*ValidationError))
	})
	t.Run("response error passes through verbatim", func(t *testing.T) {
		rerr := &ResponseError{Message: "bad", Status: 500}
		assert.Same(t, rerr, classify(rerr).(*ResponseError))
	})
	t.Run("unknown error wraps", func(t *testing.T) {
		cause := errors.New("boom")
		rerr, ok := classify(cause).(*ResponseError)
		require.True(t, ok)
		assert.Equal(t, "boom", rerr.Message)
		assert.Equal(t, 0, rerr.Status)
		assert.Same(t, cause, rerr.OriginalErr)
	})
}

func TestRecovered(t *testing.T) {
	t.Run("error value keeps message", func(t *testing.T) {
		err := classify(recovered(errors.New("boom")))
		rerr := err.(*ResponseError)
		assert.Equal(t, "boom", rerr.Message)
	})
	t.Run("non-error value yields empty message", func(t *testing.T) {
		err := classify(recovered("some string panic"))
		rerr := err.(*ResponseError)
		assert.Equal(t, "", rerr.Message)
		assert.NotNil(t, rerr.OriginalErr)
	})
}

func TestMatch(t *testing.T) {
	handlers := Handlers[string, string]{
		OK:              func(data string) string { return "ok:" + data },
		ValidationError: func(err *ValidationError) string { return "validation" },
		ResponseError:   func(err *ResponseError) string { return "response:" + err.Message },
	}

	t.Run("ok", func(t *testing.T) {
		assert.Equal(t, "ok:hello", Match(success("hello"), handlers))
	})
	t.Run("validation error", func(t *testing.T) {
		res := failure[string](&ValidationError{Issues: []schema.Issue{{Message: "bad"}}})
		assert.Equal(t, "validation", Match(res, handlers))
	})
	t.Run("response error", func(t *testing.T) {
		res := failure[string](&ResponseError{Message: "kaput"})
		assert.Equal(t, "response:kaput", Match(res, handlers))
	})
	t.Run("foreign error classified", func(t *testing.T) {
		res := Result[string]{Err: errors.New("raw")}
		assert.Equal(t, "response:raw", Match(res, handlers))
	})
	t.Run("idempotent", func(t *testing.T) {
		res := failure[string](&ResponseError{Message: "kaput"})
		assert.Equal(t, Match(res, handlers), Match(res, handlers))
	})
}

func TestErrorStrings(t *testing.T) {
	t.Run("validation single issue", func(t *testing.T) {
		verr := &ValidationError{Issues: []schema.Issue{{Path: "id", Message: "required"}}}
		assert.Equal(t, "resfetch: validation failed: id: required", verr.Error())
	})
	t.Run("validation multiple issues", func(t *testing.T) {
		verr := &ValidationError{Issues: []schema.Issue{{Message: "a"}, {Message: "b"}, {Message: "c"}}}
		assert.Contains(t, verr.Error(), "and 2 more issues")
	})
	t.Run("response with status", func(t *testing.T) {
		rerr := &ResponseError{Message: "Not Found", Status: 404}
		assert.Equal(t, "resfetch: request failed with status 404: Not Found", rerr.Error())
	})
	t.Run("response without status falls back to cause", func(t *testing.T) {
		rerr := &ResponseError{OriginalErr: errors.New("dial refused")}
		assert.Equal(t, "resfetch: request failed: dial refused", rerr.Error())
	})
	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("cause")
		rerr := &ResponseError{OriginalErr: cause}
		assert.True(t, errors.Is(rerr, cause))
	})
}
