// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"encoding/json"
	"io"
	"net/url"
	"strings"

	"github.com/resfetch/resfetch-go/request"
)

// A MultipartBody is a request body that carries its own multipart form
// content type, typically a buffer written by mime/multipart.Writer
// paired with the writer's FormDataContentType. Multipart bodies are
// sent as-is and never receive an automatic JSON content type.
type MultipartBody interface {
	io.Reader
	FormDataContentType() string
}

// serializeBody converts the effective body value into wire bytes plus
// an inferred content type ("" when none should be inferred).
//
// nil, string, []byte and io.Reader bodies pass through without content
// type inference; url.Values bodies form-encode; MultipartBody bodies
// use their own content type. Every other value goes through the
// configured body serializer (JSON by default) and infers
// application/json. Inferred content types never override a content
// type already present in the merged headers.
func serializeBody(eff *Options) (body []byte, contentType string, err error) {
	switch b := eff.Body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return b, "", nil
	case string:
		return []byte(b), "", nil
	case url.Values:
		return []byte(b.Encode()), "application/x-www-form-urlencoded", nil
	}

	if mb, ok := eff.Body.(MultipartBody); ok {
		data, err := io.ReadAll(mb)
		if err != nil {
			return nil, "", err
		}
		return data, mb.FormDataContentType(), nil
	}
	if r, ok := eff.Body.(io.Reader); ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, "", err
		}
		return data, "", nil
	}

	serialize := eff.SerializeBody
	if serialize == nil {
		serialize = func(v any) ([]byte, error) { return json.Marshal(v) }
	}
	data, err := serialize(eff.Body)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}

// parseBody parses a buffered response body: JSON bodies decode into
// untyped values, everything else passes through as a string, and an
// empty body parses to nil.
func parseBody(e *request.Execution) (any, error) {
	if len(e.Body) == 0 {
		return nil, nil
	}
	ct := e.Header().Get("Content-Type")
	if strings.Contains(ct, "json") {
		var v any
		if err := json.Unmarshal(e.Body, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return string(e.Body), nil
}
