// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package urlx assembles request URLs from a base URL, a route path,
// path parameters and query parameters.
package urlx

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"
)

var (
	absoluteURL = regexp.MustCompile(`^https?://`)
	paramToken  = regexp.MustCompile(`:(\w+)`)
)

// A Serializer encodes query parameters into a query string without the
// leading "?". An empty return value means no query string.
type Serializer func(query map[string]any) string

// Build combines a base URL, a path, path parameter substitution and query
// serialization into a final request URL.
//
// If path is itself an absolute http(s) URL, base is ignored entirely.
// Otherwise base and path are joined with exactly one separating slash,
// unless either side is empty, in which case they are concatenated
// directly.
//
// Every :name token in path is replaced with the string form of
// params[name] when that value is present and non-nil. Tokens without a
// usable parameter are left as literal text rather than treated as an
// error.
//
// A query string already present on path is preserved; the serialized
// params are appended with "?" or "&" as appropriate. If ser is nil,
// EncodeQuery is used.
func Build(base, path string, params map[string]any, query map[string]any, ser Serializer) string {
	path = substitute(path, params)

	u := path
	if !absoluteURL.MatchString(path) {
		u = join(base, path)
	}

	if ser == nil {
		ser = EncodeQuery
	}
	qs := ser(query)
	if qs == "" {
		return u
	}
	if strings.Contains(u, "?") {
		return u + "&" + qs
	}
	return u + "?" + qs
}

func join(base, path string) string {
	if base == "" || path == "" {
		return base + path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

func substitute(path string, params map[string]any) string {
	if len(params) == 0 {
		return path
	}
	return paramToken.ReplaceAllStringFunc(path, func(token string) string {
		v, ok := params[token[1:]]
		if !ok || v == nil {
			return token
		}
		return coerce(v)
	})
}

// EncodeQuery is the default query Serializer.
//
// Keys are emitted in lexical order so output is deterministic. Nil
// values are skipped entirely. Slice and array values expand to repeated
// keys in element order, skipping nil elements. time.Time values
// serialize to RFC 3339. Everything else serializes via its natural
// string form.
func EncodeQuery(query map[string]any) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := query[k]
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				el := rv.Index(i).Interface()
				if el == nil {
					continue
				}
				writePair(&b, k, coerce(el))
			}
			continue
		}
		writePair(&b, k, coerce(v))
	}
	return b.String()
}

func writePair(b *strings.Builder, k, v string) {
	if b.Len() > 0 {
		b.WriteByte('&')
	}
	b.WriteString(url.QueryEscape(k))
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(v))
}

func coerce(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
