// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package resfetch

import (
	"context"

	"github.com/resfetch/resfetch-go/schema"
)

// applySchema runs a validator and adapts its outcome to the engine's
// error model: issues become a *ValidationError carrying the original
// input (not any partially transformed value), so callers can inspect
// exactly what was rejected.
func applySchema(ctx context.Context, v schema.Validator, input any) (any, error) {
	res := v.Validate(ctx, input)
	if !res.OK() {
		return nil, &ValidationError{Issues: res.Issues, Data: input}
	}
	return res.Value, nil
}
