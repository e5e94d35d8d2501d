// Copyright 2026 The resfetch-go Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"syscall"
)

// Transient reports whether err is a transient transport error, in the
// sense that a retry of the failed attempt has some prospect of
// success.
//
// An error is transient when it, or any error it wraps, reports a
// timeout via a Timeout() bool method, or equals syscall.ECONNRESET or
// syscall.ECONNREFUSED. Connection refusal is treated as transient
// because it commonly occurs while the remote service is restarting.
//
// Transient deliberately ignores the Temporary() convention, whose
// semantics are unclear, and never classifies a nil error as transient.
func Transient(err error) bool {
	if err == nil {
		return false
	}

	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ECONNRESET || errno == syscall.ECONNREFUSED
	}

	return false
}
