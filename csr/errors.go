// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package csr

import (
	"errors"
	"fmt"
)

// All contract violations are reported through these sentinels, wrapped with
// detail via fmt.Errorf("%w: ..."), so callers can match them with errors.Is.
// They indicate caller-side bugs, not transient conditions; nothing in this
// package retries or recovers from them.
var (
	// ErrUnsupportedKind reports a buffer whose element kind is outside the
	// closed set {float32, float64}.
	ErrUnsupportedKind = errors.New("csr: unsupported element kind")

	// ErrUnknownOp reports an operation identifier with no kernel table entry.
	ErrUnknownOp = errors.New("csr: unknown operation")

	// ErrShapeMismatch reports a CSR buffer length invariant violation.
	ErrShapeMismatch = errors.New("csr: shape mismatch")

	// ErrIndptrNotMonotonic reports a decreasing row-pointer buffer.
	ErrIndptrNotMonotonic = errors.New("csr: indptr not monotonic")

	// ErrIndexOutOfRange reports a column index outside [0, Cols).
	ErrIndexOutOfRange = errors.New("csr: column index out of range")
)

func errOpf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnknownOp, fmt.Sprintf(format, args...))
}

func errShapef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrShapeMismatch, fmt.Sprintf(format, args...))
}

func errMonotonicf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIndptrNotMonotonic, fmt.Sprintf(format, args...))
}

func errIndexf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIndexOutOfRange, fmt.Sprintf(format, args...))
}
