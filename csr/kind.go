// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package csr

import "unsafe"

// Kind tags the element kind of a value buffer whose static type has been
// erased. It is the runtime counterpart of the Floats constraint: the two
// enumerate the same closed set.
type Kind int

const (
	// KindInvalid is the zero value; no buffer has it.
	KindInvalid Kind = iota

	// KindFloat32 tags []float32 buffers.
	KindFloat32

	// KindFloat64 tags []float64 buffers.
	KindFloat64
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	default:
		return "invalid"
	}
}

// Size returns the element size in bytes, or 0 for KindInvalid.
func (k Kind) Size() int {
	switch k {
	case KindFloat32:
		return 4
	case KindFloat64:
		return 8
	default:
		return 0
	}
}

// KindOf derives the element kind tag from a buffer's dynamic type.
// Buffers outside the supported set report KindInvalid.
func KindOf(data any) Kind {
	switch data.(type) {
	case []float32:
		return KindFloat32
	case []float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

// KindOfType reports the kind of the type parameter itself, without a
// buffer. Named types satisfying the constraint report the kind of their
// underlying representation.
func KindOfType[T Floats]() Kind {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return KindFloat32
	}
	return KindFloat64
}
