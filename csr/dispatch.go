// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package csr

import "fmt"

// Level describes the CPU capability class detected at startup. The kernels
// themselves are portable Go; the level only sizes the default parallel
// grain (wider cores chew through more rows before a handoff pays off) and
// is surfaced by tooling.
type Level int

const (
	// LevelScalar indicates no detected SIMD capability.
	LevelScalar Level = iota

	// LevelNEON indicates ARM NEON (128-bit SIMD).
	LevelNEON

	// LevelAVX2 indicates AVX2 (256-bit SIMD).
	LevelAVX2

	// LevelAVX512 indicates AVX-512 (512-bit SIMD).
	LevelAVX512
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelNEON:
		return "neon"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	default:
		return "scalar"
	}
}

// currentLevel is set by init() in dispatch_*.go files.
var currentLevel Level

// CurrentLevel returns the CPU capability class detected at startup.
func CurrentLevel() Level {
	return currentLevel
}

// CurrentName returns a human-readable name for the detected capability.
func CurrentName() string {
	return currentLevel.String()
}

// ParallelGrain returns the default number of rows handed to a worker at a
// time by the pooled entry points.
func ParallelGrain() int {
	switch currentLevel {
	case LevelAVX512:
		return 1024
	case LevelAVX2, LevelNEON:
		return 512
	default:
		return 256
	}
}

// reduceFunc is an entry point bound to one element kind, operating on
// erased buffers.
type reduceFunc func(data any, indices, indptr []int32, rows int, op Op) (any, error)

// reducers maps each supported kind to its monomorphized entry point. Built
// once at init and never rebound; Reduce resolves its entry exactly once per
// call. Generic type parameters cannot be introduced inside a function that
// only receives erased data, so this table is where the closed kind set is
// spelled out.
var reducers = map[Kind]reduceFunc{
	KindFloat32: func(data any, indices, indptr []int32, rows int, op Op) (any, error) {
		m := Matrix[float32]{Data: data.([]float32), Indices: indices, Indptr: indptr, Rows: rows}
		return ReduceRows(m, op)
	},
	KindFloat64: func(data any, indices, indptr []int32, rows int, op Op) (any, error) {
		m := Matrix[float64]{Data: data.([]float64), Indices: indices, Indptr: indptr, Rows: rows}
		return ReduceRows(m, op)
	},
}

// Reduce is the erased entry point for callers that only learn the element
// kind at run time. data must be a []float32 or []float64; the result is a
// slice of the same kind and length rows. The kind is inspected exactly
// once, here, and the matching specialization bound for the whole call; the
// buffer is never copied or converted.
//
//	out, err := csr.Reduce(data, indices, indptr, rows, csr.OpSum)
//	sums := out.([]float64) // same kind as data
func Reduce(data any, indices, indptr []int32, rows int, op Op) (any, error) {
	fn, ok := reducers[KindOf(data)]
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKind, data)
	}
	return fn(data, indices, indptr, rows, op)
}
