// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package csr

import "math"

// Op identifies a row-reduction operation. The set is closed; kernelFor
// rejects anything it does not know with ErrUnknownOp.
type Op int

const (
	// OpSum accumulates the stored values of each row.
	OpSum Op = iota

	// OpAbsSum accumulates |x| over each row (the L1 norm of the row).
	OpAbsSum

	// OpSumSquares accumulates x*x over each row.
	OpSumSquares

	// OpL2Norm accumulates x*x over each row, then applies a square-root
	// post-pass to the result buffer.
	OpL2Norm

	// OpMean divides the row sum by the number of stored entries in the row.
	// An empty row yields 0, the accumulation identity, like every other op.
	// For the mean over the full row width (implicit zeros included), see
	// contrib/stats.
	OpMean

	// OpMax reduces to the largest value among the stored entries and the
	// implicit zeros, matching sparse semantics: a row that does not fill
	// every column contains zeros, so the result is never below 0.
	OpMax

	// OpMin is the sparse counterpart of OpMax; the result is never above 0.
	OpMin
)

var opNames = map[Op]string{
	OpSum:        "sum",
	OpAbsSum:     "abssum",
	OpSumSquares: "sumsquares",
	OpL2Norm:     "l2norm",
	OpMean:       "mean",
	OpMax:        "max",
	OpMin:        "min",
}

// String returns the operation's short name.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

// Ops lists every supported operation, in stable order.
func Ops() []Op {
	return []Op{OpSum, OpAbsSum, OpSumSquares, OpL2Norm, OpMean, OpMax, OpMin}
}

// OpByName resolves an operation from its short name.
func OpByName(name string) (Op, error) {
	for op, s := range opNames {
		if s == name {
			return op, nil
		}
	}
	return 0, errOpf("name %q", name)
}

// kernel is one operation bound to a concrete element kind T: the identity
// value, the per-element combine step, an optional per-row finish step that
// sees the row's stored-entry count, and an optional post-pass applied to the
// whole result buffer. All fields stay in T; nothing here widens.
type kernel[T Floats] struct {
	identity T
	combine  func(acc, x T) T
	finish   func(acc T, rowNNZ int) T
	post     func(v T) T
}

// kernelFor resolves the specialization of op for element kind T. It is
// called exactly once per engine invocation, outside the row loop, so the
// hot loop performs a single indirect call per element instead of a
// branch-on-op or branch-on-kind per element. Resolution is deterministic:
// the same (T, op) pair always yields the same functions.
func kernelFor[T Floats](op Op) (kernel[T], error) {
	switch op {
	case OpSum:
		return kernel[T]{combine: addCombine[T]}, nil
	case OpAbsSum:
		return kernel[T]{combine: absCombine[T]}, nil
	case OpSumSquares:
		return kernel[T]{combine: squareCombine[T]}, nil
	case OpL2Norm:
		return kernel[T]{combine: squareCombine[T], post: sqrtScalar[T]}, nil
	case OpMean:
		return kernel[T]{combine: addCombine[T], finish: meanFinish[T]}, nil
	case OpMax:
		return kernel[T]{combine: maxCombine[T]}, nil
	case OpMin:
		return kernel[T]{combine: minCombine[T]}, nil
	default:
		return kernel[T]{}, errOpf("op %d", int(op))
	}
}

func addCombine[T Floats](acc, x T) T { return acc + x }

func absCombine[T Floats](acc, x T) T {
	if x < 0 {
		return acc - x
	}
	return acc + x
}

func squareCombine[T Floats](acc, x T) T { return acc + x*x }

func maxCombine[T Floats](acc, x T) T {
	if x > acc {
		return x
	}
	return acc
}

func minCombine[T Floats](acc, x T) T {
	if x < acc {
		return x
	}
	return acc
}

func meanFinish[T Floats](acc T, rowNNZ int) T {
	if rowNNZ == 0 {
		return 0
	}
	return acc / T(rowNNZ)
}

// sqrtScalar takes the square root without changing the element kind. The
// intermediate float64 is a register value, never a buffer; math.Sqrt is
// correctly rounded, so the float32 result is exact for float32 inputs.
func sqrtScalar[T Floats](v T) T {
	return T(math.Sqrt(float64(v)))
}
