// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package csr

// ReduceRows computes one aggregate per row of m using the specialization of
// op for element kind T. The result buffer is newly allocated, has length
// m.Rows, the same element kind as m.Data, and is owned by the caller.
//
// The view is validated eagerly; nothing is accumulated once a shape,
// monotonicity, or index invariant fails. An empty row yields the
// operation's identity value. Accumulation happens entirely in T, so the
// result of the same input is bit-identical across calls.
//
// Example:
//
//	m, _ := csr.NewMatrix([]float32{3, 4}, []int32{0, 1}, []int32{0, 2}, 1, 2)
//	norms, _ := csr.ReduceRows(m, csr.OpL2Norm) // []float32{5}
func ReduceRows[T Floats](m Matrix[T], op Op) ([]T, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	k, err := kernelFor[T](op)
	if err != nil {
		return nil, err
	}
	out := make([]T, m.Rows)
	reduceRange(m, k, out, 0, m.Rows)
	if k.post != nil {
		postRange(out, k.post, 0, len(out))
	}
	return out, nil
}

// reduceRange folds rows [start, end) of m into out. The combine and finish
// steps were bound by kernelFor before the loop started; the inner loop is a
// single indirect call per stored element, with no per-element branching on
// kind or op.
func reduceRange[T Floats](m Matrix[T], k kernel[T], out []T, start, end int) {
	combine := k.combine
	for i := start; i < end; i++ {
		lo, hi := m.Indptr[i], m.Indptr[i+1]
		acc := k.identity
		for _, x := range m.Data[lo:hi] {
			acc = combine(acc, x)
		}
		if k.finish != nil {
			acc = k.finish(acc, int(hi-lo))
		}
		out[i] = acc
	}
}

// postRange applies the post-pass elementwise, in place, over out[start:end].
func postRange[T Floats](out []T, post func(T) T, start, end int) {
	for i := start; i < end; i++ {
		out[i] = post(out[i])
	}
}
