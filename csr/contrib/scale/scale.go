// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

// Package scale rescales the stored values of a CSR matrix in place.
//
// This is the one corner of the module that mutates a Matrix: the view's
// Data buffer is written through. Everything still happens in the matrix's
// own element kind; normalizing a float32 matrix divides float32 values by a
// float32 norm.
package scale

import "github.com/sparsekit/sparsekit/csr"

// InplaceRowNormalizeL2 divides each row's stored values by the row's L2
// norm, so every nonempty row ends up with unit Euclidean length. Rows whose
// norm is zero (empty rows, all-zero stored values) are left untouched.
func InplaceRowNormalizeL2[T csr.Floats](m csr.Matrix[T]) error {
	norms, err := csr.ReduceRows(m, csr.OpL2Norm)
	if err != nil {
		return err
	}
	scaleRows(m, norms)
	return nil
}

// InplaceRowNormalizeL1 divides each row's stored values by the row's L1
// norm (the sum of absolute values). Zero-norm rows are left untouched.
func InplaceRowNormalizeL1[T csr.Floats](m csr.Matrix[T]) error {
	norms, err := csr.ReduceRows(m, csr.OpAbsSum)
	if err != nil {
		return err
	}
	scaleRows(m, norms)
	return nil
}

// scaleRows divides each row's stored values by its entry in norms, skipping
// zero norms. The view was validated by the norm reduction that produced
// norms, so indexing is safe here.
func scaleRows[T csr.Floats](m csr.Matrix[T], norms []T) {
	for i := 0; i < m.Rows; i++ {
		n := norms[i]
		if n == 0 {
			continue
		}
		inv := 1 / n
		row := m.Row(i)
		for k := range row {
			row[k] *= inv
		}
	}
}
