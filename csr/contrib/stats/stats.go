// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

// Package stats computes per-row and per-column moments over CSR matrices,
// implicit zeros included. Like the csr kernels it builds on, everything
// accumulates in the matrix's own element kind: a float32 matrix produces
// float32 means and variances, never a widened copy.
//
// Variances are population variances (divide by the axis length), the
// convention used by sparse feature-scaling pipelines.
package stats

import (
	"fmt"

	"github.com/sparsekit/sparsekit/csr"
)

// errColsRequired reports a matrix whose Cols field is unset; width-dependent
// statistics cannot be computed without it.
func errColsRequired(what string) error {
	return fmt.Errorf("%w: stats: %s requires Matrix.Cols > 0", csr.ErrShapeMismatch, what)
}

// RowMeans returns the mean of each row over the full row width: the row sum
// divided by m.Cols, counting implicit zeros. Requires m.Cols > 0.
func RowMeans[T csr.Floats](m csr.Matrix[T]) ([]T, error) {
	return RowMeansWithPool[T](m, nil)
}

// RowMeansWithPool is RowMeans with the row sweep spread across pool.
// A nil pool runs sequentially.
func RowMeansWithPool[T csr.Floats](m csr.Matrix[T], pool csr.Parallelizer) ([]T, error) {
	if m.Cols <= 0 {
		return nil, errColsRequired("RowMeans")
	}
	sums, err := csr.ReduceRowsWithPool(m, csr.OpSum, pool)
	if err != nil {
		return nil, err
	}
	inv := 1 / T(m.Cols)
	for i := range sums {
		sums[i] *= inv
	}
	return sums, nil
}

// RowVariances returns the population variance of each row over the full row
// width: E[x²] − E[x]², with the expectations taken over m.Cols entries,
// implicit zeros included. Requires m.Cols > 0.
func RowVariances[T csr.Floats](m csr.Matrix[T]) ([]T, error) {
	return RowVariancesWithPool[T](m, nil)
}

// RowVariancesWithPool is RowVariances with both row sweeps spread across
// pool. A nil pool runs sequentially.
func RowVariancesWithPool[T csr.Floats](m csr.Matrix[T], pool csr.Parallelizer) ([]T, error) {
	if m.Cols <= 0 {
		return nil, errColsRequired("RowVariances")
	}
	sums, err := csr.ReduceRowsWithPool(m, csr.OpSum, pool)
	if err != nil {
		return nil, err
	}
	sumsq, err := csr.ReduceRowsWithPool(m, csr.OpSumSquares, pool)
	if err != nil {
		return nil, err
	}
	inv := 1 / T(m.Cols)
	out := sumsq
	for i := range out {
		mean := sums[i] * inv
		out[i] = sumsq[i]*inv - mean*mean
	}
	return out, nil
}

// ColumnMeanVariances returns the population mean and variance of every
// column, implicit zeros included. Both passes run sequentially: columns
// share accumulators across rows, so a row-parallel sweep would need one
// accumulator buffer per worker for no measurable win at this arithmetic
// intensity. Requires m.Cols > 0.
func ColumnMeanVariances[T csr.Floats](m csr.Matrix[T]) (means, variances []T, err error) {
	if m.Cols <= 0 {
		return nil, nil, errColsRequired("ColumnMeanVariances")
	}
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}

	means = make([]T, m.Cols)
	variances = make([]T, m.Cols)
	if m.Rows == 0 {
		return means, variances, nil
	}
	for k, j := range m.Indices {
		means[j] += m.Data[k]
	}
	invRows := 1 / T(m.Rows)
	for j := range means {
		means[j] *= invRows
	}

	// Second pass: squared deviations of the stored entries, then account for
	// the implicit zeros of each column, which each deviate by exactly -mean.
	nnz := make([]int64, m.Cols)
	for k, j := range m.Indices {
		d := m.Data[k] - means[j]
		variances[j] += d * d
		nnz[j]++
	}
	for j := range variances {
		zeros := T(int64(m.Rows) - nnz[j])
		variances[j] = (variances[j] + zeros*means[j]*means[j]) * invRows
	}
	return means, variances, nil
}

// ColumnMeans returns the population mean of every column. Requires m.Cols > 0.
func ColumnMeans[T csr.Floats](m csr.Matrix[T]) ([]T, error) {
	if m.Cols <= 0 {
		return nil, errColsRequired("ColumnMeans")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	means := make([]T, m.Cols)
	if m.Rows == 0 {
		return means, nil
	}
	for k, j := range m.Indices {
		means[j] += m.Data[k]
	}
	invRows := 1 / T(m.Rows)
	for j := range means {
		means[j] *= invRows
	}
	return means, nil
}

// ColumnVariances returns the population variance of every column.
// Requires m.Cols > 0.
func ColumnVariances[T csr.Floats](m csr.Matrix[T]) ([]T, error) {
	_, variances, err := ColumnMeanVariances(m)
	return variances, err
}

// NNZPerRow returns the number of stored entries in each row.
func NNZPerRow[T csr.Floats](m csr.Matrix[T]) ([]int64, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := make([]int64, m.Rows)
	for i := range out {
		out[i] = int64(m.RowNNZ(i))
	}
	return out, nil
}
