// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

// Package csr provides type-specialized reduction kernels over compressed
// sparse row (CSR) buffers.
//
// The package follows one rule throughout: the element kind of a buffer is
// never silently widened. Reducing a float32 matrix accumulates in float32
// and returns float32; reducing a float64 matrix stays in float64. Kernels
// are generic over the closed set {float32, float64} and the concrete
// specialization is bound exactly once per call, at the API boundary, never
// inside the per-row loop.
//
// Basic usage:
//
//	m, err := csr.NewMatrix([]float32{3, 4}, []int32{0, 1}, []int32{0, 2}, 1, 2)
//	if err != nil {
//		return err
//	}
//	norms, err := csr.ReduceRows(m, csr.OpL2Norm) // []float32{5}
//
// Callers that only hold an untyped buffer use Reduce, which inspects the
// element kind once and dispatches to the matching specialization.
package csr

// Floats is the closed set of element kinds supported by the kernels.
type Floats interface {
	~float32 | ~float64
}

// Matrix is a read-only CSR view over three parallel buffers. Data holds the
// stored (nonzero) values row by row, Indices the column of each stored
// value, and Indptr the per-row offsets into Data: row i occupies
// Data[Indptr[i]:Indptr[i+1]].
//
// Invariants, checked by Validate before any kernel touches the buffers:
//
//   - len(Indptr) == Rows+1 and Indptr[0] == 0
//   - Indptr is non-decreasing
//   - Indptr[Rows] == len(Data) == len(Indices)
//   - when Cols > 0, every index is in [0, Cols)
//
// The kernels borrow the view for the duration of one call and never mutate
// it. The contrib/scale package is the single exception and says so.
type Matrix[T Floats] struct {
	Data    []T
	Indices []int32
	Indptr  []int32
	Rows    int

	// Cols is the logical column count. Zero means unknown; index bounds are
	// then not checked and width-dependent statistics are unavailable.
	Cols int
}

// NewMatrix wraps the three CSR buffers as a Matrix and validates the shape
// invariants. The buffers are aliased, not copied.
func NewMatrix[T Floats](data []T, indices, indptr []int32, rows, cols int) (Matrix[T], error) {
	m := Matrix[T]{Data: data, Indices: indices, Indptr: indptr, Rows: rows, Cols: cols}
	if err := m.Validate(); err != nil {
		return Matrix[T]{}, err
	}
	return m, nil
}

// NNZ returns the number of stored entries.
func (m Matrix[T]) NNZ() int {
	return len(m.Data)
}

// RowNNZ returns the number of stored entries in row i.
// The caller must have validated the view; i must be in [0, Rows).
func (m Matrix[T]) RowNNZ(i int) int {
	return int(m.Indptr[i+1] - m.Indptr[i])
}

// Row returns the stored values of row i as a sub-slice of Data.
// The caller must have validated the view; i must be in [0, Rows).
func (m Matrix[T]) Row(i int) []T {
	return m.Data[m.Indptr[i]:m.Indptr[i+1]]
}

// Validate checks the CSR shape invariants. It fails fast with a typed error
// before any accumulation begins:
//
//   - ErrShapeMismatch for length violations (indptr length, data/indices
//     disagreement, negative Rows or Cols)
//   - ErrIndptrNotMonotonic when Indptr decreases anywhere
//   - ErrIndexOutOfRange when Cols > 0 and a column index falls outside [0, Cols)
//
// Monotonicity is checked before the data/indices totals so that a broken
// row-pointer buffer is always reported as such, independent of how long the
// value buffers happen to be.
func (m Matrix[T]) Validate() error {
	if m.Rows < 0 || m.Cols < 0 {
		return errShapef("negative shape %dx%d", m.Rows, m.Cols)
	}
	if len(m.Indptr) != m.Rows+1 {
		return errShapef("indptr length %d, want rows+1 = %d", len(m.Indptr), m.Rows+1)
	}
	if m.Indptr[0] != 0 {
		return errShapef("indptr[0] = %d, want 0", m.Indptr[0])
	}
	for i := 0; i < m.Rows; i++ {
		if m.Indptr[i] > m.Indptr[i+1] {
			return errMonotonicf("indptr[%d] = %d > indptr[%d] = %d", i, m.Indptr[i], i+1, m.Indptr[i+1])
		}
	}
	if total := int(m.Indptr[m.Rows]); total != len(m.Data) || len(m.Data) != len(m.Indices) {
		return errShapef("indptr[rows] = %d, len(data) = %d, len(indices) = %d; all three must agree",
			total, len(m.Data), len(m.Indices))
	}
	if m.Cols > 0 {
		for k, j := range m.Indices {
			if j < 0 || int(j) >= m.Cols {
				return errIndexf("indices[%d] = %d outside [0, %d)", k, j, m.Cols)
			}
		}
	}
	return nil
}
