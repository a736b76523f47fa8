// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparsekit/sparsekit/csr"
)

func TestInplaceRowNormalizeL2(t *testing.T) {
	m, err := csr.NewMatrix(
		[]float64{3, 4, 0, 7},
		[]int32{0, 1, 0, 2},
		[]int32{0, 2, 3, 3, 4},
		4, 3,
	)
	require.NoError(t, err)

	require.NoError(t, InplaceRowNormalizeL2(m))

	// Row 0: [3 4] / 5. Row 1: single stored zero, norm 0, untouched.
	// Row 2: empty. Row 3: [7] / 7.
	assert.InDeltaSlice(t, []float64{0.6, 0.8, 0, 1}, m.Data, 1e-15)

	// Every nonempty row with a nonzero norm now has unit L2 norm.
	norms, err := csr.ReduceRows(m, csr.OpL2Norm)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, norms, 1e-15)
}

func TestInplaceRowNormalizeL1(t *testing.T) {
	m, err := csr.NewMatrix(
		[]float32{1, -3, 2},
		[]int32{0, 1, 0},
		[]int32{0, 2, 3},
		2, 2,
	)
	require.NoError(t, err)

	require.NoError(t, InplaceRowNormalizeL1(m))

	assert.InDeltaSlice(t, []float32{0.25, -0.75, 1}, m.Data, 1e-6)

	sums, err := csr.ReduceRows(m, csr.OpAbsSum)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{1, 1}, sums, 1e-6)
}

func TestNormalizePropagatesValidation(t *testing.T) {
	m := csr.Matrix[float64]{
		Data:    []float64{1, 2, 3},
		Indices: []int32{0, 1, 2},
		Indptr:  []int32{0, 5, 3},
		Rows:    2,
	}
	assert.ErrorIs(t, InplaceRowNormalizeL2(m), csr.ErrIndptrNotMonotonic)
	assert.ErrorIs(t, InplaceRowNormalizeL1(m), csr.ErrIndptrNotMonotonic)
	// The buffer must be untouched after a failed call.
	assert.Equal(t, []float64{1, 2, 3}, m.Data)
}

func TestNormalizeKeepsKind(t *testing.T) {
	m, err := csr.NewMatrix([]float32{3, 4}, []int32{0, 1}, []int32{0, 2}, 1, 2)
	require.NoError(t, err)
	require.NoError(t, InplaceRowNormalizeL2(m))
	// Data is still the same float32 buffer, scaled in place.
	assert.InDeltaSlice(t, []float32{0.6, 0.8}, m.Data, 1e-6)
}
