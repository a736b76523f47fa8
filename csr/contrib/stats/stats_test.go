// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package stats

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/sparsekit/sparsekit/csr"
	"github.com/sparsekit/sparsekit/csr/contrib/workerpool"
)

// testMatrix is the small worked example used across this file:
//
//	[ 1  0  2 ]
//	[ 0  0  0 ]
//	[ 3 -1  0 ]
func testMatrix(t *testing.T) csr.Matrix[float64] {
	t.Helper()
	m, err := csr.NewMatrix(
		[]float64{1, 2, 3, -1},
		[]int32{0, 2, 0, 1},
		[]int32{0, 2, 2, 4},
		3, 3,
	)
	require.NoError(t, err)
	return m
}

// dense expands a CSR matrix to row-major dense form for reference math.
func dense(m csr.Matrix[float64]) [][]float64 {
	out := make([][]float64, m.Rows)
	for i := range out {
		out[i] = make([]float64, m.Cols)
		lo, hi := m.Indptr[i], m.Indptr[i+1]
		for k := lo; k < hi; k++ {
			out[i][m.Indices[k]] = m.Data[k]
		}
	}
	return out
}

// randomCSR generates a random matrix for property checks.
func randomCSR(rng *rand.Rand, rows, cols int, density float64) csr.Matrix[float64] {
	var data []float64
	var indices []int32
	indptr := make([]int32, rows+1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				data = append(data, rng.Float64()*4-2)
				indices = append(indices, int32(j))
			}
		}
		indptr[i+1] = int32(len(data))
	}
	return csr.Matrix[float64]{Data: data, Indices: indices, Indptr: indptr, Rows: rows, Cols: cols}
}

func TestRowMeansConcrete(t *testing.T) {
	m := testMatrix(t)
	means, err := RowMeans(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0, 2.0 / 3.0}, means, 1e-15)
}

func TestRowMeansMatchesDenseReference(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m := randomCSR(rng, 80, 17, 0.3)
	means, err := RowMeans(m)
	require.NoError(t, err)

	for i, row := range dense(m) {
		want := floats.Sum(row) / float64(m.Cols)
		assert.InDelta(t, want, means[i], 1e-12, "row %d", i)
	}
}

func TestRowVariancesMatchesDenseReference(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	m := randomCSR(rng, 60, 23, 0.25)
	vars, err := RowVariances(m)
	require.NoError(t, err)

	for i, row := range dense(m) {
		mean := floats.Sum(row) / float64(m.Cols)
		var want float64
		for _, x := range row {
			d := x - mean
			want += d * d
		}
		want /= float64(m.Cols)
		assert.InDelta(t, want, vars[i], 1e-10, "row %d", i)
	}
}

func TestColumnMeanVariancesMatchesDenseReference(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	m := randomCSR(rng, 90, 11, 0.4)
	means, vars, err := ColumnMeanVariances(m)
	require.NoError(t, err)
	require.Len(t, means, m.Cols)
	require.Len(t, vars, m.Cols)

	d := dense(m)
	for j := 0; j < m.Cols; j++ {
		col := make([]float64, m.Rows)
		for i := range d {
			col[i] = d[i][j]
		}
		wantMean := floats.Sum(col) / float64(m.Rows)
		var wantVar float64
		for _, x := range col {
			diff := x - wantMean
			wantVar += diff * diff
		}
		wantVar /= float64(m.Rows)

		assert.InDelta(t, wantMean, means[j], 1e-12, "column %d mean", j)
		assert.InDelta(t, wantVar, vars[j], 1e-10, "column %d variance", j)
	}
}

func TestColumnMeansAndVariancesWrappers(t *testing.T) {
	m := testMatrix(t)

	means, err := ColumnMeans(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4.0 / 3.0, -1.0 / 3.0, 2.0 / 3.0}, means, 1e-15)

	wantMeans, wantVars, err := ColumnMeanVariances(m)
	require.NoError(t, err)
	assert.Equal(t, wantMeans, means)

	vars, err := ColumnVariances(m)
	require.NoError(t, err)
	assert.Equal(t, wantVars, vars)
}

func TestColsRequired(t *testing.T) {
	m := csr.Matrix[float64]{Data: []float64{1}, Indices: []int32{0}, Indptr: []int32{0, 1}, Rows: 1}

	_, err := RowMeans(m)
	assert.ErrorIs(t, err, csr.ErrShapeMismatch)
	_, err = RowVariances(m)
	assert.ErrorIs(t, err, csr.ErrShapeMismatch)
	_, err = ColumnMeans(m)
	assert.ErrorIs(t, err, csr.ErrShapeMismatch)
	_, _, err = ColumnMeanVariances(m)
	assert.ErrorIs(t, err, csr.ErrShapeMismatch)
}

func TestStatsPropagateValidation(t *testing.T) {
	m := csr.Matrix[float64]{
		Data:    []float64{1, 2, 3},
		Indices: []int32{0, 1, 2},
		Indptr:  []int32{0, 5, 3},
		Rows:    2,
		Cols:    3,
	}
	_, err := RowMeans(m)
	assert.ErrorIs(t, err, csr.ErrIndptrNotMonotonic)
	_, _, err = ColumnMeanVariances(m)
	assert.ErrorIs(t, err, csr.ErrIndptrNotMonotonic)
}

func TestStatsFloat32KeepsKind(t *testing.T) {
	m, err := csr.NewMatrix([]float32{2, 4}, []int32{0, 1}, []int32{0, 2}, 1, 2)
	require.NoError(t, err)

	means, err := RowMeans(m)
	require.NoError(t, err)
	// The declared result type is []float32; this is compile-time enforced,
	// the assertion documents the concrete values.
	var _ []float32 = means
	assert.Equal(t, []float32{3}, means)

	vars, err := RowVariances(m)
	require.NoError(t, err)
	var _ []float32 = vars
	assert.Equal(t, []float32{1}, vars)
}

func TestRowVariancesWithPoolMatchesSequential(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(6))
	m := randomCSR(rng, 4000, 32, 0.1)

	want, err := RowVariances(m)
	require.NoError(t, err)
	got, err := RowVariancesWithPool(m, pool)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNNZPerRow(t *testing.T) {
	m := testMatrix(t)
	nnz, err := NNZPerRow(m)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 0, 2}, nnz)
}

func TestZeroRowsMatrix(t *testing.T) {
	m := csr.Matrix[float64]{Indptr: []int32{0}, Rows: 0, Cols: 4}
	means, vars, err := ColumnMeanVariances(m)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 4), means)
	assert.Equal(t, make([]float64, 4), vars)
}
