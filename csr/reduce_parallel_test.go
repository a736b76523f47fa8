// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package csr_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/sparsekit/sparsekit/csr"
	"github.com/sparsekit/sparsekit/csr/contrib/workerpool"
)

// randomCSR generates a random rows x cols matrix with the given density.
func randomCSR(rng *rand.Rand, rows, cols int, density float64) csr.Matrix[float64] {
	var data []float64
	var indices []int32
	indptr := make([]int32, rows+1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if rng.Float64() < density {
				data = append(data, rng.Float64()*2-1)
				indices = append(indices, int32(j))
			}
		}
		indptr[i+1] = int32(len(data))
	}
	return csr.Matrix[float64]{Data: data, Indices: indices, Indptr: indptr, Rows: rows, Cols: cols}
}

func TestReduceRowsWithPoolMatchesSequential(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(7))
	// Large enough to cross the parallel threshold, with empty rows mixed in.
	m := randomCSR(rng, 5000, 64, 0.05)

	for _, op := range csr.Ops() {
		want, err := csr.ReduceRows(m, op)
		if err != nil {
			t.Fatalf("%v sequential: %v", op, err)
		}
		got, err := csr.ReduceRowsWithPool(m, op, pool)
		if err != nil {
			t.Fatalf("%v pooled: %v", op, err)
		}
		if len(got) != len(want) {
			t.Fatalf("%v: len mismatch %d vs %d", op, len(got), len(want))
		}
		for i := range got {
			// Each row is accumulated by exactly one worker in row order, so
			// the pooled result is bit-identical, not merely close.
			if math.Float64bits(got[i]) != math.Float64bits(want[i]) {
				t.Errorf("%v: row %d: pooled %v != sequential %v", op, i, got[i], want[i])
			}
		}
	}
}

func TestReduceRowsWithPoolNilPool(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	m := randomCSR(rng, 100, 8, 0.2)
	want, err := csr.ReduceRows(m, csr.OpSumSquares)
	if err != nil {
		t.Fatal(err)
	}
	got, err := csr.ReduceRowsWithPool(m, csr.OpSumSquares, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("row %d: %v != %v", i, got[i], want[i])
		}
	}
}

func TestReduceRowsWithPoolNoParallelEnv(t *testing.T) {
	t.Setenv("SPARSEKIT_NO_PARALLEL", "1")
	pool := workerpool.New(4)
	defer pool.Close()

	rng := rand.New(rand.NewSource(9))
	m := randomCSR(rng, 5000, 16, 0.05)
	want, err := csr.ReduceRows(m, csr.OpL2Norm)
	if err != nil {
		t.Fatal(err)
	}
	got, err := csr.ReduceRowsWithPool(m, csr.OpL2Norm, pool)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("row %d: %v != %v", i, got[i], want[i])
		}
	}
}

func TestReduceRowsWithPoolValidatesFirst(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	m := csr.Matrix[float32]{
		Data:    []float32{1},
		Indices: []int32{0},
		Indptr:  []int32{0, 2},
		Rows:    1,
	}
	if _, err := csr.ReduceRowsWithPool(m, csr.OpSum, pool); err == nil {
		t.Error("expected a validation error, got nil")
	}
}
