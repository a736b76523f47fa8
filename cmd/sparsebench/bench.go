// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/sparsekit/sparsekit/csr"
	"github.com/sparsekit/sparsekit/csr/contrib/workerpool"
)

type benchConfig struct {
	rows    int
	cols    int
	density float64
	kind    string
	workers int
	iters   int
	seed    int64
}

func newBenchCmd() *cobra.Command {
	var cfg benchConfig
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time every reduction op, sequential vs pooled, and cross-check float32 against a float64 reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.rows, "rows", 50000, "matrix rows")
	cmd.Flags().IntVar(&cfg.cols, "cols", 512, "matrix columns")
	cmd.Flags().Float64Var(&cfg.density, "density", 0.02, "fraction of stored entries")
	cmd.Flags().StringVar(&cfg.kind, "kind", "float64", "element kind to time (float32 or float64)")
	cmd.Flags().IntVar(&cfg.workers, "workers", 0, "pool workers (0 = GOMAXPROCS)")
	cmd.Flags().IntVar(&cfg.iters, "iters", 5, "timed iterations per op")
	cmd.Flags().Int64Var(&cfg.seed, "seed", 1, "RNG seed")
	return cmd
}

func runBench(cmd *cobra.Command, cfg benchConfig) error {
	log := newLogger()

	kind := csr.KindOf(erasedZero(cfg.kind))
	if kind == csr.KindInvalid {
		return fmt.Errorf("unknown --kind %q (want float32 or float64)", cfg.kind)
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	m64 := randomCSR(rng, cfg.rows, cfg.cols, cfg.density)
	m32 := narrowed(m64)
	log.Info().
		Int("rows", cfg.rows).
		Int("cols", cfg.cols).
		Int("nnz", m64.NNZ()).
		Str("kind", kind.String()).
		Str("capability", csr.CurrentName()).
		Msg("generated matrix")

	pool := workerpool.New(cfg.workers)
	defer pool.Close()

	for _, op := range csr.Ops() {
		var seq, par time.Duration
		var err error
		if kind == csr.KindFloat32 {
			seq, par, err = timeOp(m32, op, cfg.iters, pool)
		} else {
			seq, par, err = timeOp(m64, op, cfg.iters, pool)
		}
		if err != nil {
			return err
		}
		speedup := float64(seq) / float64(par)
		log.Info().
			Stringer("op", op).
			Dur("sequential", seq).
			Dur("pooled", par).
			Str("speedup", fmt.Sprintf("%.2fx", speedup)).
			Int("workers", pool.NumWorkers()).
			Msg("timed")
	}

	// Verification stage: each op cross-checked concurrently against a
	// float64 reference. Timing is done; skew no longer matters.
	g, _ := errgroup.WithContext(cmd.Context())
	for _, op := range csr.Ops() {
		op := op
		g.Go(func() error {
			return verifyOp(log, m32, m64, op)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("all ops verified against float64 reference")
	return nil
}

// erasedZero maps a kind name to an empty buffer of that kind, so KindOf can
// do the name validation.
func erasedZero(kind string) any {
	switch kind {
	case "float32":
		return []float32{}
	case "float64":
		return []float64{}
	default:
		return nil
	}
}

// timeOp reports sequential and pooled wall time for op, best of iters runs.
func timeOp[T csr.Floats](m csr.Matrix[T], op csr.Op, iters int, pool *workerpool.Pool) (seq, par time.Duration, err error) {
	best := func(f func() error) (time.Duration, error) {
		b := time.Duration(1<<63 - 1)
		for i := 0; i < max(iters, 1); i++ {
			start := time.Now()
			if err := f(); err != nil {
				return 0, err
			}
			if d := time.Since(start); d < b {
				b = d
			}
		}
		return b, nil
	}

	seq, err = best(func() error {
		_, e := csr.ReduceRows(m, op)
		return e
	})
	if err != nil {
		return 0, 0, err
	}
	par, err = best(func() error {
		_, e := csr.ReduceRowsWithPool(m, op, pool)
		return e
	})
	return seq, par, err
}

// verifyOp checks the float32 kernel output for op against a float64
// reference built from the widened copy of the same matrix. For OpSum and
// OpL2Norm the reference comes from gonum's dense routines; the remaining
// ops use the float64 kernel itself as reference.
func verifyOp(log zerolog.Logger, m32 csr.Matrix[float32], m64 csr.Matrix[float64], op csr.Op) error {
	got, err := csr.ReduceRows(m32, op)
	if err != nil {
		return fmt.Errorf("%v float32: %w", op, err)
	}

	var want []float64
	switch op {
	case csr.OpSum:
		want = make([]float64, m64.Rows)
		for i := range want {
			want[i] = floats.Sum(m64.Row(i))
		}
	case csr.OpL2Norm:
		want = make([]float64, m64.Rows)
		for i := range want {
			want[i] = floats.Norm(m64.Row(i), 2)
		}
	default:
		if want, err = csr.ReduceRows(m64, op); err != nil {
			return fmt.Errorf("%v float64: %w", op, err)
		}
	}

	// float32 carries ~7 significant digits; after a row of accumulation a
	// relative 1e-3 band is comfortably loose and still catches kernel bugs.
	const relTol = 1e-3
	for i := range got {
		g, w := float64(got[i]), want[i]
		diff := g - w
		if diff < 0 {
			diff = -diff
		}
		scale := 1.0
		if w < -1 || w > 1 {
			if w < 0 {
				scale = -w
			} else {
				scale = w
			}
		}
		if diff > relTol*scale {
			return fmt.Errorf("%v row %d: float32 %v vs reference %v", op, i, g, w)
		}
	}
	log.Debug().Stringer("op", op).Msg("verified")
	return nil
}

// randomCSR generates a random rows x cols CSR matrix with the given density,
// values in [-1, 1).
func randomCSR(rng *rand.Rand, rows, cols int, density float64) csr.Matrix[float64] {
	nnzTarget := int(float64(rows*cols) * density)
	perRow := nnzTarget / max(rows, 1)

	data := make([]float64, 0, nnzTarget)
	indices := make([]int32, 0, nnzTarget)
	indptr := make([]int32, rows+1)
	for i := 0; i < rows; i++ {
		// A touch of variance in row fill, so pooled runs see uneven rows.
		n := perRow
		if perRow > 0 {
			n = rng.Intn(perRow*2 + 1)
		}
		n = min(n, cols)
		for _, j := range rng.Perm(cols)[:n] {
			data = append(data, rng.Float64()*2-1)
			indices = append(indices, int32(j))
		}
		indptr[i+1] = int32(len(data))
	}
	return csr.Matrix[float64]{Data: data, Indices: indices, Indptr: indptr, Rows: rows, Cols: cols}
}

// narrowed copies a float64 matrix into a float32 one, sharing index buffers.
func narrowed(m csr.Matrix[float64]) csr.Matrix[float32] {
	data := make([]float32, len(m.Data))
	for i, v := range m.Data {
		data[i] = float32(v)
	}
	return csr.Matrix[float32]{Data: data, Indices: m.Indices, Indptr: m.Indptr, Rows: m.Rows, Cols: m.Cols}
}
