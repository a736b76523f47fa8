// Copyright 2026 The sparsekit Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent worker pool for parallel row
// sweeps over sparse matrices. A Pool is created once and reused across many
// reductions; per-call goroutine spawning would otherwise dominate the cost
// of the kernels, which do only a handful of flops per stored element.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for _, m := range matrices {
//	    out, err := csr.ReduceRowsWithPool(m, csr.OpL2Norm, pool)
//	    ...
//	}
//
// Pool satisfies csr.Parallelizer.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// reused until Close.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool
}

// task is one unit of work plus the barrier it reports completion to.
type task struct {
	run     func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers, spawned immediately.
// If numWorkers <= 0, GOMAXPROCS is used.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.run()
		t.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts the pool down. Pending work completes; calling Close more than
// once is safe. A closed pool degrades to running work on the caller's
// goroutine rather than failing.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// RowRanges runs fn over contiguous sub-ranges of [0, rows), grain rows per
// grab, and blocks until every range has completed. Ranges are handed out
// through an atomic counter, so workers that land on dense row blocks do not
// stall workers that land on empty ones — row cost in a sparse matrix is
// anything but uniform.
//
// fn must be safe to call concurrently for disjoint ranges. Each index in
// [0, rows) is covered exactly once.
func (p *Pool) RowRanges(rows, grain int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}
	if grain <= 0 {
		grain = 1
	}

	numRanges := (rows + grain - 1) / grain
	workers := min(p.numWorkers, numRanges)

	// Sequential fast paths: a closed pool, or too little work to share.
	if p.closed.Load() || workers == 1 {
		fn(0, rows)
		return
	}

	var nextRange atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		p.workC <- task{
			run: func() {
				for {
					r := int(nextRange.Add(1)) - 1
					start := r * grain
					if start >= rows {
						return
					}
					fn(start, min(start+grain, rows))
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
}
