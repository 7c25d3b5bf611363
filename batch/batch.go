// Package batch repeats CAN CRC computation to measure throughput.
// Every iteration computes the same checksum of the same input,
// result is the last value, there is no accumulation between iterations.
package batch

import (
	"runtime"
	"time"

	"github.com/temoto/atomic_clock"
	"github.com/temoto/cancrc/bitseq"
	"github.com/temoto/cancrc/crc"
	"github.com/temoto/cancrc/log2"
	"golang.org/x/sync/errgroup"
)

const (
	MinIterations uint64 = 1
	MaxIterations uint64 = 1000000000

	DefaultParallelMin uint64 = 100000
)

type Runner struct {
	// 0 = runtime.GOMAXPROCS
	Workers int
	// iterations below this run sequentially, 0 = DefaultParallelMin
	ParallelMin uint64
	Log         *log2.Log
}

// Run with default Runner, returns CRC and wall clock elapsed time.
// iterations must pass CheckIterations.
func Run(bits bitseq.Bits, iterations uint64) (uint16, time.Duration) {
	r := Runner{}
	result := r.Run(bits, iterations)
	return result.CRC, result.Elapsed
}

func (r *Runner) Run(bits bitseq.Bits, iterations uint64) Result {
	result := Result{Bits: len(bits), Iterations: iterations, Workers: 1}
	begin := atomic_clock.Now()
	switch {
	case iterations <= 1:
		result.CRC = crc.Fast(bits)

	case iterations < r.parallelMin():
		r.Log.Debugf("batch sequential iterations=%d", iterations)
		result.CRC = repeat(bits, iterations)

	default:
		workers := r.workers()
		if uint64(workers) > iterations {
			workers = int(iterations)
		}
		r.Log.Debugf("batch parallel iterations=%d workers=%d", iterations, workers)
		result.CRC = parallel(bits, iterations, workers)
		result.Workers = workers
	}
	result.Elapsed = atomic_clock.Since(begin)
	return result
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r *Runner) parallelMin() uint64 {
	if r.ParallelMin > 0 {
		return r.ParallelMin
	}
	return DefaultParallelMin
}

func repeat(bits []bool, n uint64) uint16 {
	var local uint16
	for i := uint64(0); i < n; i++ {
		local = crc.Fast(bits)
	}
	return local
}

// split returns per worker iteration counts, sum is n.
// First n%workers get one extra.
func split(n uint64, workers int) []uint64 {
	w := uint64(workers)
	parts := make([]uint64, workers)
	for i := range parts {
		parts[i] = n / w
		if uint64(i) < n%w {
			parts[i]++
		}
	}
	return parts
}

func parallel(bits []bool, n uint64, workers int) uint16 {
	parts := split(n, workers)
	// each worker owns one slot, all slots receive same value
	results := make([]uint16, workers)
	var g errgroup.Group
	for i := range parts {
		i := i
		g.Go(func() error {
			results[i] = repeat(bits, parts[i])
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	return results[0]
}
