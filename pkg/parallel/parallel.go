// Package parallel provides the index-partitioned parallel-for primitive used
// by bulk flag resets. Each index must be independent of every other index;
// the primitive offers no synchronization beyond waiting for completion.
package parallel

import (
	"runtime"
	"sync"
)

// For invokes fn(i) exactly once for every i in [start, end).
//
// When enabled is false the loop runs sequentially on the calling goroutine.
// When enabled is true the index range is partitioned into contiguous chunks,
// one per available CPU, and the chunks run concurrently. fn must not share
// mutable state across indices.
func For(start, end int, enabled bool, fn func(i int)) {
	n := end - start
	if n <= 0 {
		return
	}

	if !enabled || n == 1 {
		for i := start; i < end; i++ {
			fn(i)
		}
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := start; lo < end; lo += chunk {
		hi := lo + chunk
		if hi > end {
			hi = end
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(lo, hi)
	}
	wg.Wait()
}
