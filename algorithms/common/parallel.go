package common

import (
	"runtime"
	"sync"
)

// WorkerCount resolves a requested pool size. Non-positive requests fall back
// to runtime.NumCPU(); the result is never below 1.
func WorkerCount(requested int) int {
	if requested > 0 {
		return requested
	}
	return max(runtime.NumCPU(), 1)
}

// ParallelFor calls fn(i) for every i in [0, total) using an interleaved-stride
// partition: worker w handles w, w+P, w+2P, ... where P is the number of
// goroutines started. Each index is visited by exactly one goroutine, so fn may
// write to index-owned slots without locking. ParallelFor returns once all
// goroutines have finished.
func ParallelFor(total, workers int, fn func(i int)) {
	if total <= 0 {
		return
	}

	// no point starting goroutines that would own no indices
	numWorkers := min(max(workers, 1), total)

	if numWorkers == 1 {
		for i := range total {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for w := range numWorkers {
		go func(start int) {
			defer wg.Done()
			for i := start; i < total; i += numWorkers {
				fn(i)
			}
		}(w)
	}

	wg.Wait()
}
