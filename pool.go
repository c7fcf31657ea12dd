package html2md

import "runtime"

// Worker count bounds for batch conversion.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps goroutines; conversion is CPU-bound, so more than the
	// available processors only adds contention.
	MaxWorkers = 32
)

// ResolveWorkers determines how many files to convert in parallel.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs for
// containers). The result is clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return min(max(n, MinWorkers), MaxWorkers)
}
