package html2pdf

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one conversion runs.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing. Conversions are CPU bound and hold
	// decoded images in memory.
	MaxWorkers = 8
)

// ResolveWorkers determines how many documents to convert in parallel.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
