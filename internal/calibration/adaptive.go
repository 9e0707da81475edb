package calibration

import "runtime"

// GenerateTaskCounts returns the many-task chunk counts a full calibration
// measures on this machine. The list always starts with 1 (no forking) and
// grows with the core count.
func GenerateTaskCounts() []int {
	return taskCountsFor(runtime.NumCPU())
}

func taskCountsFor(numCPU int) []int {
	counts := []int{1}
	if numCPU <= 1 {
		return counts
	}
	for c := 2; c <= 8*numCPU; c *= 2 {
		counts = append(counts, c)
	}
	// The core count itself is rarely a power of two on servers.
	if numCPU&(numCPU-1) != 0 {
		counts = insertSorted(counts, numCPU)
		counts = insertSorted(counts, 2*numCPU)
	}
	return counts
}

// GenerateQuickTaskCounts returns the reduced set measured by
// auto-calibration at start-up.
func GenerateQuickTaskCounts() []int {
	return quickTaskCountsFor(runtime.NumCPU())
}

func quickTaskCountsFor(numCPU int) []int {
	if numCPU <= 1 {
		return []int{1}
	}
	return []int{numCPU, 2 * numCPU, 4 * numCPU}
}

// GenerateCutoffs returns the recursive leaf sizes a calibration measures
// for an n-element input. Cutoffs at or above n are left out since they
// make the recursion sequential.
func GenerateCutoffs(n int) []int {
	var cutoffs []int
	for c := 4096; c < n && c <= 1<<20; c *= 4 {
		cutoffs = append(cutoffs, c)
	}
	if len(cutoffs) == 0 {
		cutoffs = []int{max(n, 1)}
	}
	return cutoffs
}

func insertSorted(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return s
		}
		if x > v {
			s = append(s, 0)
			copy(s[i+1:], s[i:])
			s[i] = v
			return s
		}
	}
	return append(s, v)
}
