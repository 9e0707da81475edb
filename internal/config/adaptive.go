package config

import "github.com/agbru/recipsum/internal/parallel"

// minRecursiveCutoff keeps leaves large enough that forking stays cheap
// relative to the work of a leaf.
const minRecursiveCutoff = 4096

// ApplyAdaptiveDefaults fills Tasks, Workers and Cutoff when they are zero,
// from the hardware the process runs on. Values set by the user are kept.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = parallel.DefaultWorkers()
	}
	if cfg.Tasks == 0 {
		cfg.Tasks = EstimateOptimalTaskCount(cfg.Workers)
	}
	if cfg.Cutoff == 0 {
		cfg.Cutoff = EstimateOptimalCutoff(cfg.N, cfg.Workers)
	}
	return cfg
}

// EstimateOptimalTaskCount guesses the many-task chunk count for a pool of
// workers goroutines without running a benchmark. Up to four workers one
// chunk each is best; beyond that two chunks per worker absorb scheduling
// noise on busy machines.
func EstimateOptimalTaskCount(workers int) int {
	switch {
	case workers <= 1:
		return 1
	case workers <= 4:
		return workers
	default:
		return 2 * workers
	}
}

// EstimateOptimalCutoff guesses the recursive leaf size for n elements so
// that the recursion produces about four leaves per worker.
func EstimateOptimalCutoff(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	cutoff := n / (4 * workers)
	return max(cutoff, minRecursiveCutoff)
}
