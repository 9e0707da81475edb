package config

import (
	"testing"

	"github.com/agbru/recipsum/internal/parallel"
)

func TestEstimateOptimalTaskCount(t *testing.T) {
	t.Parallel()
	tests := []struct{ workers, want int }{
		{0, 1},
		{1, 1},
		{2, 2},
		{4, 4},
		{8, 16},
		{64, 128},
	}
	for _, tt := range tests {
		if got := EstimateOptimalTaskCount(tt.workers); got != tt.want {
			t.Errorf("EstimateOptimalTaskCount(%d) = %d, want %d", tt.workers, got, tt.want)
		}
	}
}

func TestEstimateOptimalCutoff(t *testing.T) {
	t.Parallel()
	tests := []struct{ n, workers, want int }{
		{100, 4, minRecursiveCutoff},
		{2_000_000, 4, 125_000},
		{2_000_000, 0, 500_000},
	}
	for _, tt := range tests {
		if got := EstimateOptimalCutoff(tt.n, tt.workers); got != tt.want {
			t.Errorf("EstimateOptimalCutoff(%d, %d) = %d, want %d", tt.n, tt.workers, got, tt.want)
		}
	}
}

func TestApplyAdaptiveDefaults(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveDefaults(AppConfig{N: 1_000_000})
	if cfg.Workers != parallel.DefaultWorkers() {
		t.Errorf("Workers = %d, want %d", cfg.Workers, parallel.DefaultWorkers())
	}
	if cfg.Tasks != EstimateOptimalTaskCount(cfg.Workers) || cfg.Cutoff < minRecursiveCutoff {
		t.Errorf("adaptive defaults not applied: %+v", cfg)
	}

	kept := ApplyAdaptiveDefaults(AppConfig{N: 10, Tasks: 3, Workers: 2, Cutoff: 9})
	if kept.Tasks != 3 || kept.Workers != 2 || kept.Cutoff != 9 {
		t.Errorf("user values should be kept: %+v", kept)
	}
}
