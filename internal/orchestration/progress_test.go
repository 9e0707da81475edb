package orchestration

import (
	"testing"

	"github.com/agbru/recipsum/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()
	if NewProgressAggregator(0) != nil || NewProgressAggregator(-1) != nil {
		t.Error("non-positive counts should yield nil")
	}
	a := NewProgressAggregator(3)
	if a.NumStrategies() != 3 || !a.IsMultiStrategy() {
		t.Errorf("unexpected aggregator state: %d strategies", a.NumStrategies())
	}
	if NewProgressAggregator(1).IsMultiStrategy() {
		t.Error("single strategy should not be multi")
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	a := NewProgressAggregator(2)
	got := a.Update(progress.ProgressUpdate{StrategyIndex: 0, Value: 0.5})
	if got.StrategyIndex != 0 || got.Value != 0.5 || got.AverageProgress != 0.25 {
		t.Errorf("Update = %+v", got)
	}
	a.Update(progress.ProgressUpdate{StrategyIndex: 1, Value: 1})
	if avg := a.CalculateAverage(); avg != 0.75 {
		t.Errorf("CalculateAverage = %v, want 0.75", avg)
	}
	if eta := a.GetETA(); eta < 0 {
		t.Errorf("GetETA = %v", eta)
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.ProgressUpdate, 3)
	ch <- progress.ProgressUpdate{}
	ch <- progress.ProgressUpdate{}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Error("channel should be drained")
	}
}
