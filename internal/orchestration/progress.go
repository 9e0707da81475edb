package orchestration

import (
	"time"

	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/progress"
)

// ProgressAggregator folds per-strategy updates into an overall progress
// and ETA. The CLI spinner and the TUI both consume it.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numStrategies int
}

// NewProgressAggregator returns an aggregator for numStrategies strategies,
// or nil when numStrategies <= 0.
func NewProgressAggregator(numStrategies int) *ProgressAggregator {
	if numStrategies <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numStrategies),
		numStrategies: numStrategies,
	}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	StrategyIndex   int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records update and returns the new aggregate.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.StrategyIndex, update.Value)
	return AggregatedProgress{
		StrategyIndex:   update.StrategyIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current overall progress.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current estimate of the time remaining.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

// NumStrategies returns the number of tracked strategies.
func (a *ProgressAggregator) NumStrategies() int { return a.numStrategies }

// IsMultiStrategy reports whether more than one strategy is tracked.
func (a *ProgressAggregator) IsMultiStrategy() bool { return a.numStrategies > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
