package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/progress"
)

// StrategyResult is the outcome of benchmarking one strategy.
type StrategyResult struct {
	// Name is the strategy identifier, e.g. "manytask".
	Name string
	// Description is the human-readable label of the strategy.
	Description string
	// Sum is the value returned by the verification run.
	Sum float64
	// Duration is the mean wall-clock time of a timed run.
	Duration time.Duration
	// Runs is the number of timed runs that completed.
	Runs int
	// Err is set when the strategy failed or the benchmark was interrupted.
	Err error
	// AbsError is |Sum - baseline sum|, filled in by AnalyzeResults.
	AbsError float64
	// Speedup is baseline duration / Duration, filled in by AnalyzeResults.
	Speedup float64
	// CPUPercent is the system-wide CPU utilization during the timed runs.
	CPUPercent float64
	// Alloc is what the timed runs allocated on the heap.
	Alloc metrics.AllocDelta
	// Baseline marks the sequential reference result.
	Baseline bool
}

// PresentationOptions configures how results are shown.
type PresentationOptions struct {
	N       int
	Verbose bool
	Details bool
	Quiet   bool
}

// ProgressReporter displays progress while strategies run. DisplayProgress
// is started on its own goroutine, must call wg.Done when progressChan is
// closed, and must keep draining the channel until then.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter discards progress. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ErrorHandler turns an error into an exit code, printing a status line.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// ResultPresenter renders benchmark results.
type ResultPresenter interface {
	// PresentComparisonTable shows one row per strategy.
	PresentComparisonTable(results []StrategyResult, out io.Writer)
	// PresentSummary shows the baseline sum and the fastest strategy.
	PresentSummary(baseline, fastest StrategyResult, opts PresentationOptions, out io.Writer)
	ErrorHandler
}

// MetricsRecorder receives measurements as they are taken.
type MetricsRecorder interface {
	RecordRun(strategy string, d time.Duration, err error)
	RecordOutcome(strategy string, speedup, absError, cpuPercent float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordRun(string, time.Duration, error)            {}
func (nopRecorder) RecordOutcome(string, float64, float64, float64) {}
