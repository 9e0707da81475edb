package tui

import (
	"time"

	"github.com/agbru/recipsum/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	StrategyIndex   int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg is sent when the progress channel is closed.
type ProgressDoneMsg struct {
	Generation uint64
}

// ResultsMsg carries the analyzed results, sorted by mean time.
type ResultsMsg struct {
	Results    []orchestration.StrategyResult
	Generation uint64
}

// SummaryMsg carries the baseline and fastest results of a successful run.
type SummaryMsg struct {
	Baseline   orchestration.StrategyResult
	Fastest    orchestration.StrategyResult
	Generation uint64
}

// ErrorMsg reports a benchmark failure.
type ErrorMsg struct {
	Err        error
	Duration   time.Duration
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg is a Go runtime memory sample.
type MemStatsMsg struct {
	HeapAlloc    uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg is a system-wide sample from sysmon.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// BenchmarkCompleteMsg is sent when a benchmark generation finishes.
type BenchmarkCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the context of a generation ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
