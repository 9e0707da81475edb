package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/progress"
)

// sender is the part of tea.Program the bridge uses.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is shared by every copy of the model so the benchmark
// goroutine can reach the program.
type programRef struct {
	mu     sync.RWMutex
	target sender
}

// SetProgram sets the destination of Send.
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.target = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.target
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter by turning
// updates into ProgressMsg tagged with its generation.
type TUIProgressReporter struct {
	ref *programRef
	gen uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress forwards every update until progressChan is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			StrategyIndex:   ap.StrategyIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
			Generation:      t.gen,
		})
	}
	t.ref.Send(ProgressDoneMsg{Generation: t.gen})
}

// TUIResultPresenter implements orchestration.ResultPresenter by sending
// messages instead of writing text. Every message carries gen so the model
// can drop output of a canceled generation.
type TUIResultPresenter struct {
	ref *programRef
	gen uint64
}

var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentComparisonTable sends a copy of results.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, _ io.Writer) {
	t.ref.Send(ResultsMsg{
		Results:    append([]orchestration.StrategyResult(nil), results...),
		Generation: t.gen,
	})
}

// PresentSummary sends the baseline and fastest results.
func (t *TUIResultPresenter) PresentSummary(baseline, fastest orchestration.StrategyResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(SummaryMsg{Baseline: baseline, Fastest: fastest, Generation: t.gen})
}

// HandleError sends err to the dashboard and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration, Generation: t.gen})
	return apperrors.HandleCalculationError(err, duration, io.Discard, nil)
}
