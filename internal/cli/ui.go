//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/progress"
)

const (
	// ProgressRefreshRate is how often the progress line is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text shown after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner followed by the average progress of all
// strategies and an ETA, until progressChan is closed. It calls wg.Done on
// return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numStrategies)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	suffix := func(avg float64, eta time.Duration) string {
		label := "Summing"
		if agg.IsMultiStrategy() {
			label = fmt.Sprintf("Benchmarking %d strategies", agg.NumStrategies())
		}
		return fmt.Sprintf(" %s %s", label, format.FormatProgressBarWithETA(avg, eta, ProgressBarWidth))
	}
	s.UpdateSuffix(suffix(0, 0))

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(suffix(1, 0))
				s.Stop()
				fmt.Fprintln(out)
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(suffix(agg.CalculateAverage(), agg.GetETA()))
		}
	}
}
