package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	// maxETA caps estimates produced from very slow rates.
	maxETA = 24 * time.Hour
	// rateSmoothing is the weight of the newest sample in the exponential
	// moving average of the progress rate.
	rateSmoothing = 0.3
)

// ProgressState tracks the progress of several strategies and averages it.
type ProgressState struct {
	progresses    []float64
	numStrategies int
}

// NewProgressState returns a state tracking numStrategies strategies.
func NewProgressState(numStrategies int) *ProgressState {
	if numStrategies < 0 {
		numStrategies = 0
	}
	return &ProgressState{
		progresses:    make([]float64, numStrategies),
		numStrategies: numStrategies,
	}
}

// Update records value, clamped to [0, 1], for the strategy at index.
// Out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= len(ps.progresses) {
		return
	}
	ps.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress over all strategies.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numStrategies == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numStrategies)
}

// ProgressWithETA extends ProgressState with a smoothed rate estimate.
// It is safe for concurrent use.
type ProgressWithETA struct {
	*ProgressState
	mu            sync.Mutex
	numStrategies int
	startTime     time.Time
	lastUpdate    time.Time
	lastProgress  float64
	progressRate  float64 // fraction per second
}

// NewProgressWithETA returns a tracker for numStrategies strategies.
func NewProgressWithETA(numStrategies int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numStrategies),
		numStrategies: numStrategies,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the new average and
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ProgressState.Update(index, value)
	avg := p.ProgressState.CalculateAverage()

	now := time.Now()
	if dt := now.Sub(p.lastUpdate).Seconds(); dt > 0 && avg > p.lastProgress {
		sample := (avg - p.lastProgress) / dt
		if p.progressRate == 0 {
			p.progressRate = sample
		} else {
			p.progressRate = rateSmoothing*sample + (1-rateSmoothing)*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}
	return avg, p.etaLocked(avg)
}

// Update records a progress value without refreshing the rate estimate.
func (p *ProgressWithETA) Update(index int, value float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ProgressState.Update(index, value)
}

// CalculateAverage returns the current average progress.
func (p *ProgressWithETA) CalculateAverage() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ProgressState.CalculateAverage()
}

// GetETA returns the current estimate without recording an update.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.ProgressState.CalculateAverage())
}

// Elapsed returns the time since the tracker was created.
func (p *ProgressWithETA) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1 {
		return 0
	}
	seconds := (1 - avg) / p.progressRate
	eta := time.Duration(seconds * float64(time.Second))
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders progress as a bar of length cells.
func ProgressBar(progress float64, length int) string {
	count := int(clamp01(progress) * float64(length))
	var b strings.Builder
	b.Grow(length * 3)
	for i := range length {
		if i < count {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA: 3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
