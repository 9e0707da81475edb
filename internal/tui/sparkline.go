package tui

import "strings"

// sparkBlocks are the eight heights of a sparkline cell.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Series keeps the latest samples of a percentage in a ring.
type Series struct {
	data  []float64
	head  int
	count int
}

// NewSeries creates a series holding at most capacity samples.
func NewSeries(capacity int) *Series {
	if capacity <= 0 {
		capacity = 1
	}
	return &Series{data: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample when full.
func (s *Series) Push(v float64) {
	s.data[s.head] = v
	s.head = (s.head + 1) % len(s.data)
	if s.count < len(s.data) {
		s.count++
	}
}

// Len returns the number of samples held.
func (s *Series) Len() int { return s.count }

// Last returns the newest sample, or 0.
func (s *Series) Last() float64 {
	if s.count == 0 {
		return 0
	}
	return s.data[(s.head-1+len(s.data))%len(s.data)]
}

// Values returns the samples oldest first.
func (s *Series) Values() []float64 {
	out := make([]float64, s.count)
	start := (s.head - s.count + len(s.data)) % len(s.data)
	for i := range out {
		out[i] = s.data[(start+i)%len(s.data)]
	}
	return out
}

// Reset drops every sample.
func (s *Series) Reset() {
	s.head, s.count = 0, 0
}

// RenderSparkline draws the last width values, each clamped to 0..100, and
// left-pads with spaces so the newest sample sits at the right edge.
func RenderSparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(values)))
	for _, v := range values {
		v = min(max(v, 0), 100)
		b.WriteRune(sparkBlocks[int(v/100*7)])
	}
	return b.String()
}
