package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/recipsum/internal/format"
)

// HeaderModel is the title bar with the elapsed time.
type HeaderModel struct {
	start   time.Time
	end     time.Time
	version string
	width   int
}

// NewHeaderModel starts the elapsed timer.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{start: time.Now(), version: version}
}

// SetDone freezes the timer.
func (h *HeaderModel) SetDone() { h.end = time.Now() }

// Reset restarts the timer.
func (h *HeaderModel) Reset() {
	h.start = time.Now()
	h.end = time.Time{}
}

// SetWidth sets the rendering width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the running or frozen duration.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.end.IsZero() {
		return h.end.Sub(h.start)
	}
	return time.Since(h.start)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "Reciprocal Sum Benchmark"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	left := titleStyle.Render(title) + dimStyle.Render(" | ") +
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	gap := max(h.width-2-lipgloss.Width(left), 0)
	return headerStyle.Render(left + fmt.Sprintf("%*s", gap, ""))
}
