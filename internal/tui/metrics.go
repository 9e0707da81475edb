package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/recipsum/internal/format"
)

// historySize is the number of system samples kept for the sparklines.
const historySize = 120

// MetricsModel is the system panel: Go heap, GC and goroutines, plus CPU
// and memory sparklines.
type MetricsModel struct {
	heapAlloc    uint64
	heapSys      uint64
	numGC        uint32
	numGoroutine int
	cpu          *Series
	mem          *Series
	eta          time.Duration
	width        int
}

// NewMetricsModel creates an empty panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu: NewSeries(historySize),
		mem: NewSeries(historySize),
	}
}

// SetWidth sets the rendering width.
func (m *MetricsModel) SetWidth(w int) { m.width = w }

// UpdateMemStats records a runtime sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.heapAlloc = msg.HeapAlloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats records a system sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
}

// SetETA records the estimated remaining time.
func (m *MetricsModel) SetETA(eta time.Duration) { m.eta = eta }

// Reset clears the history.
func (m *MetricsModel) Reset() {
	m.cpu.Reset()
	m.mem.Reset()
	m.eta = 0
}

// View renders the panel.
func (m MetricsModel) View() string {
	sparkWidth := max(m.width-24, 8)

	var b strings.Builder
	b.WriteString(titleStyle.Render("System"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Heap:      "),
		valueStyle.Render(format.FormatBytes(m.heapAlloc)+" / "+format.FormatBytes(m.heapSys)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("GC cycles: "), valueStyle.Render(fmt.Sprintf("%d", m.numGC)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Goroutines:"), valueStyle.Render(fmt.Sprintf("%d", m.numGoroutine)))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("ETA:       "), valueStyle.Render(format.FormatETA(m.eta)))
	fmt.Fprintf(&b, "%s %5.1f%% %s\n", labelStyle.Render("CPU:       "), m.cpu.Last(),
		accentStyle.Render(RenderSparkline(m.cpu.Values(), sparkWidth)))
	fmt.Fprintf(&b, "%s %5.1f%% %s", labelStyle.Render("Mem:       "), m.mem.Last(),
		accentStyle.Render(RenderSparkline(m.mem.Values(), sparkWidth)))

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(b.String())
}
