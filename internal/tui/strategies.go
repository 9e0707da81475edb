package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/reciprocal"
)

const nameColumnWidth = 12

type strategyRow struct {
	name        string
	description string
	progress    float64
	result      *orchestration.StrategyResult
}

// StrategiesModel is the panel with one progress bar per strategy and,
// once analyzed, the result table.
type StrategiesModel struct {
	rows     []strategyRow
	bar      progress.Model
	selected int
	average  float64
	summary  *SummaryMsg
	err      error
	width    int
}

// NewStrategiesModel lists the strategies in run order, the sequential
// baseline first.
func NewStrategiesModel(strategies []reciprocal.Summer) StrategiesModel {
	m := StrategiesModel{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	var baseline reciprocal.Summer = reciprocal.Sequential{}
	for _, s := range strategies {
		if s.Name() == reciprocal.NameSequential {
			baseline = s
			continue
		}
		m.rows = append(m.rows, strategyRow{name: s.Name(), description: s.Description()})
	}
	m.rows = append([]strategyRow{{name: baseline.Name(), description: baseline.Description()}}, m.rows...)
	return m
}

// SetWidth resizes the panel and its bars.
func (m *StrategiesModel) SetWidth(w int) {
	m.width = w
	m.bar.Width = max(w-nameColumnWidth-14, 10)
}

// SetProgress records the progress of the strategy at index.
func (m *StrategiesModel) SetProgress(index int, value, average float64) {
	if index >= 0 && index < len(m.rows) {
		m.rows[index].progress = value
	}
	m.average = average
}

// SetResults attaches each result to its row by name.
func (m *StrategiesModel) SetResults(results []orchestration.StrategyResult) {
	for i := range results {
		for j := range m.rows {
			if m.rows[j].name == results[i].Name {
				r := results[i]
				m.rows[j].result = &r
				m.rows[j].progress = 1
			}
		}
	}
}

// SetSummary stores the final summary.
func (m *StrategiesModel) SetSummary(s SummaryMsg) { m.summary = &s }

// SetError stores a failure.
func (m *StrategiesModel) SetError(err error) { m.err = err }

// Move shifts the selection by delta, wrapping around.
func (m *StrategiesModel) Move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.rows)) % len(m.rows)
}

// Selected returns the selected strategy name.
func (m StrategiesModel) Selected() string {
	if len(m.rows) == 0 {
		return ""
	}
	return m.rows[m.selected].name
}

// Average returns the last average progress.
func (m StrategiesModel) Average() float64 { return m.average }

// Reset clears progress and results.
func (m *StrategiesModel) Reset() {
	for i := range m.rows {
		m.rows[i].progress = 0
		m.rows[i].result = nil
	}
	m.average = 0
	m.summary = nil
	m.err = nil
}

// View renders the panel.
func (m StrategiesModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Strategies"))
	b.WriteString("\n")
	for i, row := range m.rows {
		cursor := "  "
		if i == m.selected {
			cursor = accentStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-*s %s %s\n", cursor, nameColumnWidth, row.name,
			m.bar.ViewAs(row.progress), statusCell(row))
	}

	if m.hasResults() {
		b.WriteString("\n")
		b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("  %-*s %12s %10s %10s", nameColumnWidth, "Strategy", "Mean time", "Abs error", "Speedup")))
		b.WriteString("\n")
		for _, row := range m.rows {
			if row.result == nil || row.result.Err != nil {
				continue
			}
			r := row.result
			fmt.Fprintf(&b, "  %-*s %12s %10s %10s\n", nameColumnWidth, r.Name,
				format.FormatExecutionDuration(r.Duration), format.FormatAbsError(r.AbsError), format.FormatSpeedup(r.Speedup))
		}
	}

	if sel := m.selectedRow(); sel != nil {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(sel.description))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.summary != nil:
		b.WriteString(successStyle.Render(fmt.Sprintf("Sum %s  fastest %s (%s)",
			format.FormatSum(m.summary.Baseline.Sum), m.summary.Fastest.Name, format.FormatSpeedup(m.summary.Fastest.Speedup))))
	}

	style := panelStyle
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m StrategiesModel) hasResults() bool {
	for _, row := range m.rows {
		if row.result != nil {
			return true
		}
	}
	return false
}

func (m StrategiesModel) selectedRow() *strategyRow {
	if len(m.rows) == 0 {
		return nil
	}
	return &m.rows[m.selected]
}

func statusCell(row strategyRow) string {
	switch {
	case row.result != nil && row.result.Err != nil:
		return errorStyle.Render("failed")
	case row.result != nil || row.progress >= 1:
		return successStyle.Render("done")
	default:
		return lipgloss.NewStyle().Render(fmt.Sprintf("%3.0f%%", row.progress*100))
	}
}
