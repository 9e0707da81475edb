package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/progress"
	"github.com/agbru/recipsum/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress calls DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter with
// colorized terminal output.
type CLIResultPresenter struct {
	// Details adds CPU and allocation columns to the table.
	Details bool
}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

type column struct {
	header string
	cell   func(r orchestration.StrategyResult) string
	color  func() string
}

func (p CLIResultPresenter) columns() []column {
	cols := []column{
		{"Strategy", func(r orchestration.StrategyResult) string { return r.Name }, ui.ColorBlue},
		{"Mean time", func(r orchestration.StrategyResult) string { return durationCell(r) }, ui.ColorYellow},
		{"Sum", func(r orchestration.StrategyResult) string { return valueCell(r, format.FormatSum(r.Sum)) }, ui.ColorCyan},
		{"Abs error", func(r orchestration.StrategyResult) string { return valueCell(r, format.FormatAbsError(r.AbsError)) }, nil},
		{"Speedup", func(r orchestration.StrategyResult) string { return valueCell(r, format.FormatSpeedup(r.Speedup)) }, ui.ColorGreen},
	}
	if p.Details {
		cols = append(cols,
			column{"CPU", func(r orchestration.StrategyResult) string { return valueCell(r, fmt.Sprintf("%.0f%%", r.CPUPercent)) }, nil},
			column{"Alloc/run", func(r orchestration.StrategyResult) string { return valueCell(r, allocPerRun(r)) }, nil},
		)
	}
	return cols
}

func durationCell(r orchestration.StrategyResult) string {
	if r.Runs == 0 {
		return "-"
	}
	if r.Duration == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(r.Duration)
}

func valueCell(r orchestration.StrategyResult, s string) string {
	if r.Err != nil {
		return "-"
	}
	return s
}

func allocPerRun(r orchestration.StrategyResult) string {
	if r.Runs == 0 {
		return "-"
	}
	return format.FormatBytes(r.Alloc.Bytes / uint64(r.Runs))
}

// PresentComparisonTable prints one row per strategy. Padding is computed
// on the uncolored text so ANSI codes do not break alignment.
func (p CLIResultPresenter) PresentComparisonTable(results []orchestration.StrategyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	cols := p.columns()
	widths := make([]int, len(cols))
	cells := make([][]string, len(results))
	for i, c := range cols {
		widths[i] = len([]rune(c.header))
	}
	for j, r := range results {
		cells[j] = make([]string, len(cols))
		for i, c := range cols {
			cells[j][i] = c.cell(r)
			widths[i] = max(widths[i], len([]rune(cells[j][i])))
		}
	}

	var b strings.Builder
	for i, c := range cols {
		fmt.Fprintf(&b, "%s%s%s%s   ", ui.ColorUnderline(), c.header, ui.ColorReset(), padRight("", widths[i]-len([]rune(c.header))))
	}
	fmt.Fprintf(&b, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	for j, r := range results {
		for i, c := range cols {
			cell := cells[j][i]
			if c.color != nil {
				cell = ui.Colorize(c.color(), cell)
			}
			fmt.Fprintf(&b, "%s%s   ", cell, padRight("", widths[i]-len([]rune(cells[j][i]))))
		}
		b.WriteString(statusCell(r))
		b.WriteByte('\n')
	}
	fmt.Fprint(out, b.String())
}

func statusCell(r orchestration.StrategyResult) string {
	switch {
	case r.Err != nil:
		return fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), r.Err, ui.ColorReset())
	case r.Baseline:
		return fmt.Sprintf("%s✅ Baseline%s", ui.ColorGreen(), ui.ColorReset())
	default:
		return fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
	}
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// PresentSummary prints the sequential sum and the fastest strategy. In
// quiet mode it prints only the sequential sum.
func (p CLIResultPresenter) PresentSummary(baseline, fastest orchestration.StrategyResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, baseline.Sum)
		return
	}
	fmt.Fprintf(out, "\n--- Result ---\n")
	sum := format.FormatSum(baseline.Sum)
	if opts.Verbose {
		sum = fmt.Sprintf("%v", baseline.Sum)
	}
	fmt.Fprintf(out, "Sum of reciprocals over %s elements: %s%s%s\n",
		format.FormatInt(opts.N), ui.ColorGreen(), sum, ui.ColorReset())
	fmt.Fprintf(out, "Fastest: %s%s%s in %s%s%s (%s%s%s vs sequential)\n",
		ui.ColorBlue(), fastest.Description, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(fastest.Duration), ui.ColorReset(),
		ui.ColorGreen(), format.FormatSpeedup(fastest.Speedup), ui.ColorReset())
	if opts.Details {
		DisplayAllocStats(fastest.Alloc, fastest.Runs, out)
	}
}

// HandleError prints a status line for err and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, ui.ErrorColors{})
}

// DisplayAllocStats shows what the timed runs of one strategy allocated.
func DisplayAllocStats(alloc metrics.AllocDelta, runs int, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Total allocated: %s over %d runs\n", format.FormatBytes(alloc.Bytes), runs)
	fmt.Fprintf(out, "  Allocations:     %d objects\n", alloc.Objects)
	fmt.Fprintf(out, "  GC cycles:       %d\n", alloc.GCs)
}
