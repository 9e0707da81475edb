// Package cli renders the benchmark in a terminal: configuration banner,
// progress spinner, comparison table, quiet output, report files and shell
// completion scripts.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatReport].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path of the report (empty for no file output).
	OutputFile string
	// Quiet suppresses the confirmation message.
	Quiet bool
}

// ReportMeta describes the run a report belongs to.
type ReportMeta struct {
	RunID     string
	N         int
	Seed      uint64
	Repeats   int
	Tolerance float64
	Generated time.Time
}

// FormatReport renders results as a plain-text report with a commented
// header and one tab-aligned row per strategy.
func FormatReport(results []orchestration.StrategyResult, meta ReportMeta) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Reciprocal Sum Benchmark\n")
	fmt.Fprintf(&b, "# Run: %s\n", meta.RunID)
	fmt.Fprintf(&b, "# Generated: %s\n", meta.Generated.Format(time.RFC3339))
	fmt.Fprintf(&b, "# N: %d\n", meta.N)
	fmt.Fprintf(&b, "# Seed: %d\n", meta.Seed)
	fmt.Fprintf(&b, "# Repeats: %d\n", meta.Repeats)
	fmt.Fprintf(&b, "# Tolerance: %g\n\n", meta.Tolerance)

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\tmean_ns\truns\tsum\tabs_error\tspeedup\tcpu_percent\tstatus")
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "error: " + r.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%.3f\t%.1f\t%s\n",
			r.Name, r.Duration.Nanoseconds(), r.Runs, format.FormatSum(r.Sum),
			format.FormatAbsError(r.AbsError), r.Speedup, r.CPUPercent, status)
	}
	tw.Flush()
	return b.String()
}

// WriteReportToFile writes the report to config.OutputFile, creating its
// directory when needed. It does nothing when OutputFile is empty.
func WriteReportToFile(results []orchestration.StrategyResult, meta ReportMeta, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}
	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(config.OutputFile, []byte(FormatReport(results, meta)), 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// SaveReport writes the report and, unless quiet, confirms on out.
func SaveReport(out io.Writer, results []orchestration.StrategyResult, meta ReportMeta, config OutputConfig) error {
	if err := WriteReportToFile(results, meta, config); err != nil {
		return err
	}
	if config.OutputFile != "" && !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}

// FormatQuietResult formats the sum for scripts: full precision, one line.
func FormatQuietResult(sum float64) string {
	return fmt.Sprintf("%v", sum)
}

// DisplayQuietResult prints FormatQuietResult(sum) on its own line.
func DisplayQuietResult(out io.Writer, sum float64) {
	fmt.Fprintln(out, FormatQuietResult(sum))
}
