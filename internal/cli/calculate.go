package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/recipsum/internal/config"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/memory"
	"github.com/agbru/recipsum/internal/reciprocal"
	"github.com/agbru/recipsum/internal/sysmon"
	"github.com/agbru/recipsum/internal/ui"
)

// PrintExecutionConfig shows the input size, the parallelism parameters
// and the machine the benchmark runs on.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Summing reciprocals of %s%s%s elements (seed %d), %s%d%s timed runs per strategy, timeout %s%s%s.\n",
		ui.ColorMagenta(), format.FormatInt(cfg.N), ui.ColorReset(), cfg.Seed,
		ui.ColorYellow(), cfg.Repeats, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())

	cpu := sysmon.CPUModel()
	if cpu == "" {
		cpu = "unknown CPU"
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical / %s%d%s physical cores (%s), Go %s%s%s.\n",
		ui.ColorCyan(), sysmon.LogicalCores(), ui.ColorReset(),
		ui.ColorCyan(), sysmon.PhysicalCores(), ui.ColorReset(), cpu,
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Parallelism: tasks=%s%d%s, workers=%s%d%s, recursive cutoff=%s%s%s.\n",
		ui.ColorCyan(), cfg.Tasks, ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), format.FormatInt(cfg.Cutoff), ui.ColorReset())
	fmt.Fprintf(out, "Estimated memory: %s.\n", memory.FormatMemoryEstimate(memory.EstimateMemoryUsage(cfg.N)))
}

// PrintExecutionMode announces whether one strategy or a comparison runs.
func PrintExecutionMode(strategies []reciprocal.Summer, out io.Writer) {
	var modeDesc string
	if len(strategies) > 1 {
		modeDesc = fmt.Sprintf("Comparison of %d strategies against the sequential baseline", len(strategies))
	} else if len(strategies) == 1 {
		modeDesc = fmt.Sprintf("Single strategy %s%s%s against the sequential baseline",
			ui.ColorGreen(), strategies[0].Description(), ui.ColorReset())
	} else {
		modeDesc = "No strategy selected"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
