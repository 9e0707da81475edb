package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/recipsum/internal/config"
	"github.com/agbru/recipsum/internal/format"
	"github.com/agbru/recipsum/internal/ui"
)

// printCalibrationResults prints one row per candidate, marking best.
func printCalibrationResults(out io.Writer, label string, results []calibrationResult, best int) {
	fmt.Fprintf(out, "\n--- %s ---\n", label)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %s%-10s%s │ %sBest Time%s\n", ui.ColorUnderline(), label, ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 11), strings.Repeat("─", 22))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Value == best && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-10s%s │ %s%s%s%s\n", ui.ColorCyan(), format.FormatInt(res.Value), ui.ColorReset(),
			ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sAuto-calibration%s: tasks=%s%d%s, workers=%s%d%s, cutoff=%s%d%s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Tasks, ui.ColorReset(),
		ui.ColorYellow(), cfg.Workers, ui.ColorReset(),
		ui.ColorYellow(), cfg.Cutoff, ui.ColorReset())
}
