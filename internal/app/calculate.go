package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/recipsum/internal/cli"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/memory"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/reciprocal"
)

// runCalculate benchmarks strategies on data in the terminal and writes the
// optional report.
func (a *Application) runCalculate(ctx context.Context, strategies []reciprocal.Summer, data []float64, out io.Writer) int {
	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	} else {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(strategies, out)
	}

	results := orchestration.ExecuteStrategies(ctx, strategies, data, a.Config, reporter, progressOut, a.execOptions()...)
	code := orchestration.AnalyzeResults(results, a.Config, cli.CLIResultPresenter{Details: a.Config.Details}, out)
	orchestration.RecordOutcomes(results, a.metrics)

	if a.Config.OutputFile == "" {
		return code
	}
	meta := cli.ReportMeta{
		RunID:     a.runID,
		N:         a.Config.N,
		Seed:      a.Config.Seed,
		Repeats:   a.Config.Repeats,
		Tolerance: a.Config.Tolerance,
		Generated: time.Now(),
	}
	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
	if err := cli.SaveReport(out, results, meta, outputCfg); err != nil {
		a.logger.Error("failed to save report", err)
		fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
		if code == apperrors.ExitSuccess {
			return apperrors.ExitErrorGeneric
		}
	}
	return code
}

// validateMemoryBudget refuses to run when the estimated footprint exceeds
// --memory-limit.
func (a *Application) validateMemoryBudget(out io.Writer) int {
	if a.Config.MemoryLimit == "" {
		return apperrors.ExitSuccess
	}
	limit, err := memory.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Invalid --memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	est := memory.EstimateMemoryUsage(a.Config.N)
	if est.TotalBytes > limit {
		memErr := apperrors.MemoryError{Requested: est.TotalBytes, Limit: limit}
		a.logger.Error("memory budget exceeded", memErr)
		fmt.Fprintf(a.ErrWriter, "Estimated memory %s exceeds limit %s.\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
		return apperrors.ExitErrorConfig
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n", memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}
