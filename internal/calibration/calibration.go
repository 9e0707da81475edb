// Package calibration measures the many-task chunk count and recursive
// cutoff that run fastest on the current machine and persists them as a
// profile reused by later invocations.
package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/input"
	"github.com/agbru/recipsum/internal/parallel"
	"github.com/agbru/recipsum/internal/reciprocal"
	"github.com/agbru/recipsum/internal/ui"
)

const (
	// CalibrationN is the input length of a full calibration.
	CalibrationN = 4_000_000
	// QuickCalibrationN is the input length of auto-calibration.
	QuickCalibrationN = 500_000

	fullRounds  = 5
	quickRounds = 3
)

type calibrationResult struct {
	Value    int
	Duration time.Duration
	Err      error
}

type sumFunc func(in []float64, value int) (float64, error)

// measure returns the fastest of rounds runs of fn.
func measure(ctx context.Context, in []float64, value, rounds int, fn sumFunc) calibrationResult {
	res := calibrationResult{Value: value}
	for range rounds {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		start := time.Now()
		if _, err := fn(in, value); err != nil {
			res.Err = err
			return res
		}
		if d := time.Since(start); res.Duration == 0 || d < res.Duration {
			res.Duration = d
		}
	}
	return res
}

func sweep(ctx context.Context, in []float64, candidates []int, rounds int, fn sumFunc) ([]calibrationResult, int, error) {
	results := make([]calibrationResult, 0, len(candidates))
	best, bestDur := 0, time.Duration(0)
	var lastErr error
	for _, c := range candidates {
		r := measure(ctx, in, c, rounds, fn)
		results = append(results, r)
		if apperrors.IsContextError(r.Err) {
			return results, best, r.Err
		}
		if r.Err != nil {
			lastErr = r.Err
		}
		if r.Err == nil && (best == 0 || r.Duration < bestDur) {
			best, bestDur = c, r.Duration
		}
	}
	if best == 0 {
		return results, 0, fmt.Errorf("no candidate completed: %w", lastErr)
	}
	return results, best, nil
}

func manyTask(workers int) sumFunc {
	return func(in []float64, tasks int) (float64, error) {
		return reciprocal.ManyTaskSumWithWorkers(in, tasks, workers)
	}
}

func recursive(in []float64, cutoff int) (float64, error) {
	return reciprocal.RecursiveSum(in, cutoff)
}

// RunCalibration measures every candidate task count and cutoff on a
// CalibrationN-element input, prints both tables and saves the winners to
// the profile path of cfg. It returns a process exit code.
func RunCalibration(ctx context.Context, out io.Writer, cfg config.AppConfig) int {
	start := time.Now()
	workers := parallel.ResolveWorkers(cfg.Workers)
	in := input.Generate(CalibrationN, cfg.Seed)

	fmt.Fprintf(out, "%sCalibration%s on %d elements with %d workers...\n",
		ui.ColorBold(), ui.ColorReset(), CalibrationN, workers)

	taskResults, bestTasks, err := sweep(ctx, in, GenerateTaskCounts(), fullRounds, manyTask(workers))
	printCalibrationResults(out, "Tasks", taskResults, bestTasks)
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), out, ui.ErrorColors{})
	}

	cutoffResults, bestCutoff, err := sweep(ctx, in, GenerateCutoffs(CalibrationN), fullRounds, recursive)
	printCalibrationResults(out, "Cutoff", cutoffResults, bestCutoff)
	if err != nil {
		return apperrors.HandleCalculationError(err, time.Since(start), out, ui.ErrorColors{})
	}

	p := NewProfile()
	p.OptimalTaskCount = bestTasks
	p.OptimalCutoff = bestCutoff
	p.Workers = workers
	p.CalibrationN = CalibrationN
	p.CalibrationTime = time.Since(start).Round(time.Millisecond).String()

	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := p.SaveProfile(path); err != nil {
		fmt.Fprintf(out, "%sWarning:%s could not save profile: %v\n", ui.ColorYellow(), ui.ColorReset(), err)
	} else {
		fmt.Fprintf(out, "\nProfile saved to %s\n", path)
	}
	fmt.Fprintf(out, "\n%s", p)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick sweep and applies the winners to the zero
// Tasks and Cutoff of cfg. The profile is left untouched. It returns false
// when the sweep could not finish.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) (config.AppConfig, bool) {
	workers := parallel.ResolveWorkers(cfg.Workers)
	in := input.Generate(QuickCalibrationN, cfg.Seed)

	_, bestTasks, err := sweep(ctx, in, GenerateQuickTaskCounts(), quickRounds, manyTask(workers))
	if err != nil {
		return cfg, false
	}
	_, bestCutoff, err := sweep(ctx, in, GenerateCutoffs(QuickCalibrationN), quickRounds, recursive)
	if err != nil {
		return cfg, false
	}

	if cfg.Tasks == 0 {
		cfg.Tasks = bestTasks
	}
	if cfg.Workers == 0 {
		cfg.Workers = workers
	}
	if cfg.Cutoff == 0 {
		cfg.Cutoff = bestCutoff
	}
	if !cfg.Quiet {
		printCalibrationOutput(cfg, out)
	}
	return cfg, true
}
