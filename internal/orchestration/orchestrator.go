package orchestration

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/logging"
	"github.com/agbru/recipsum/internal/memory"
	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/progress"
	"github.com/agbru/recipsum/internal/reciprocal"
	"github.com/agbru/recipsum/internal/sysmon"
	"github.com/agbru/recipsum/internal/tracing"
)

// ProgressBufferMultiplier sizes the progress channel per strategy so that
// a slow display rarely causes an update to be dropped.
const ProgressBufferMultiplier = 5

type executor struct {
	tracer   trace.Tracer
	recorder MetricsRecorder
	logger   logging.Logger
}

// ExecOption customizes ExecuteStrategies.
type ExecOption func(*executor)

// WithMetrics sends every run and outcome to r.
func WithMetrics(r MetricsRecorder) ExecOption {
	return func(e *executor) {
		if r != nil {
			e.recorder = r
		}
	}
}

// WithLogger logs strategy completion to l.
func WithLogger(l logging.Logger) ExecOption {
	return func(e *executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTracerProvider creates spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) ExecOption {
	return func(e *executor) { e.tracer = tp.Tracer(tracing.InstrumentationName) }
}

// ExecuteStrategies benchmarks each strategy on input, one strategy after
// another. The sequential strategy always runs first and serves as the
// baseline; it is added when strategies does not contain it.
//
// Each strategy gets one verification run whose sum is kept, then
// cfg.Repeats timed runs. Cancellation of ctx is checked between runs; the
// interrupted strategy and those after it report ctx.Err().
func ExecuteStrategies(ctx context.Context, strategies []reciprocal.Summer, input []float64, cfg config.AppConfig, reporter ProgressReporter, out io.Writer, opts ...ExecOption) []StrategyResult {
	e := &executor{
		tracer:   otel.Tracer(tracing.InstrumentationName),
		recorder: nopRecorder{},
		logger:   logging.NewZerologAdapter(zerolog.Nop()),
	}
	for _, opt := range opts {
		opt(e)
	}

	ctx, span := e.tracer.Start(ctx, "benchmark", trace.WithAttributes(
		attribute.Int("input.length", len(input)),
		attribute.Int("repeats", cfg.Repeats),
		attribute.Int("strategies", len(strategies)),
	))
	defer span.End()

	ordered := withBaseline(strategies)
	results := make([]StrategyResult, len(ordered))
	progressChan := make(chan progress.ProgressUpdate, len(ordered)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(ordered), out)

	gc := memory.NewGCController(cfg.GCMode, len(input))
	if zl, ok := e.logger.(*logging.ZerologAdapter); ok {
		gc.SetLogger(zl.Zerolog())
	}

	for i, s := range ordered {
		report := progress.ChannelCallback(progressChan, i)
		if err := ctx.Err(); err != nil {
			results[i] = StrategyResult{Name: s.Name(), Description: s.Description(), Err: err}
			report(1)
			continue
		}
		results[i] = e.runStrategy(ctx, s, input, cfg.Repeats, gc, report)
		results[i].Baseline = i == 0
	}

	close(progressChan)
	displayWg.Wait()
	return results
}

func (e *executor) runStrategy(ctx context.Context, s reciprocal.Summer, input []float64, repeats int, gc *memory.GCController, report progress.ProgressCallback) StrategyResult {
	name := s.Name()
	_, span := e.tracer.Start(ctx, "strategy "+name, trace.WithAttributes(attribute.String("strategy", name)))
	defer span.End()
	defer report(1)

	res := StrategyResult{Name: name, Description: s.Description()}
	sum, err := s.Sum(input)
	if err != nil {
		res.Err = err
		e.recorder.RecordRun(name, 0, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Error("strategy failed", err, logging.String("strategy", name))
		return res
	}
	res.Sum = sum

	gc.Begin()
	meter := sysmon.StartCPUMeter()
	memBefore := metrics.ReadMemory()
	var total time.Duration
	for r := range repeats {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		start := time.Now()
		_, err := s.Sum(input)
		elapsed := time.Since(start)
		e.recorder.RecordRun(name, elapsed, err)
		if err != nil {
			res.Err = err
			break
		}
		total += elapsed
		res.Runs++
		report(float64(r+1) / float64(repeats))
	}
	res.CPUPercent = meter.Percent()
	res.Alloc = metrics.ReadMemory().Since(memBefore)
	gc.End()

	if res.Runs > 0 {
		res.Duration = total / time.Duration(res.Runs)
	}

	span.SetAttributes(
		attribute.Float64("sum", res.Sum),
		attribute.Int("runs", res.Runs),
		attribute.Int64("mean_ns", res.Duration.Nanoseconds()),
		attribute.Float64("cpu_percent", res.CPUPercent),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	e.logger.Info("strategy finished",
		logging.String("strategy", name),
		logging.Int("runs", res.Runs),
		logging.Duration("mean", res.Duration),
		logging.Float64("sum", res.Sum))
	return res
}

// AnalyzeResults compares every result with the sequential baseline, fills
// in AbsError and Speedup, sorts results by mean duration (failures last),
// and presents them. The returned exit code reports, in this order: an
// interrupted benchmark, all strategies failing, a sum outside
// cfg.Tolerance, a parallel strategy below cfg.MinSpeedup.
func AnalyzeResults(results []StrategyResult, cfg config.AppConfig, presenter ResultPresenter, out io.Writer) int {
	var baseline *StrategyResult
	for i := range results {
		if results[i].Baseline && results[i].Err == nil {
			baseline = &results[i]
		}
	}
	if baseline != nil {
		ref := *baseline
		for i := range results {
			if results[i].Err != nil {
				continue
			}
			results[i].AbsError = math.Abs(results[i].Sum - ref.Sum)
			if results[i].Duration > 0 {
				results[i].Speedup = float64(ref.Duration) / float64(results[i].Duration)
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var (
		firstErr  error
		ctxErr    error
		successes int
		fastest   *StrategyResult
		ref       StrategyResult
	)
	for i := range results {
		r := &results[i]
		if r.Baseline {
			ref = *r
		}
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			if ctxErr == nil && apperrors.IsContextError(r.Err) {
				ctxErr = r.Err
			}
			continue
		}
		successes++
		if fastest == nil {
			fastest = r
		}
	}

	opts := PresentationOptions{N: cfg.N, Verbose: cfg.Verbose, Details: cfg.Details, Quiet: cfg.Quiet}
	if !cfg.Quiet {
		presenter.PresentComparisonTable(results, out)
	}

	if ctxErr != nil {
		return presenter.HandleError(ctxErr, 0, out)
	}
	if successes == 0 || ref.Err != nil {
		if !cfg.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No baseline could be computed.\n")
		}
		return presenter.HandleError(firstErr, 0, out)
	}

	for _, r := range results {
		if r.Err == nil && r.AbsError > cfg.Tolerance {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s differs from the sequential sum by %g (tolerance %g).\n",
				r.Name, r.AbsError, cfg.Tolerance)
			return apperrors.ExitErrorMismatch
		}
	}

	if cfg.MinSpeedup > 0 {
		for _, r := range results {
			if r.Err == nil && !r.Baseline && r.Speedup < cfg.MinSpeedup {
				return presenter.HandleError(apperrors.SpeedupError{
					Strategy: r.Name, Measured: r.Speedup, Minimum: cfg.MinSpeedup,
				}, 0, out)
			}
		}
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. All results are within %g of the sequential sum.\n", cfg.Tolerance)
	}
	presenter.PresentSummary(ref, *fastest, opts, out)
	return apperrors.ExitSuccess
}

// RecordOutcomes forwards the analyzed results of successful strategies to r.
func RecordOutcomes(results []StrategyResult, r MetricsRecorder) {
	for _, res := range results {
		if res.Err == nil {
			r.RecordOutcome(res.Name, res.Speedup, res.AbsError, res.CPUPercent)
		}
	}
}
