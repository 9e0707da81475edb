package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agbru/recipsum/internal/calibration"
	"github.com/agbru/recipsum/internal/cli"
	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/input"
	"github.com/agbru/recipsum/internal/logging"
	"github.com/agbru/recipsum/internal/metrics"
	"github.com/agbru/recipsum/internal/orchestration"
	"github.com/agbru/recipsum/internal/parallel"
	"github.com/agbru/recipsum/internal/reciprocal"
	"github.com/agbru/recipsum/internal/tracing"
	"github.com/agbru/recipsum/internal/tui"
	"github.com/agbru/recipsum/internal/ui"
)

// Application is one invocation of the benchmark.
type Application struct {
	Config    config.AppConfig
	Factory   reciprocal.StrategyFactory
	Generator func(n int, seed uint64) []float64
	ErrWriter io.Writer

	logger  logging.Logger
	metrics *metrics.Metrics
	runID   string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory replaces the default strategy factory.
func WithFactory(f reciprocal.StrategyFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInputGenerator replaces input.Generate as the source of the summed
// array.
func WithInputGenerator(gen func(n int, seed uint64) []float64) AppOption {
	return func(a *Application) { a.Generator = gen }
}

// New parses args (program name first) and resolves the configuration,
// filling unset tuning parameters from a valid calibration profile or from
// hardware estimates.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "recipsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	names := reciprocal.NewDefaultFactory(reciprocal.Options{}).List()
	if app.Factory != nil {
		names = app.Factory.List()
	}
	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, names)
	if err != nil {
		return nil, err
	}

	if withProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = withProfile
	} else {
		cfg = config.ApplyAdaptiveDefaults(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the mode selected by the configuration and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	a.runID = uuid.NewString()
	a.logger = newLogger(a.ErrWriter, a.Config.LogLevel, a.runID)
	ui.InitTheme(a.Config.NoColor)

	shutdown, err := tracing.Setup(ctx, tracing.Config{
		ServiceName:    "recipsum",
		ServiceVersion: Version,
		Endpoint:       a.Config.OTLPEndpoint,
		Insecure:       a.Config.OTLPInsecure,
	}, a.logger)
	if err != nil {
		a.logger.Error("tracing disabled", err)
	} else {
		defer func() { _ = tracing.Shutdown(shutdown, a.logger) }()
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if a.Config.Calibrate {
		return calibration.RunCalibration(ctx, out, a.Config)
	}

	if a.Config.AutoCalibrate {
		if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out); ok {
			a.Config = updated
		}
	}
	a.Factory = a.factory()

	if code := a.validateMemoryBudget(out); code != apperrors.ExitSuccess {
		return code
	}

	a.metrics = metrics.New()
	a.metrics.SetRunParameters(a.Config.N, parallel.ResolveWorkers(a.Config.Workers))

	strategies := orchestration.GetStrategiesToRun(a.Config.Algo, a.Factory)
	data, err := a.generateInput()
	if err != nil {
		a.logger.Error("invalid input", err)
		fmt.Fprintf(a.ErrWriter, "Invalid input: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	a.logger.Debug("input generated",
		logging.Int("n", len(data)),
		logging.Uint64("seed", a.Config.Seed),
		logging.Int("strategies", len(strategies)))

	var code int
	if a.Config.TUI {
		code = tui.Run(ctx, strategies, data, a.Config, Version, a.execOptions()...)
	} else {
		code = a.runCalculate(ctx, strategies, data, out)
	}

	if a.Config.MetricsFile != "" {
		if err := a.metrics.WriteToTextfile(a.Config.MetricsFile); err != nil {
			a.logger.Error("failed to write metrics", err, logging.String("path", a.Config.MetricsFile))
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		}
	}
	return code
}

// factory returns the configured factory, or a default one built from the
// resolved tuning parameters.
func (a *Application) factory() reciprocal.StrategyFactory {
	if a.Factory != nil {
		return a.Factory
	}
	return reciprocal.NewDefaultFactory(reciprocal.Options{
		Tasks:   a.Config.Tasks,
		Workers: a.Config.Workers,
		Cutoff:  a.Config.Cutoff,
	})
}

// generateInput builds the summed array and rejects zero elements, whose
// reciprocal is infinite.
func (a *Application) generateInput() ([]float64, error) {
	gen := a.Generator
	if gen == nil {
		gen = input.Generate
	}
	data := gen(a.Config.N, a.Config.Seed)
	if input.ContainsZero(data) {
		return nil, apperrors.ValidationError{
			Field:   "input",
			Message: "every element must be non-zero",
			Cause:   input.ErrZeroElement,
		}
	}
	return data, nil
}

func (a *Application) execOptions() []orchestration.ExecOption {
	return []orchestration.ExecOption{
		orchestration.WithMetrics(a.metrics),
		orchestration.WithLogger(a.logger),
	}
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.factory().List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func newLogger(w io.Writer, level, runID string) logging.Logger {
	zl := zerolog.New(w).Level(logging.ParseLevel(level)).With().
		Timestamp().
		Str("component", "recipsum").
		Str("run_id", runID).
		Logger()
	return logging.NewZerologAdapter(zl)
}

// IsHelpError reports whether err comes from --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
