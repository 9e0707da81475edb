// Package config parses and validates the command-line configuration of the
// benchmark. Values resolve in this order, highest priority first: command
// line flags, RECIPSUM_* environment variables, a cached calibration profile,
// hardware estimates, static defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/recipsum/internal/errors"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "RECIPSUM_"

// Static defaults.
const (
	DefaultN         = 2_000_000
	DefaultAlgo      = "all"
	DefaultRepeats   = 60
	DefaultSeed      = 314
	DefaultTolerance = 1e-2
	DefaultTimeout   = 5 * time.Minute
	DefaultGCMode    = "auto"
	DefaultLogLevel  = "warn"
	algoAll          = "all"
	algoTwoWay       = "twoway"
	completionShells = "bash, zsh, fish"
)

// GCModes lists the accepted --gc values.
var GCModes = []string{"auto", "aggressive", "disabled"}

// AppConfig holds the resolved configuration of one invocation.
type AppConfig struct {
	// N is the length of the generated input array.
	N int
	// Algo is a strategy name or "all".
	Algo string
	// Tasks is the chunk count of the many-task strategy. 0 means auto.
	Tasks int
	// Workers bounds the goroutines running tasks. 0 means auto.
	Workers int
	// Cutoff is the leaf size of the recursive strategy. 0 means auto.
	Cutoff int
	// Repeats is the number of timed runs per strategy.
	Repeats int
	// Seed seeds the input generator.
	Seed uint64
	// Tolerance is the accepted absolute error against the sequential sum.
	Tolerance float64
	// MinSpeedup, when positive, fails parallel strategies slower than it.
	MinSpeedup float64
	Timeout    time.Duration

	Verbose bool
	Details bool
	Quiet   bool

	OutputFile  string
	MetricsFile string

	Calibrate          bool
	AutoCalibrate      bool
	CalibrationProfile string

	MemoryLimit string
	GCMode      string

	TUI        bool
	NoColor    bool
	LogLevel   string
	Completion string

	// OTLPEndpoint is host:port of an OTLP/HTTP trace collector. Empty
	// disables trace export.
	OTLPEndpoint string
	OTLPInsecure bool
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies environment overrides for flags not given explicitly, and
// validates the result. Usage and errors are written to errWriter.
// With --help the returned error wraps flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	algoHelp := fmt.Sprintf("Strategy to run: %s, or 'all'.", strings.Join(availableAlgos, ", "))

	fs.IntVar(&cfg.N, "n", DefaultN, "Length of the input array.")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&cfg.Tasks, "tasks", 0, "Number of chunks for the many-task strategy (0 = auto).")
	fs.IntVar(&cfg.Workers, "workers", 0, "Maximum concurrent workers (0 = one per available CPU).")
	fs.IntVar(&cfg.Cutoff, "cutoff", 0, "Leaf size of the recursive strategy (0 = auto).")
	fs.IntVar(&cfg.Repeats, "repeats", DefaultRepeats, "Timed runs per strategy.")
	fs.Uint64Var(&cfg.Seed, "seed", DefaultSeed, "Seed of the input generator.")
	fs.Float64Var(&cfg.Tolerance, "tolerance", DefaultTolerance, "Accepted absolute error against the sequential sum.")
	fs.Float64Var(&cfg.MinSpeedup, "min-speedup", 0, "Fail when a parallel strategy is slower than this speedup (0 = off).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole benchmark.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output.")
	fs.BoolVar(&cfg.Details, "d", false, "Show per-strategy details (shorthand).")
	fs.BoolVar(&cfg.Details, "details", false, "Show per-strategy details: chunking, workers, CPU usage.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode: print only the sequential sum.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the report to a file (shorthand).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the report to a file.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure the fastest task count and save a profile.")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration at start-up.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "Refuse to run if the input would exceed this size (e.g. 512M, 2G).")
	fs.StringVar(&cfg.GCMode, "gc", DefaultGCMode, "Garbage collector control during timed runs: auto, aggressive, disabled.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show the interactive dashboard.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error.")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", "", "Export trace spans to this OTLP/HTTP collector (host:port).")
	fs.BoolVar(&cfg.OTLPInsecure, "otlp-insecure", false, "Use plain HTTP for the OTLP collector.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script ("+completionShells+").")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)
	cfg.Algo = strings.ToLower(strings.TrimSpace(cfg.Algo))

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks semantic constraints that flag parsing cannot express.
func (c AppConfig) Validate(availableAlgos []string) error {
	switch {
	case c.N < 1:
		return apperrors.NewConfigError("-n must be at least 1, got %d", c.N)
	case c.Tasks < 0:
		return apperrors.NewConfigError("--tasks cannot be negative, got %d", c.Tasks)
	case c.Workers < 0:
		return apperrors.NewConfigError("--workers cannot be negative, got %d", c.Workers)
	case c.Cutoff < 0:
		return apperrors.NewConfigError("--cutoff cannot be negative, got %d", c.Cutoff)
	case c.Repeats < 1:
		return apperrors.NewConfigError("--repeats must be at least 1, got %d", c.Repeats)
	case c.Tolerance < 0:
		return apperrors.NewConfigError("--tolerance cannot be negative, got %g", c.Tolerance)
	case c.MinSpeedup < 0:
		return apperrors.NewConfigError("--min-speedup cannot be negative, got %g", c.MinSpeedup)
	case c.Timeout <= 0:
		return apperrors.NewConfigError("--timeout must be positive, got %v", c.Timeout)
	case !slices.Contains(GCModes, c.GCMode):
		return apperrors.NewConfigError("unknown --gc mode %q (valid: %s)", c.GCMode, strings.Join(GCModes, ", "))
	}

	if c.Algo != algoAll && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (valid: %s, all)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.Algo == algoTwoWay && c.N%2 != 0 {
		return apperrors.NewConfigError("the twoway strategy needs an even -n, got %d", c.N)
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui cannot be combined")
	}
	return nil
}
