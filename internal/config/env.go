package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether the flag name was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any of the aliases of a flag was given.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride binds one RECIPSUM_* variable to the flags it stands for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func intField(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}
}

func floatField(field func(*AppConfig) *float64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*field(c) = parsed
		}
	}
}

func stringField(field func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = v }
}

func boolField(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}
}

var envOverrides = []envOverride{
	{"N", []string{"n"}, intField(func(c *AppConfig) *int { return &c.N })},
	{"TASKS", []string{"tasks"}, intField(func(c *AppConfig) *int { return &c.Tasks })},
	{"WORKERS", []string{"workers"}, intField(func(c *AppConfig) *int { return &c.Workers })},
	{"CUTOFF", []string{"cutoff"}, intField(func(c *AppConfig) *int { return &c.Cutoff })},
	{"REPEATS", []string{"repeats"}, intField(func(c *AppConfig) *int { return &c.Repeats })},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"TOLERANCE", []string{"tolerance"}, floatField(func(c *AppConfig) *float64 { return &c.Tolerance })},
	{"MIN_SPEEDUP", []string{"min-speedup"}, floatField(func(c *AppConfig) *float64 { return &c.MinSpeedup })},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"ALGO", []string{"algo"}, stringField(func(c *AppConfig) *string { return &c.Algo })},
	{"OUTPUT", []string{"output", "o"}, stringField(func(c *AppConfig) *string { return &c.OutputFile })},
	{"METRICS_FILE", []string{"metrics-file"}, stringField(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, stringField(func(c *AppConfig) *string { return &c.CalibrationProfile })},
	{"MEMORY_LIMIT", []string{"memory-limit"}, stringField(func(c *AppConfig) *string { return &c.MemoryLimit })},
	{"GC", []string{"gc"}, stringField(func(c *AppConfig) *string { return &c.GCMode })},
	{"OTLP_ENDPOINT", []string{"otlp-endpoint"}, stringField(func(c *AppConfig) *string { return &c.OTLPEndpoint })},
	{"LOG_LEVEL", []string{"log-level"}, stringField(func(c *AppConfig) *string { return &c.LogLevel })},

	{"VERBOSE", []string{"v", "verbose"}, boolField(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolField(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"q", "quiet"}, boolField(func(c *AppConfig) *bool { return &c.Quiet })},
	{"CALIBRATE", []string{"calibrate"}, boolField(func(c *AppConfig) *bool { return &c.Calibrate })},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, boolField(func(c *AppConfig) *bool { return &c.AutoCalibrate })},
	{"TUI", []string{"tui"}, boolField(func(c *AppConfig) *bool { return &c.TUI })},
	{"NO_COLOR", []string{"no-color"}, boolField(func(c *AppConfig) *bool { return &c.NoColor })},
	{"OTLP_INSECURE", []string{"otlp-insecure"}, boolField(func(c *AppConfig) *bool { return &c.OTLPInsecure })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively, and
// returns defaultVal for anything else.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides copies RECIPSUM_* values into config for every flag
// that was not set on the command line. Unparsable values are ignored.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
