package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/agbru/recipsum/internal/errors"
	"github.com/agbru/recipsum/internal/reciprocal"
)

// newTestApp builds an application whose calibration profile lives in a
// temporary directory, so a profile in the working directory cannot leak in.
func newTestApp(t *testing.T, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	profile := filepath.Join(t.TempDir(), "profile.json")
	full := append([]string{"recipsum", "--no-color", "--calibration-profile", profile}, args...)
	a, err := New(full, &errBuf)
	if err != nil {
		t.Fatalf("New(%v) failed: %v\nstderr: %s", args, err, errBuf.String())
	}
	return a, &errBuf
}

func TestNew_AppliesAdaptiveDefaults(t *testing.T) {
	a, _ := newTestApp(t, "-n", "5000")
	if a.Config.N != 5000 {
		t.Errorf("N = %d, want 5000", a.Config.N)
	}
	if a.Config.Tasks <= 0 || a.Config.Workers <= 0 || a.Config.Cutoff <= 0 {
		t.Errorf("tuning parameters should be resolved, got tasks=%d workers=%d cutoff=%d",
			a.Config.Tasks, a.Config.Workers, a.Config.Cutoff)
	}
}

func TestNew_KeepsExplicitTuning(t *testing.T) {
	a, _ := newTestApp(t, "--tasks", "7", "--workers", "3")
	if a.Config.Tasks != 7 || a.Config.Workers != 3 {
		t.Errorf("got tasks=%d workers=%d, want 7 and 3", a.Config.Tasks, a.Config.Workers)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantHelp bool
	}{
		{"help", []string{"recipsum", "--help"}, true},
		{"unknown flag", []string{"recipsum", "--bogus"}, false},
		{"bad length", []string{"recipsum", "-n", "0"}, false},
		{"unknown algo", []string{"recipsum", "--algo", "quantum"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := New(tt.args, &errBuf)
			if err == nil {
				t.Fatal("expected an error")
			}
			if IsHelpError(err) != tt.wantHelp {
				t.Errorf("IsHelpError = %v, want %v (err %v)", IsHelpError(err), tt.wantHelp, err)
			}
		})
	}
}

func TestNew_WithFactory(t *testing.T) {
	factory := reciprocal.NewDefaultFactory(reciprocal.Options{Tasks: 2})
	var errBuf bytes.Buffer
	a, err := New([]string{"recipsum", "--algo", "manytask"}, &errBuf, WithFactory(factory))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if a.Factory != factory {
		t.Error("WithFactory should keep the given factory")
	}
}

func TestRun_Completion(t *testing.T) {
	a, _ := newTestApp(t, "--completion", "bash")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d, want 0", code)
	}
	for _, want := range []string{"--algo", "manytask"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("completion script should mention %q", want)
		}
	}
}

func TestRun_Quiet(t *testing.T) {
	a, _ := newTestApp(t, "-n", "2000", "--repeats", "2", "-q")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d, want 0\noutput: %s", code, out.String())
	}
	line := strings.TrimSpace(out.String())
	if strings.Contains(line, "\n") {
		t.Fatalf("quiet output should be one line, got %q", line)
	}
	sum, err := strconv.ParseFloat(line, 64)
	if err != nil {
		t.Fatalf("quiet output %q is not a number: %v", line, err)
	}
	if sum <= 0 {
		t.Errorf("sum = %v, want positive", sum)
	}
}

func TestRun_ReportAndMetricsFiles(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "out", "report.txt")
	metricsFile := filepath.Join(dir, "recipsum.prom")
	a, _ := newTestApp(t, "-n", "2000", "--repeats", "2", "--algo", "twoway", "-o", report, "--metrics-file", metricsFile)

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d, want 0\noutput: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "Report saved to") {
		t.Errorf("output should confirm the report, got:\n%s", out.String())
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "# Reciprocal Sum Benchmark") {
		t.Errorf("unexpected report:\n%s", data)
	}
	if !strings.Contains(string(data), a.runID) {
		t.Error("report should carry the run ID")
	}

	prom, err := os.ReadFile(metricsFile)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{"recipsum_runs_total", `strategy="twoway"`, "recipsum_input_elements 2000"} {
		if !strings.Contains(string(prom), want) {
			t.Errorf("metrics should contain %q", want)
		}
	}
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"memory limit exceeded", []string{"-n", "2000", "--memory-limit", "1K"}, apperrors.ExitErrorConfig},
		{"invalid memory limit", []string{"-n", "2000", "--memory-limit", "lots"}, apperrors.ExitErrorConfig},
		{"timeout", []string{"-n", "2000", "--timeout", "1ns"}, apperrors.ExitErrorTimeout},
		{"calibration timeout", []string{"--calibrate", "--timeout", "1ns"}, apperrors.ExitErrorTimeout},
		{"auto-calibration timeout", []string{"-n", "2000", "--auto-calibrate", "--timeout", "1ns"}, apperrors.ExitErrorTimeout},
		{"unreachable speedup", []string{"-n", "2000", "--repeats", "2", "--min-speedup", "1000"}, apperrors.ExitErrorSpeedup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, tt.args...)
			var out bytes.Buffer
			if code := a.Run(context.Background(), &out); code != tt.want {
				t.Errorf("exit = %d, want %d\noutput: %s", code, tt.want, out.String())
			}
		})
	}
}

func TestRun_RejectsZeroInput(t *testing.T) {
	var errBuf bytes.Buffer
	profile := filepath.Join(t.TempDir(), "profile.json")
	withZero := func(n int, _ uint64) []float64 {
		in := make([]float64, n)
		for i := range in {
			in[i] = 1
		}
		in[n/2] = 0
		return in
	}
	a, err := New([]string{"recipsum", "--no-color", "--calibration-profile", profile, "-n", "64"}, &errBuf, WithInputGenerator(withZero))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Fatalf("exit = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "non-zero") {
		t.Errorf("stderr should explain the rejection, got:\n%s", errBuf.String())
	}
	if strings.Contains(out.String(), "Status:") {
		t.Errorf("no strategy should have run, output:\n%s", out.String())
	}
}

func TestRun_MemoryEstimateShown(t *testing.T) {
	a, _ := newTestApp(t, "-n", "2000", "--repeats", "1", "--memory-limit", "1G", "--algo", "sequential")
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d\noutput: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "Memory estimate:") {
		t.Errorf("expected memory estimate, got:\n%s", out.String())
	}
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-n", "10", "-V"}, true},
		{[]string{"-n", "10"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintVersion(&out)
	for _, want := range []string{"recipsum", "Go version:", "OS/Arch:"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("version output should contain %q", want)
		}
	}
}
