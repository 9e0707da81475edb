package calibration

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/recipsum/internal/config"
	apperrors "github.com/agbru/recipsum/internal/errors"
)

func TestSweep_PicksFastest(t *testing.T) {
	t.Parallel()
	delays := map[int]time.Duration{1: 3 * time.Millisecond, 2: time.Millisecond, 4: 2 * time.Millisecond}
	fn := func(_ []float64, v int) (float64, error) {
		time.Sleep(delays[v])
		return 0, nil
	}
	results, best, err := sweep(context.Background(), nil, []int{1, 2, 4}, 2, fn)
	if err != nil {
		t.Fatal(err)
	}
	if best != 2 || len(results) != 3 {
		t.Errorf("best = %d, results = %d", best, len(results))
	}
}

func TestSweep_SkipsFailures(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	fn := func(_ []float64, v int) (float64, error) {
		if v == 1 {
			return 0, boom
		}
		return 0, nil
	}
	results, best, err := sweep(context.Background(), nil, []int{1, 8}, 1, fn)
	if err != nil || best != 8 {
		t.Fatalf("best = %d, err = %v", best, err)
	}
	if !errors.Is(results[0].Err, boom) {
		t.Errorf("failure should be recorded, got %v", results[0].Err)
	}

	_, _, err = sweep(context.Background(), nil, []int{1}, 1, fn)
	if !errors.Is(err, boom) {
		t.Errorf("all failing should return the last error, got %v", err)
	}
}

func TestSweep_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fn := func([]float64, int) (float64, error) { return 0, nil }
	if _, _, err := sweep(ctx, nil, []int{1, 2}, 1, fn); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestAutoCalibrate(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	cfg, ok := AutoCalibrate(context.Background(), config.AppConfig{Seed: 1}, &out)
	if !ok {
		t.Fatal("auto-calibration should succeed")
	}
	if cfg.Tasks < 1 || cfg.Workers < 1 || cfg.Cutoff < 1 {
		t.Errorf("calibrated values not applied: %+v", cfg)
	}
	if !strings.Contains(out.String(), "Auto-calibration") {
		t.Errorf("expected summary line, got %q", out.String())
	}

	quiet, ok := AutoCalibrate(context.Background(), config.AppConfig{Tasks: 3, Quiet: true}, &out)
	if !ok || quiet.Tasks != 3 {
		t.Errorf("explicit Tasks should be kept, got %d", quiet.Tasks)
	}
}

func TestAutoCalibrate_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg, ok := AutoCalibrate(ctx, config.AppConfig{}, &bytes.Buffer{})
	if ok || cfg.Tasks != 0 {
		t.Errorf("canceled calibration should leave cfg untouched, got %+v", cfg)
	}
}

func TestRunCalibration(t *testing.T) {
	if testing.Short() {
		t.Skip("full calibration sweeps a large input")
	}
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	var out bytes.Buffer
	code := RunCalibration(context.Background(), &out, config.AppConfig{CalibrationProfile: path, Seed: 314})
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit = %d\n%s", code, out.String())
	}
	p, err := LoadProfile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsValid() || p.OptimalCutoff < 1 || p.CalibrationN != CalibrationN {
		t.Errorf("saved profile incomplete: %+v", p)
	}
	for _, want := range []string{"--- Tasks ---", "--- Cutoff ---", "(Optimal)", "Profile saved"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output should contain %q", want)
		}
	}
}

func TestRunCalibration_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	code := RunCalibration(ctx, &out, config.AppConfig{CalibrationProfile: filepath.Join(t.TempDir(), "p.json")})
	if code != apperrors.ExitErrorCanceled {
		t.Errorf("exit = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
