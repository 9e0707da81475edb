package calibration

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/agbru/recipsum/internal/config"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	if p.NumCPU != runtime.NumCPU() || p.GOARCH != runtime.GOARCH || p.GOOS != runtime.GOOS {
		t.Errorf("hardware not stamped: %+v", p)
	}
	if p.ProfileVersion != CurrentProfileVersion {
		t.Errorf("ProfileVersion = %d, want %d", p.ProfileVersion, CurrentProfileVersion)
	}
	if p.WordSize != 32<<(^uint(0)>>63) {
		t.Errorf("WordSize = %d", p.WordSize)
	}
	if p.CalibratedAt.IsZero() {
		t.Error("CalibratedAt is zero")
	}
}

func TestProfileSaveLoad(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "profile.json")

	original := NewProfile()
	original.OptimalTaskCount = 16
	original.OptimalCutoff = 65536
	original.Workers = 8
	original.CalibrationN = CalibrationN
	if err := original.SaveProfile(path); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	loaded, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if loaded.OptimalTaskCount != 16 || loaded.OptimalCutoff != 65536 || loaded.Workers != 8 {
		t.Errorf("loaded profile differs: %+v", loaded)
	}
	if !loaded.IsValid() {
		t.Error("reloaded profile should be valid on the same machine")
	}
}

func TestProfileIsValid(t *testing.T) {
	t.Parallel()
	valid := func() *CalibrationProfile {
		p := NewProfile()
		p.OptimalTaskCount = 4
		return p
	}
	tests := []struct {
		name   string
		mutate func(*CalibrationProfile)
		want   bool
	}{
		{"current hardware", func(*CalibrationProfile) {}, true},
		{"other CPU count", func(p *CalibrationProfile) { p.NumCPU = 999 }, false},
		{"other architecture", func(p *CalibrationProfile) { p.GOARCH = "invalid_arch" }, false},
		{"other word size", func(p *CalibrationProfile) { p.WordSize = 16 }, false},
		{"other version", func(p *CalibrationProfile) { p.ProfileVersion = 999 }, false},
		{"no task count", func(p *CalibrationProfile) { p.OptimalTaskCount = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid()
			tt.mutate(p)
			if got := p.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}

	var nilProfile *CalibrationProfile
	if nilProfile.IsValid() {
		t.Error("nil profile should be invalid")
	}
}

func TestProfileIsStale(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	if p.IsStale(time.Hour) {
		t.Error("fresh profile should not be stale")
	}
	p.CalibratedAt = time.Now().Add(-2 * time.Hour)
	if !p.IsStale(time.Hour) {
		t.Error("old profile should be stale")
	}
	var nilProfile *CalibrationProfile
	if !nilProfile.IsStale(time.Hour) {
		t.Error("nil profile should be stale")
	}
}

func TestProfileString(t *testing.T) {
	t.Parallel()
	p := NewProfile()
	p.OptimalTaskCount = 16
	p.OptimalCutoff = 4096
	s := p.String()
	for _, want := range []string{"Task count: 16", "Cutoff:     4096", runtime.GOARCH} {
		if !strings.Contains(s, want) {
			t.Errorf("String() should contain %q, got:\n%s", want, s)
		}
	}
}

func TestLoadProfileErrors(t *testing.T) {
	t.Parallel()
	if _, err := loadProfile("/nonexistent/path/to/profile.json"); err == nil {
		t.Error("expected error for a missing file")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.json")
	if err := os.WriteFile(invalid, []byte("not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadProfile(invalid); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadOrCreateProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")

	p, loaded := LoadOrCreateProfile(path)
	if loaded || p == nil {
		t.Fatalf("missing file should yield a new profile, got loaded=%v", loaded)
	}
	p.OptimalTaskCount = 8
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}
	p2, loaded := LoadOrCreateProfile(path)
	if !loaded || p2.OptimalTaskCount != 8 {
		t.Errorf("expected saved profile, got loaded=%v tasks=%d", loaded, p2.OptimalTaskCount)
	}
}

func TestGetDefaultProfilePath(t *testing.T) {
	t.Parallel()
	if got := filepath.Base(GetDefaultProfilePath()); got != DefaultProfileFileName {
		t.Errorf("default path ends with %q, want %q", got, DefaultProfileFileName)
	}
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")

	p := NewProfile()
	p.OptimalTaskCount = 12
	p.OptimalCutoff = 8192
	p.Workers = 3
	if err := p.SaveProfile(path); err != nil {
		t.Fatal(err)
	}

	cfg, ok := LoadCachedCalibration(config.AppConfig{Tasks: 5}, path)
	if !ok {
		t.Fatal("valid profile should be used")
	}
	if cfg.Tasks != 5 {
		t.Errorf("explicit Tasks should be kept, got %d", cfg.Tasks)
	}
	if cfg.Cutoff != 8192 || cfg.Workers != 3 {
		t.Errorf("profile values not applied: %+v", cfg)
	}

	foreign := NewProfile()
	foreign.OptimalTaskCount = 12
	foreign.NumCPU = runtime.NumCPU() + 1
	foreignPath := filepath.Join(dir, "foreign.json")
	if err := foreign.SaveProfile(foreignPath); err != nil {
		t.Fatal(err)
	}
	if _, ok := LoadCachedCalibration(config.AppConfig{}, foreignPath); ok {
		t.Error("profile from other hardware should be ignored")
	}
	if _, ok := LoadCachedCalibration(config.AppConfig{}, filepath.Join(dir, "missing.json")); ok {
		t.Error("missing profile should be ignored")
	}
}
