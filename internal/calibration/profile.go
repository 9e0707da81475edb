package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/agbru/recipsum/internal/config"
)

// CurrentProfileVersion is bumped whenever the profile layout changes.
// Profiles written with another version are ignored.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the name of the profile in the home directory.
const DefaultProfileFileName = ".recipsum_calibration.json"

// CalibrationProfile records the tuned parameters for one machine.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	NumCPU    int    `json:"num_cpu"`
	GOARCH    string `json:"goarch"`
	GOOS      string `json:"goos"`
	GoVersion string `json:"go_version"`
	WordSize  int    `json:"word_size"`

	OptimalTaskCount int `json:"optimal_task_count"`
	OptimalCutoff    int `json:"optimal_cutoff"`
	Workers          int `json:"workers"`

	CalibrationN    int    `json:"calibration_n"`
	CalibrationTime string `json:"calibration_time"`
}

// NewProfile returns an empty profile stamped with the current hardware.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		CalibratedAt:   time.Now(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
	}
}

// IsValid reports whether p was produced by this profile version on
// hardware matching the current machine.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63) &&
		p.OptimalTaskCount > 0
}

// IsStale reports whether p is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Calibration profile (v%d, %s)\n", p.ProfileVersion, p.CalibratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "  Hardware:   %d CPUs, %s/%s, %d-bit, %s\n", p.NumCPU, p.GOOS, p.GOARCH, p.WordSize, p.GoVersion)
	fmt.Fprintf(&b, "  Task count: %d (workers %d)\n", p.OptimalTaskCount, p.Workers)
	fmt.Fprintf(&b, "  Cutoff:     %d\n", p.OptimalCutoff)
	if p.CalibrationN > 0 {
		fmt.Fprintf(&b, "  Measured on %d elements in %s\n", p.CalibrationN, p.CalibrationTime)
	}
	return b.String()
}

// SaveProfile writes p as indented JSON to path, creating parent
// directories as needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

// LoadProfile reads the profile at path. An empty path means the default
// location.
func LoadProfile(path string) (*CalibrationProfile, error) {
	if path == "" {
		path = GetDefaultProfilePath()
	}
	return loadProfile(path)
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path, or returns a fresh one and
// false when it cannot be read.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.recipsum_calibration.json, or the file
// name alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// LoadCachedCalibration applies a valid profile at path to the zero
// Tasks, Workers and Cutoff of cfg. It reports whether a profile was used.
func LoadCachedCalibration(cfg config.AppConfig, path string) (config.AppConfig, bool) {
	p, err := LoadProfile(path)
	if err != nil || !p.IsValid() {
		return cfg, false
	}
	return applyProfile(cfg, p), true
}

func applyProfile(cfg config.AppConfig, p *CalibrationProfile) config.AppConfig {
	if cfg.Tasks == 0 {
		cfg.Tasks = p.OptimalTaskCount
	}
	if cfg.Workers == 0 && p.Workers > 0 {
		cfg.Workers = p.Workers
	}
	if cfg.Cutoff == 0 && p.OptimalCutoff > 0 {
		cfg.Cutoff = p.OptimalCutoff
	}
	return cfg
}
