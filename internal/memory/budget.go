package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/recipsum/internal/format"
)

// runtimeBaseline approximates the resident memory of the process before
// the input is allocated: runtime, binary, goroutine stacks.
const runtimeBaseline = 8 << 20

// Estimate is the predicted memory use of a run.
type Estimate struct {
	InputBytes    uint64
	OverheadBytes uint64
	TotalBytes    uint64
}

// EstimateMemoryUsage predicts the memory needed to sum n float64 values.
// The strategies only read the input, so it dominates the estimate.
func EstimateMemoryUsage(n int) Estimate {
	if n < 0 {
		n = 0
	}
	input := uint64(n) * 8
	return Estimate{
		InputBytes:    input,
		OverheadBytes: runtimeBaseline,
		TotalBytes:    input + runtimeBaseline,
	}
}

// FormatMemoryEstimate renders an estimate for the execution banner.
func FormatMemoryEstimate(e Estimate) string {
	return fmt.Sprintf("%s (input %s + runtime %s)",
		format.FormatBytes(e.TotalBytes), format.FormatBytes(e.InputBytes), format.FormatBytes(e.OverheadBytes))
}

var memoryUnits = []struct {
	suffix string
	factor uint64
}{
	{"TIB", 1 << 40}, {"GIB", 1 << 30}, {"MIB", 1 << 20}, {"KIB", 1 << 10},
	{"TB", 1 << 40}, {"GB", 1 << 30}, {"MB", 1 << 20}, {"KB", 1 << 10},
	{"T", 1 << 40}, {"G", 1 << 30}, {"M", 1 << 20}, {"K", 1 << 10},
	{"B", 1},
}

// ParseMemoryLimit parses sizes such as "512M", "2G", "1.5GiB" or "4096".
// Units are binary multiples.
func ParseMemoryLimit(s string) (uint64, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	factor := uint64(1)
	for _, u := range memoryUnits {
		if strings.HasSuffix(v, u.suffix) {
			factor = u.factor
			v = strings.TrimSpace(strings.TrimSuffix(v, u.suffix))
			break
		}
	}
	num, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q: %w", s, err)
	}
	if num <= 0 {
		return 0, fmt.Errorf("memory limit must be positive, got %q", s)
	}
	return uint64(num * float64(factor)), nil
}
