package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal integer
// string, keeping a leading minus sign.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var b strings.Builder
	b.Grow(len(prefix) + n + (n-1)/3)
	b.WriteString(prefix)
	first := n % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatInt formats n with thousands separators.
func FormatInt(n int) string {
	return FormatNumberString(strconv.Itoa(n))
}

// FormatBytes renders a byte count with a binary unit, e.g. "7.6 MiB".
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatSum renders a reciprocal sum with enough digits to show rounding
// differences between strategies.
func FormatSum(v float64) string {
	return strconv.FormatFloat(v, 'f', 10, 64)
}

// FormatAbsError renders the distance to the baseline in scientific notation.
func FormatAbsError(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'e', 2, 64)
}

// FormatSpeedup renders a speedup factor such as "3.42x". Non-positive
// values render as "-".
func FormatSpeedup(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", v)
}
