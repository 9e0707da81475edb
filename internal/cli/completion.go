package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry
// there.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free value)
	ValueName string   // value label for zsh; empty for boolean flags
	IsFile    bool     // the flag takes a file path
	IsAlgo    bool     // values come from the strategy list
	Section   string   // fish comment section
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},

	{Short: "n", Help: "Length of the input array", Values: []string{"1000000", "2000000", "10000000"}, ValueName: "number", Section: "Benchmark"},
	{Long: "algo", Help: "Strategy to run", IsAlgo: true, ValueName: "strategy", Section: "Benchmark"},
	{Long: "tasks", Help: "Chunk count of the many-task strategy", Values: []string{"0", "2", "4", "8", "16", "32"}, ValueName: "count", Section: "Benchmark"},
	{Long: "workers", Help: "Maximum concurrent workers", Values: []string{"0", "1", "2", "4", "8"}, ValueName: "count", Section: "Benchmark"},
	{Long: "cutoff", Help: "Leaf size of the recursive strategy", Values: []string{"0", "4096", "16384", "65536"}, ValueName: "elements", Section: "Benchmark"},
	{Long: "repeats", Help: "Timed runs per strategy", Values: []string{"10", "60", "100"}, ValueName: "count", Section: "Benchmark"},
	{Long: "seed", Help: "Seed of the input generator", ValueName: "seed", Section: "Benchmark"},
	{Long: "tolerance", Help: "Accepted absolute error", Values: []string{"1e-2", "1e-6", "1e-9"}, ValueName: "float", Section: "Benchmark"},
	{Long: "min-speedup", Help: "Minimum speedup of parallel strategies", Values: []string{"0", "1.5", "2"}, ValueName: "factor", Section: "Benchmark"},
	{Long: "timeout", Help: "Maximum duration of the benchmark", Values: []string{"1m", "5m", "10m", "30m"}, ValueName: "duration", Section: "Benchmark"},
	{Long: "gc", Help: "Garbage collector control", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode", Section: "Benchmark"},
	{Long: "memory-limit", Help: "Refuse inputs larger than this", Values: []string{"512M", "1G", "4G"}, ValueName: "size", Section: "Benchmark"},

	{Long: "calibrate", Help: "Run calibration mode", Section: "Calibration"},
	{Long: "auto-calibrate", Help: "Enable auto-calibration", Section: "Calibration"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Calibration"},

	{Long: "verbose", Short: "v", Help: "Verbose output", Section: "Output"},
	{Long: "details", Short: "d", Help: "Show CPU and allocation details", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print only the sum", Section: "Output"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "metrics-file", Help: "Prometheus text file", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "tui", Help: "Interactive dashboard", Section: "Output"},
	{Long: "no-color", Help: "Disable colors", Section: "Output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level", Section: "Output"},
	{Long: "otlp-endpoint", Help: "OTLP/HTTP trace collector", ValueName: "host:port", Section: "Output"},
	{Long: "otlp-insecure", Help: "Plain HTTP for the trace collector", Section: "Output"},

	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell", Section: "Completion"},
}

// CompletionShells lists the shells GenerateCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell to out.
// algorithms are the strategy names offered for --algo.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, algorithms)
	case "zsh":
		return generateZshCompletion(out, algorithms)
	case "fish":
		return generateFishCompletion(out, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(CompletionShells, ", "))
	}
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer, algorithms []string) error {
	var opts []string
	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		pattern := strings.Join(flagNames(f), "|")
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, flagNames(f)...)
		case f.IsAlgo:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"${algorithms}\" -- \"${cur}\") )\n            return 0\n            ;;\n", pattern)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n", pattern, strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(filePatterns, "|"))
	}

	script := fmt.Sprintf(`# Bash completion script for recipsum
# Add this to your ~/.bashrc or ~/.bash_completion

_recipsum_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _recipsum_completions recipsum
`, strings.Join(opts, " "), strings.Join(algorithms, " "), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, algorithms []string) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef recipsum

# Zsh completion script for recipsum
# Place this file in a directory of your $fpath as _recipsum

_recipsum() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_recipsum "$@"
`, strings.Join(algorithms, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		valueSuffix = fmt.Sprintf(":%s:($algorithms)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
	}
}

func generateFishCompletion(out io.Writer, algorithms []string) error {
	lines := []string{
		"# Fish completion script for recipsum",
		"# Add this to ~/.config/fish/completions/recipsum.fish",
		"",
		"# Disable file completion by default",
		"complete -c recipsum -f",
	}

	section := ""
	algoList := strings.Join(algorithms, " ")
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		lines = append(lines, fishCompleteLine(f, algoList))
	}
	lines = append(lines, "")

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

func fishCompleteLine(f FlagCompletion, algoList string) string {
	parts := []string{"complete -c recipsum"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s all'", algoList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}
