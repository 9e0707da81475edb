// Package format holds the text formatting shared by the CLI and TUI:
// durations, ETAs, byte sizes, sums and progress bars.
package format
