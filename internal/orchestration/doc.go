// Package orchestration runs summation strategies against one input, times
// them, checks their results against the sequential baseline and hands the
// outcome to a presenter. Progress and result display are reached through
// the ProgressReporter and ResultPresenter interfaces so the same harness
// drives the CLI and the TUI.
package orchestration
