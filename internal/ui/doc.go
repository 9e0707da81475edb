// Package ui holds the color themes shared by the CLI report and the TUI
// dashboard, and the ANSI accessors the CLI prints with. Colors are off when
// --no-color is given or NO_COLOR is set.
package ui
