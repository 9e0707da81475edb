// Package logging provides a unified logging interface for the summation
// benchmark. It abstracts the underlying logging implementation (zerolog by
// default, the standard library logger as a fallback) so components log
// consistently without depending on a backend.
package logging
