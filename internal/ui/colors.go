package ui

// Color accessors read the active theme on every call so that a theme
// switch after start-up is honored.

func ColorRed() string       { return GetCurrentTheme().Error }
func ColorGreen() string     { return GetCurrentTheme().Success }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// Colorize wraps s in color and a reset. With no color active it returns s.
func Colorize(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + ColorReset()
}

// ErrorColors adapts the active theme to apperrors.ColorProvider.
type ErrorColors struct{}

func (ErrorColors) Red() string    { return ColorRed() }
func (ErrorColors) Yellow() string { return ColorYellow() }
func (ErrorColors) Reset() string  { return ColorReset() }
