package render

// Markdown styles shipped with glamour
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleDracula    = "dracula"
	StyleTokyoNight = "tokyo-night"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleNames returns the built-in markdown style names
func StyleNames() []string {
	return []string{StyleDark, StyleLight, StyleDracula, StyleTokyoNight, StyleNoTTY, StyleASCII}
}

// IsBuiltinStyle reports whether style names a built-in glamour style
// rather than a path to a JSON style file.
func IsBuiltinStyle(style string) bool {
	for _, name := range StyleNames() {
		if name == style {
			return true
		}
	}
	return false
}
