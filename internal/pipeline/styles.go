package pipeline

import "strings"

// Theme constants.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Styles holds the utility classes that differ between themes.
// Accent colours and code-block chrome are theme independent.
type Styles struct {
	Title    string // headings and bold text
	Body     string // paragraphs and list item bodies
	Muted    string // empty-document placeholder
	CodeSpan string // default inline code background and foreground
}

// StylesFor returns the class set for a theme name. Unknown names fall back to dark.
func StylesFor(theme string) Styles {
	if strings.EqualFold(theme, ThemeLight) {
		return Styles{
			Title:    "text-gray-900",
			Body:     "text-gray-700",
			Muted:    "text-gray-500",
			CodeSpan: "bg-gray-100 text-gray-800",
		}
	}
	return Styles{
		Title:    "text-white",
		Body:     "text-zinc-300",
		Muted:    "text-zinc-400",
		CodeSpan: "bg-zinc-800 text-zinc-200",
	}
}

// IsValidTheme reports whether name is a known theme (case-insensitive).
func IsValidTheme(name string) bool {
	switch strings.ToLower(name) {
	case ThemeDark, ThemeLight:
		return true
	}
	return false
}

// Shared class strings.
const (
	highlightCodeClass = "bg-green-900/20 text-green-400 px-1 rounded text-sm font-mono"
	codeSpanSuffix     = "px-1 rounded text-sm font-mono"
	linkClass          = "text-green-500 hover:text-green-400"
	imageClass         = "max-w-full my-2 rounded"
	accentClass        = "text-green-500"
)
