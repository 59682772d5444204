package pipeline

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Code span placeholders use Private Use Area characters so no later stage
// can match inside an inline code body.
const (
	codeStartPlaceholder = "\uE010" // U+E010
	codeEndPlaceholder   = "\uE011" // U+E011
)

// Precompiled patterns for inline and line-level markdown.
var (
	headingLinePattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLinePattern  = regexp.MustCompile(`^\s*[-*+]\s+(.+)$`)
	orderedLinePattern = regexp.MustCompile(`^(\s*)(\d+)\.\s+(.+)$`)
	markupLinePattern  = regexp.MustCompile(`^<[a-zA-Z]`)

	codeSpanPattern    = regexp.MustCompile("`([^`]+)`")
	codeRestorePattern = regexp.MustCompile(codeStartPlaceholder + `(\d+)` + codeEndPlaceholder)
	strongPattern      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	emPattern          = regexp.MustCompile(`\*([^*]+)\*`)
	inlineImagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	inlineLinkPattern  = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

// highlightedCode is the closed vocabulary of inline code tokens that get
// the accent style. Matching is exact.
var highlightedCode = map[string]bool{
	"useMemoCache":                 true,
	"useMemoCache(N)":              true,
	"useState":                     true,
	"c(N)":                         true,
	"useRenderCounter":             true,
	"makeReadOnly":                 true,
	"$[index]":                     true,
	"eslint-plugin-react-compiler": true,
}

// IsHighlightedCode reports whether an inline code body belongs to the
// highlighted vocabulary.
func IsHighlightedCode(code string) bool {
	return highlightedCode[code]
}

// FormatText converts a text span to HTML one line at a time.
// Heading, bullet and ordered lines become block elements, markup lines pass
// through, blank lines are kept and everything else becomes a paragraph.
func FormatText(text string, st Styles) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = formatTextLine(line, st)
	}
	return strings.Join(lines, "\n")
}

func formatTextLine(line string, st Styles) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	if m := headingLinePattern.FindStringSubmatch(line); m != nil {
		title := strings.TrimSpace(m[2])
		return headingHTML(len(m[1]), Slug(title), title, st)
	}
	if m := bulletLinePattern.FindStringSubmatch(line); m != nil {
		return fmt.Sprintf(`<div class="flex items-start mb-2 ml-4"><span class="%s mr-2">•</span><div class="%s">%s</div></div>`,
			accentClass, st.Body, FormatInline(m[1], st))
	}
	if m := orderedLinePattern.FindStringSubmatch(line); m != nil {
		id := ""
		if indentLevel(m[1]) == 0 {
			id = fmt.Sprintf(` id="%s"`, Slug(m[3]))
		}
		return fmt.Sprintf(`<div class="flex items-start mb-2 ml-4"%s><span class="%s font-bold mr-2 min-w-[1.5rem]">%s.</span><div class="%s">%s</div></div>`,
			id, accentClass, m[2], st.Body, FormatInline(m[3], st))
	}
	if markupLinePattern.MatchString(line) {
		return line
	}
	return fmt.Sprintf(`<p class="%s mb-4">%s</p>`, st.Body, FormatInline(line, st))
}

// headingHTML renders a heading with a size class scaled by level.
func headingHTML(level int, id, title string, st Styles) string {
	size := "text-xl"
	switch level {
	case 1:
		size = "text-3xl"
	case 2:
		size = "text-2xl"
	}
	margin := "mt-6 mb-3"
	if level <= 2 {
		margin = "mt-8 mb-4"
	}
	return fmt.Sprintf(`<h%d id="%s" class="%s font-bold %s %s">%s</h%d>`,
		level, id, size, st.Title, margin, title, level)
}

// FormatInline applies the inline stages to a fragment in order:
// code spans are set aside, then bold, italic, images and links are
// converted, then code spans are restored as styled code elements.
func FormatInline(s string, st Styles) string {
	s, codes := protectCodeSpans(s)
	s = formatStrong(s, st)
	s = formatEmphasis(s)
	s = formatImages(s)
	s = formatLinks(s)
	return restoreCodeSpans(s, codes, st)
}

// protectCodeSpans replaces each `code` span with an indexed placeholder.
func protectCodeSpans(s string) (string, []string) {
	if !strings.Contains(s, "`") {
		return s, nil
	}
	var codes []string
	out := codeSpanPattern.ReplaceAllStringFunc(s, func(m string) string {
		codes = append(codes, m[1:len(m)-1])
		return codeStartPlaceholder + strconv.Itoa(len(codes)-1) + codeEndPlaceholder
	})
	return out, codes
}

// restoreCodeSpans swaps placeholders back for rendered code elements.
func restoreCodeSpans(s string, codes []string, st Styles) string {
	if len(codes) == 0 {
		return s
	}
	return codeRestorePattern.ReplaceAllStringFunc(s, func(m string) string {
		n, err := strconv.Atoi(m[len(codeStartPlaceholder) : len(m)-len(codeEndPlaceholder)])
		if err != nil || n >= len(codes) {
			return m
		}
		return CodeSpanHTML(codes[n], st)
	})
}

// CodeSpanHTML renders an inline code body, escaping it and picking the
// highlight class for vocabulary tokens.
func CodeSpanHTML(code string, st Styles) string {
	class := st.CodeSpan + " " + codeSpanSuffix
	if IsHighlightedCode(code) {
		class = highlightCodeClass
	}
	return fmt.Sprintf(`<code class="%s">%s</code>`, class, html.EscapeString(code))
}

func formatStrong(s string, st Styles) string {
	if !strings.Contains(s, "**") {
		return s
	}
	return strongPattern.ReplaceAllString(s, `<strong class="font-semibold `+st.Title+`">$1</strong>`)
}

func formatEmphasis(s string) string {
	if !strings.Contains(s, "*") {
		return s
	}
	return emPattern.ReplaceAllString(s, `<em class="italic">$1</em>`)
}

// formatImages runs before formatLinks so image syntax is never read as a link.
func formatImages(s string) string {
	if !strings.Contains(s, "![") {
		return s
	}
	return inlineImagePattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := inlineImagePattern.FindStringSubmatch(m)
		return fmt.Sprintf(`<img src="%s" alt="%s" class="%s">`,
			html.EscapeString(sub[2]), html.EscapeString(sub[1]), imageClass)
	})
}

func formatLinks(s string) string {
	if !strings.Contains(s, "](") {
		return s
	}
	return inlineLinkPattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := inlineLinkPattern.FindStringSubmatch(m)
		return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer" class="%s">%s</a>`,
			html.EscapeString(sub[2]), linkClass, sub[1])
	})
}

// indentLevel maps leading whitespace to a nesting level in 2-column units.
func indentLevel(indent string) int {
	return len(indent) / 2
}
