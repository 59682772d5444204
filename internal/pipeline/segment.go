package pipeline

import "strings"

// SpanKind classifies a slice of a markdown document.
type SpanKind int

// Span kinds.
const (
	SpanText SpanKind = iota
	SpanCode
	SpanDiagram
)

// String returns the kind name used in structured output.
func (k SpanKind) String() string {
	switch k {
	case SpanCode:
		return "code"
	case SpanDiagram:
		return "diagram"
	default:
		return "text"
	}
}

const (
	fence           = "```"
	defaultLanguage = "text"
	diagramLanguage = "mermaid"
)

// Span is a contiguous slice of a document.
// Content excludes fence markers; Raw is the exact source text including them.
type Span struct {
	Kind     SpanKind
	Content  string
	Language string // empty for text spans
	Raw      string
}

// Segment splits doc into text, code and diagram spans in document order.
// Concatenating the Raw field of every span reproduces doc exactly.
//
// A fence opens at any triple backtick followed by an info line that contains
// no backtick. The first word of the info line is the language. A fence with
// no closing triple backtick is left as text.
func Segment(doc string) []Span {
	var spans []Span
	textStart := 0
	pos := 0

	for pos < len(doc) {
		open := strings.Index(doc[pos:], fence)
		if open < 0 {
			break
		}
		open += pos

		span, end, ok := scanFence(doc, open)
		if !ok {
			pos = open + len(fence)
			continue
		}

		if open > textStart {
			spans = append(spans, textSpan(doc[textStart:open]))
		}
		spans = append(spans, span)
		textStart = end
		pos = end
	}

	if textStart < len(doc) {
		spans = append(spans, textSpan(doc[textStart:]))
	}
	return spans
}

// scanFence reads a fenced block opening at doc[open:].
// Returns the span, the index just past the closing fence, and whether a
// complete block was found.
func scanFence(doc string, open int) (Span, int, bool) {
	infoStart := open + len(fence)
	nl := strings.IndexByte(doc[infoStart:], '\n')
	if nl < 0 {
		return Span{}, 0, false
	}
	info := doc[infoStart : infoStart+nl]
	if strings.Contains(info, "`") {
		return Span{}, 0, false
	}

	bodyStart := infoStart + nl + 1
	closeIdx := strings.Index(doc[bodyStart:], fence)
	if closeIdx < 0 {
		return Span{}, 0, false
	}
	bodyEnd := bodyStart + closeIdx
	end := bodyEnd + len(fence)

	lang := ""
	if fields := strings.Fields(info); len(fields) > 0 {
		lang = fields[0]
	}
	body := doc[bodyStart:bodyEnd]
	raw := doc[open:end]

	if strings.EqualFold(lang, diagramLanguage) {
		return Span{Kind: SpanDiagram, Content: body, Language: diagramLanguage, Raw: raw}, end, true
	}
	if lang == "" {
		lang = defaultLanguage
	}
	return Span{Kind: SpanCode, Content: strings.TrimSpace(body), Language: lang, Raw: raw}, end, true
}

func textSpan(s string) Span {
	return Span{Kind: SpanText, Content: s, Raw: s}
}

// textOnly returns doc with every fenced block replaced by a blank line per
// source line, so line-oriented scans keep their offsets but never see code.
func textOnly(doc string) string {
	var b strings.Builder
	b.Grow(len(doc))
	for _, s := range Segment(doc) {
		if s.Kind == SpanText {
			b.WriteString(s.Raw)
			continue
		}
		b.WriteString(blankOut(s.Raw))
	}
	return b.String()
}

// blankOut replaces every byte except newlines with a space.
func blankOut(s string) string {
	buf := []byte(s)
	for i, c := range buf {
		if c != '\n' {
			buf[i] = ' '
		}
	}
	return string(buf)
}
