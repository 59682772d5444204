package pipeline

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrNoLexer indicates chroma has no lexer for a code block language.
var ErrNoLexer = errors.New("no lexer for language")

// DefaultHighlightStyle matches the dark code block frame.
const DefaultHighlightStyle = "dracula"

// codeEscaper escapes the characters that can change the meaning of a <pre> body.
var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeCode escapes a code block body for a <pre> element.
func EscapeCode(code string) string {
	return codeEscaper.Replace(code)
}

// CodeHighlighter turns a code block body into the inner HTML of a <pre>.
type CodeHighlighter interface {
	Highlight(language, code string) (string, error)
}

// Compile-time interface checks
var (
	_ CodeHighlighter = (*ChromaHighlighter)(nil)
	_ FenceRenderer   = (*Fences)(nil)
)

// ChromaHighlighter highlights code with chroma using inline styles so the
// output needs no external stylesheet.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// Unknown style names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.PreventSurroundingPre(true),
			chromahtml.WithClasses(false),
		),
	}
}

// Highlight tokenises code with the lexer matching language.
// Returns ErrNoLexer when the language is unknown.
func (h *ChromaHighlighter) Highlight(language, code string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w: %q", ErrNoLexer, language)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s: %w", language, err)
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("formatting %s: %w", language, err)
	}
	return buf.String(), nil
}

// CodeBlockHTML wraps a rendered <pre> body in the language-labelled frame.
func CodeBlockHTML(language, body string) string {
	return `<div class="relative my-6 rounded-lg overflow-hidden bg-[#282A36] border border-[#44475A]">` +
		`<div class="flex items-center justify-between px-4 py-2 border-b border-[#44475A] bg-[#21222C]">` +
		`<span class="text-[#F8F8F2] text-sm font-medium">` + html.EscapeString(language) + `</span></div>` +
		`<div class="p-4"><pre class="font-mono text-[#F8F8F2] whitespace-pre-wrap">` + body + `</pre></div></div>`
}

// DiagramHTML wraps a rendered diagram body in its own container.
func DiagramHTML(body string) string {
	return `<div class="my-6 rounded-lg overflow-hidden border border-zinc-700 bg-zinc-900">` +
		`<div class="flex items-center justify-between px-4 py-2 border-b border-zinc-700 bg-zinc-800">` +
		`<span class="text-zinc-200 text-sm font-medium">mermaid</span></div>` +
		`<div class="p-4 flex justify-center">` + body + `</div></div>`
}

// DiagramSourceHTML renders diagram source for client-side rendering.
func DiagramSourceHTML(source string) string {
	return `<pre class="mermaid">` + EscapeCode(source) + `</pre>`
}

// DiagramErrorHTML renders the inline panel shown in place of a failed diagram.
func DiagramErrorHTML(message string) string {
	if message == "" {
		message = "Unknown error"
	}
	return `<div class="p-4 border border-red-500 bg-red-900/20 rounded-md text-red-400">` +
		`<p class="font-mono text-sm">Error rendering diagram: ` + html.EscapeString(message) + `</p></div>`
}

// FenceRenderer renders a fenced span for placeholder substitution.
// ordinal is the zero-based position of the span among all fenced spans of
// the document.
type FenceRenderer interface {
	RenderFence(ordinal int, s Span) string
}

// Fences is the standard FenceRenderer.
// Code bodies go through Highlighter when set and fall back to escaping.
// Diagram bodies come from Diagrams by ordinal and fall back to source for
// client-side rendering.
type Fences struct {
	Highlighter CodeHighlighter
	Diagrams    map[int]string
}

// RenderFence implements FenceRenderer.
func (f *Fences) RenderFence(ordinal int, s Span) string {
	if s.Kind == SpanDiagram {
		if body, ok := f.Diagrams[ordinal]; ok {
			return DiagramHTML(body)
		}
		return DiagramHTML(DiagramSourceHTML(s.Content))
	}
	return CodeBlockHTML(s.Language, f.codeBody(s))
}

func (f *Fences) codeBody(s Span) string {
	if f.Highlighter != nil && s.Language != defaultLanguage {
		if out, err := f.Highlighter.Highlight(s.Language, s.Content); err == nil {
			return out
		}
	}
	return EscapeCode(s.Content)
}
