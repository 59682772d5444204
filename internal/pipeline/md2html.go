package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrHTMLConversion indicates goldmark failed to convert a document.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Compile-time interface checks
var (
	_ HTMLConverter = (*GoldmarkConverter)(nil)
	_ parser.IDs    = (*slugIDs)(nil)
)

// GoldmarkConverter converts README documents with goldmark for callers that
// want CommonMark block parsing and GFM tables. Heading ids come from Slug
// so the outline produced by ExtractTOC still links to them.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// chroma highlighting in the given style. Mermaid fences are emitted as
// <pre class="mermaid"> for client-side rendering.
func NewGoldmarkConverter(style string) *GoldmarkConverter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithGuessLanguage(false),
				highlighting.WithWrapperRenderer(mermaidWrapper),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // README sources are trusted and often embed HTML badges
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Goldmark has no context support, so conversion runs in a goroutine and
// the call returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		pctx := parser.NewContext(parser.WithIDs(&slugIDs{}))
		if err := c.md.Convert([]byte(content), &buf, parser.WithContext(pctx)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// slugIDs generates heading ids with Slug. Duplicates are kept as-is.
type slugIDs struct{}

func (slugIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(Slug(string(value)))
}

func (slugIDs) Put(_ []byte) {}

// mermaidWrapper turns unhighlighted mermaid fences into hydratable blocks and
// wraps other unhighlighted fences in <pre><code>.
func mermaidWrapper(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if ctx.Highlighted() {
		return
	}

	lang, _ := ctx.Language()
	if strings.EqualFold(strings.TrimSpace(string(lang)), diagramLanguage) {
		if entering {
			_, _ = w.WriteString(`<pre class="mermaid">`)
		} else {
			_, _ = w.WriteString("</pre>\n")
		}
		return
	}

	if entering {
		_, _ = w.WriteString("<pre><code")
		if len(bytes.TrimSpace(lang)) > 0 {
			_, _ = w.WriteString(` class="language-`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_, _ = w.WriteString(`"`)
		}
		_, _ = w.WriteString(">")
		return
	}
	_, _ = w.WriteString("</code></pre>\n")
}
