package docview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/alnah/go-docview/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor    = pipeline.Normalizer{}
	_ pipeline.HTMLConverter   = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CodeHighlighter = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.FenceRenderer   = (*pipeline.Fences)(nil)
	_ DiagramRenderer          = (*MermaidRenderer)(nil)
)

// Container classes wrapping a rendered document.
const (
	proseClass           = "prose prose-invert max-w-none"
	businessSummaryClass = proseClass + " business-summary-container"
)

// Renderer turns repository documentation markdown into HTML fragments.
// Create with NewRenderer, use Render, and Close when done. A Renderer is
// safe for concurrent use.
type Renderer struct {
	cfg          rendererConfig
	styles       pipeline.Styles
	preprocessor pipeline.Preprocessor
	highlighter  pipeline.CodeHighlighter // nil when highlighting is off
	diagrams     DiagramRenderer          // nil renders diagrams client-side
	goldmark     pipeline.HTMLConverter   // nil unless EngineGoldmark
}

// NewRenderer creates a Renderer with the dark theme, dracula highlighting,
// the built-in engine and client-side diagrams.
// Returns error if the theme or engine is unknown.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			theme:     ThemeDark,
			engine:    EngineBuiltin,
			highlight: true,
			timeout:   defaultTimeout,
		},
		preprocessor: pipeline.Normalizer{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if !pipeline.IsValidTheme(r.cfg.theme) {
		return nil, fmt.Errorf("%w: %q (must be dark or light)", ErrInvalidTheme, r.cfg.theme)
	}
	if !isValidEngine(r.cfg.engine) {
		return nil, fmt.Errorf("%w: %q (must be builtin or goldmark)", ErrInvalidEngine, r.cfg.engine)
	}
	r.cfg.theme = strings.ToLower(r.cfg.theme)
	r.cfg.engine = Engine(strings.ToLower(string(r.cfg.engine)))
	r.styles = pipeline.StylesFor(r.cfg.theme)

	if r.cfg.style == "" {
		r.cfg.style = pipeline.DefaultHighlightStyle
	}
	if r.cfg.highlight {
		r.highlighter = pipeline.NewChromaHighlighter(r.cfg.style)
	}
	if r.cfg.engine == EngineGoldmark {
		r.goldmark = pipeline.NewGoldmarkConverter(r.cfg.style)
	}

	return r, nil
}

// Theme returns the normalized theme name.
func (r *Renderer) Theme() string {
	return r.cfg.theme
}

// Render converts in.Markdown to an HTML fragment.
//
// Malformed markdown never fails: empty input renders a placeholder and a
// failed diagram renders an inline error panel. The returned error is
// non-nil only when ctx is done or in.BaseURL is invalid.
// Recovers from internal panics into a placeholder document.
func (r *Renderer) Render(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = r.placeholder("Unable to render this document.")
			err = nil
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := r.preprocessor.Preprocess(ctx, in.Markdown)
	if pipeline.IsBlank(md) {
		return r.placeholder("No content available."), nil
	}

	ct := string(in.ContentType)
	res := &Result{Headings: pipeline.ExtractTOC(md, ct)}

	switch {
	case in.ContentType == BusinessSummary:
		r.renderBusiness(ctx, md, res)
	case in.ContentType == Readme && r.goldmark != nil:
		body, err := r.goldmark.ToHTML(ctx, md)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return r.placeholder("Unable to render this document."), nil
		}
		res.HTML = wrapDiv(proseClass, body)
	default:
		r.renderSpans(ctx, md, res)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if in.BaseURL != "" {
		rewritten, err := pipeline.RewriteRelativeURLs(res.HTML, in.BaseURL)
		if err != nil {
			return nil, err
		}
		res.HTML = rewritten
	}
	return res, nil
}

// renderBusiness renders a business summary through the block formatter.
func (r *Renderer) renderBusiness(ctx context.Context, md string, res *Result) {
	fences := &pipeline.Fences{Highlighter: r.highlighter}
	f := pipeline.NewBlockFormatter(r.styles, fences)

	blocks, fenced := f.Blocks(md)
	fences.Diagrams = r.renderDiagrams(ctx, fenced)

	res.Blocks = blocks
	res.HTML = wrapDiv(businessSummaryClass, f.Render(blocks, fenced))
}

// renderSpans renders each span of md in order: text through the inline
// formatter, code through the highlighter, diagrams through the diagram
// renderer.
func (r *Renderer) renderSpans(ctx context.Context, md string, res *Result) {
	spans := pipeline.Segment(md)

	var fenced []Span
	for _, s := range spans {
		if s.Kind != pipeline.SpanText {
			fenced = append(fenced, s)
		}
	}
	fences := &pipeline.Fences{
		Highlighter: r.highlighter,
		Diagrams:    r.renderDiagrams(ctx, fenced),
	}

	var b strings.Builder
	b.WriteString(`<div class="space-y-4">`)
	ordinal := 0
	for _, s := range spans {
		if s.Kind == pipeline.SpanText {
			b.WriteString("<div>")
			b.WriteString(pipeline.FormatText(s.Content, r.styles))
			b.WriteString("</div>")
			continue
		}
		b.WriteString(fences.RenderFence(ordinal, s))
		ordinal++
	}
	b.WriteString("</div>")

	res.Spans = spans
	res.HTML = wrapDiv(proseClass, b.String())
}

// renderDiagrams renders every diagram of fenced concurrently, one goroutine
// per diagram. The result maps a fenced ordinal to the container body: the
// SVG, or an error panel. Returns nil when diagrams render client-side.
func (r *Renderer) renderDiagrams(ctx context.Context, fenced []Span) map[int]string {
	if r.diagrams == nil {
		return nil
	}

	var ordinals []int
	for i, s := range fenced {
		if s.Kind == pipeline.SpanDiagram {
			ordinals = append(ordinals, i)
		}
	}
	if len(ordinals) == 0 {
		return nil
	}

	bodies := make([]string, len(ordinals))
	var wg sync.WaitGroup
	for n, ordinal := range ordinals {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bodies[n] = r.renderDiagram(ctx, fenced[ordinal].Content)
		}()
	}
	wg.Wait()

	out := make(map[int]string, len(ordinals))
	for n, ordinal := range ordinals {
		out[ordinal] = bodies[n]
	}
	return out
}

// renderDiagram renders one diagram. Failures, panics included, become an
// error panel so sibling diagrams are unaffected.
func (r *Renderer) renderDiagram(ctx context.Context, source string) (body string) {
	defer func() {
		if rec := recover(); rec != nil {
			body = pipeline.DiagramErrorHTML(fmt.Sprint(rec))
		}
	}()

	dctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	svg, err := r.diagrams.RenderDiagram(dctx, source)
	if err != nil {
		return pipeline.DiagramErrorHTML(diagramMessage(err))
	}
	return svg
}

// diagramMessage strips the sentinel prefix from a diagram error so the panel
// shows the renderer's own message.
func diagramMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, ErrDiagramRender) {
		msg = strings.TrimPrefix(msg, ErrDiagramRender.Error()+": ")
	}
	return msg
}

// placeholder renders a muted one-line document with an empty TOC.
func (r *Renderer) placeholder(text string) *Result {
	return &Result{
		HTML:     `<p class="` + r.styles.Muted + `">` + text + `</p>`,
		Headings: []Heading{},
	}
}

// Close releases the diagram renderer when it holds resources.
func (r *Renderer) Close() error {
	if c, ok := r.diagrams.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func wrapDiv(class, body string) string {
	return `<div class="` + class + `">` + body + `</div>`
}

// Sections splits doc into addressable level-2 sections using the strategy
// of ct. The sequence is lazy and can be ranged over repeatedly.
func Sections(doc string, ct ContentType) iter.Seq[Section] {
	return pipeline.Sections(doc, string(ct))
}

// SplitSections collects Sections into a slice.
func SplitSections(doc string, ct ContentType) []Section {
	return pipeline.SplitSections(doc, string(ct))
}

// TOC extracts the table of contents of doc. Ids match those Render emits.
func TOC(doc string, ct ContentType) []Heading {
	return pipeline.ExtractTOC(doc, string(ct))
}

// Slug converts heading text to its anchor id.
func Slug(text string) string {
	return pipeline.Slug(text)
}
