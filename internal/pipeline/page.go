package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"strings"
)

// ErrPageRender indicates the page template failed to render.
var ErrPageRender = errors.New("page template rendering failed")

// DefaultTOCTitle labels the on-page navigator.
const DefaultTOCTitle = "On this page"

// NavItem is one navigation link. Param is the document routing key; Href
// is where the link points, ?doc=<param> when empty.
type NavItem struct {
	Name   string
	Param  string
	Href   string
	Active bool
}

// Link returns Href, or the query-string address of Param.
func (n NavItem) Link() string {
	if n.Href != "" {
		return n.Href
	}
	return "?doc=" + url.QueryEscape(n.Param)
}

// NavSection groups sidebar links under a title.
type NavSection struct {
	Title string
	Items []NavItem
}

// PageData holds everything the page template needs.
type PageData struct {
	Title      string
	Theme      string
	Body       string // rendered document HTML, trusted
	Headings   []Heading
	TOCTitle   string
	TopNav     []NavItem
	Sidebar    []NavSection
	MermaidURL string // non-empty when diagrams render in the browser
}

// pageView is the template's view of PageData, with fragments pre-rendered.
type pageView struct {
	Title      string
	Theme      string
	Body       template.HTML
	TOC        template.HTML
	TopNav     []NavItem
	Sidebar    []NavSection
	MermaidURL string
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// Compile-time interface check
var _ CSSInjector = (*CSSInjection)(nil)

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, or after <body>, or at
// the start of the content when neither tag is present.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}
	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos, ok := afterBodyTag(htmlContent, lowerHTML); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes </ so stylesheet content cannot close the <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// afterBodyTag returns the offset just past the opening <body ...> tag.
func afterBodyTag(htmlContent, lowerHTML string) (int, bool) {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// PageBuilder assembles a standalone page from a template.
type PageBuilder struct {
	tmpl *template.Template
	css  CSSInjector
}

// NewPageBuilder creates a PageBuilder from template content.
// Returns error if the template cannot be parsed.
func NewPageBuilder(tmplContent string) (*PageBuilder, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageBuilder{tmpl: tmpl, css: &CSSInjection{}}, nil
}

// Build renders the page and injects the stylesheet.
func (b *PageBuilder) Build(ctx context.Context, data *PageData, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		data = &PageData{}
	}

	view := pageView{
		Title:      data.Title,
		Theme:      data.Theme,
		Body:       template.HTML(data.Body), // #nosec G203 -- rendered from trusted markdown
		TOC:        template.HTML(GenerateTOCNav(data.Headings, data.TOCTitle, StylesFor(data.Theme))), // #nosec G203
		TopNav:     data.TopNav,
		Sidebar:    data.Sidebar,
		MermaidURL: data.MermaidURL,
	}

	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return b.css.InjectCSS(ctx, buf.String(), css), nil
}

// GenerateTOCNav renders the on-page navigator. Level 1 entries are bold,
// level 2 and 3 entries are indented. Returns "" when there are no headings.
func GenerateTOCNav(headings []Heading, title string, st Styles) string {
	if len(headings) == 0 {
		return ""
	}
	if title == "" {
		title = DefaultTOCTitle
	}

	var buf strings.Builder
	buf.WriteString(`<div class="toc sticky top-4 self-start"><div class="w-64 p-4 rounded-lg">`)
	buf.WriteString(`<div class="flex items-center mb-4"><span class="text-sm font-medium `)
	buf.WriteString(st.Body)
	buf.WriteString(`">`)
	buf.WriteString(html.EscapeString(title))
	buf.WriteString(`</span></div><nav class="space-y-2">`)

	for _, h := range headings {
		weight := "font-normal"
		if h.Level == 1 {
			weight = "font-semibold"
		}
		buf.WriteString(`<a href="#`)
		buf.WriteString(html.EscapeString(h.ID))
		buf.WriteString(`" class="block text-sm `)
		buf.WriteString(weight)
		if pad := tocPadding(h.Level); pad != "" {
			buf.WriteString(" ")
			buf.WriteString(pad)
		}
		buf.WriteString(" ")
		buf.WriteString(st.Muted)
		buf.WriteString(`">`)
		buf.WriteString(html.EscapeString(h.Text))
		buf.WriteString(`</a>`)
	}

	buf.WriteString(`</nav></div></div>`)
	return buf.String()
}

func tocPadding(level int) string {
	switch level {
	case 2:
		return "pl-2"
	case 3:
		return "pl-4"
	}
	return ""
}
