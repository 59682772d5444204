package docview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alnah/go-docview/internal/assets"
	"github.com/alnah/go-docview/internal/pipeline"
)

// IndexFile is the file name of the overview page in a generated site.
const IndexFile = "index.html"

// SiteOptions configures page assembly.
type SiteOptions struct {
	AssetPath     string // custom assets directory, empty = embedded only
	TOC           bool   // include the "On this page" navigator
	TOCTitle      string // empty = "On this page"
	MermaidURL    string // script for client-side diagrams, empty = DefaultMermaidURL
	NoMermaid     bool   // never include the mermaid script
	ReadmeBaseURL string // resolves relative README links, optional
}

// Page is one assembled standalone HTML page.
type Page struct {
	Param    string
	File     string // IndexFile for the overview, <param>.html otherwise
	HTML     []byte
	Headings int
}

// SiteBuilder assembles catalog documents into standalone pages.
type SiteBuilder struct {
	opts   SiteOptions
	assets assets.AssetLoader
	page   *pipeline.PageBuilder
}

// NewSiteBuilder loads the page template, custom first when AssetPath is set.
func NewSiteBuilder(opts SiteOptions) (*SiteBuilder, error) {
	if opts.MermaidURL == "" {
		opts.MermaidURL = DefaultMermaidURL
	}

	resolver, err := assets.NewAssetResolver(opts.AssetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}
	tmpl, err := resolver.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}
	page, err := pipeline.NewPageBuilder(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageTemplate, err)
	}

	return &SiteBuilder{opts: opts, assets: resolver, page: page}, nil
}

// PageFile returns the file a param is written to.
func PageFile(param string) string {
	if param == "" || param == ParamOverview {
		return IndexFile
	}
	return param + ".html"
}

// BuildPage renders the document addressed by param and assembles its page.
func (b *SiteBuilder) BuildPage(ctx context.Context, r *Renderer, cat *Catalog, param string) (*Page, error) {
	doc := cat.Resolve(param)

	in := Input{Markdown: doc.Markdown, ContentType: doc.ContentType}
	if doc.ContentType == Readme {
		in.BaseURL = b.opts.ReadmeBaseURL
	}

	data := &pipeline.PageData{
		Title:   pageTitle(cat.Repo(), doc.Title),
		TopNav:  withFileLinks(cat.TopNav(doc.Param)),
		Sidebar: sidebarWithFileLinks(cat.Sidebar(doc.Param)),
	}
	page, err := b.assemble(ctx, r, in, data)
	if err != nil {
		return nil, err
	}
	page.Param = doc.Param
	page.File = PageFile(doc.Param)
	return page, nil
}

// Standalone renders in as a single page without navigation.
// in.BaseURL is used as given.
func (b *SiteBuilder) Standalone(ctx context.Context, r *Renderer, title string, in Input) (*Page, error) {
	return b.assemble(ctx, r, in, &pipeline.PageData{Title: title})
}

// assemble renders in and fills the document fields of data.
func (b *SiteBuilder) assemble(ctx context.Context, r *Renderer, in Input, data *pipeline.PageData) (*Page, error) {
	res, err := r.Render(ctx, in)
	if err != nil {
		return nil, err
	}

	css, err := b.assets.LoadStyle(r.Theme())
	if err != nil {
		return nil, fmt.Errorf("loading %s stylesheet: %w", r.Theme(), err)
	}

	data.Theme = r.Theme()
	data.Body = res.HTML
	data.TOCTitle = b.opts.TOCTitle
	if b.opts.TOC {
		data.Headings = res.Headings
	}
	if !b.opts.NoMermaid && strings.Contains(res.HTML, `<pre class="mermaid">`) {
		data.MermaidURL = b.opts.MermaidURL
	}

	out, err := b.page.Build(ctx, data, css)
	if err != nil {
		return nil, err
	}
	return &Page{HTML: []byte(out), Headings: len(res.Headings)}, nil
}

// Build assembles every page of cat concurrently with renderers from pool.
// Pages are returned in catalog order; failed pages are omitted and their
// errors joined.
func (b *SiteBuilder) Build(ctx context.Context, pool *RendererPool, cat *Catalog) ([]*Page, error) {
	params := cat.Params()

	concurrency := min(pool.Size(), len(params))
	pages := make([]*Page, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	jobs := make(chan int, len(params))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			r, err := pool.Acquire(ctx)
			if err != nil {
				for idx := range jobs {
					errs[idx] = fmt.Errorf("%s: %w", params[idx], err)
				}
				return
			}
			defer pool.Release(r)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					continue
				}
				page, err := b.BuildPage(ctx, r, cat, params[idx])
				if err != nil {
					errs[idx] = fmt.Errorf("%s: %w", params[idx], err)
					continue
				}
				pages[idx] = page
			}
		}()
	}

	for i := range params {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, errors.Join(errs...)
}

func pageTitle(repo, docTitle string) string {
	if repo == "" {
		return docTitle
	}
	return docTitle + " · " + repo
}

func withFileLinks(items []NavItem) []NavItem {
	for i := range items {
		items[i].Href = PageFile(items[i].Param)
	}
	return items
}

func sidebarWithFileLinks(sections []NavSection) []NavSection {
	for i := range sections {
		sections[i].Items = withFileLinks(sections[i].Items)
	}
	return sections
}
