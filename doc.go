// Package docview renders AI-generated repository documentation (technical
// documentation, business summaries and READMEs) to themed HTML.
//
// # Quick Start
//
// Create a renderer, render markdown, and close when done:
//
//	r, err := docview.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	result, err := r.Render(ctx, docview.Input{
//	    Markdown:    "## Install\n\nRun `make`.",
//	    ContentType: docview.TechnicalDocumentation,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The result carries the HTML fragment and the table of contents
// (result.Headings), whose ids match the heading ids in the fragment.
//
// # Rendering Pipeline
//
//  1. Line endings are normalized and a byte order mark is dropped.
//  2. The document is segmented into text, code and mermaid spans.
//  3. Business summaries go through a line-oriented block formatter; all
//     other content renders span by span with the inline formatter.
//  4. Code is highlighted with chroma; diagrams are rendered server-side
//     when a DiagramRenderer is configured, or left for mermaid.js.
//
// Rendering never fails on malformed markdown. Empty documents render a
// "No content available." placeholder and a failed diagram renders an inline
// error panel without affecting its siblings.
//
// # Configuration
//
//	r, err := docview.NewRenderer(
//	    docview.WithTheme(docview.ThemeLight),
//	    docview.WithHighlighting("monokai"),
//	    docview.WithEngine(docview.EngineGoldmark),
//	    docview.WithDiagramRenderer(docview.NewMermaidRenderer(docview.MermaidConfig{})),
//	    docview.WithTimeout(10*time.Second),
//	)
//
// # Sections and Navigation
//
// Sections splits a document into level-2 sections addressed by the slug of
// their title. A Catalog indexes the sections of a RepoSummary and resolves
// params the way the documentation site routes ?doc=<param>. SiteBuilder
// assembles every catalog document into a standalone page.
//
// # Browser Requirements
//
// Server-side diagrams require Chrome/Chromium. The go-rod library downloads
// a managed Chromium on first run (~/.cache/rod/browser/). Use
// ROD_BROWSER_BIN to specify a custom Chrome binary; the sandbox is disabled
// when it is set or when CI=true.
package docview
