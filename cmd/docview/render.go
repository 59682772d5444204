package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	docview "github.com/alnah/go-docview"
)

// runRender renders one document to an HTML fragment or standalone page.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, pos, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return fmt.Errorf("%w: render takes one file (or - for stdin)", ErrNoInput)
	}

	ct, err := parseContentType(f.contentType)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(f.common, &f.render)
	if err != nil {
		return err
	}
	md, err := readInput(pos[0], env.Stdin)
	if err != nil {
		return err
	}

	start := env.Now()
	r, err := rendererFactory(ctx, cfg)()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	in := docview.Input{Markdown: md, ContentType: ct, BaseURL: f.baseURL}

	var out []byte
	headings := 0
	if f.page {
		site, err := docview.NewSiteBuilder(siteOptions(cfg))
		if err != nil {
			return err
		}
		page, err := site.Standalone(ctx, r, documentTitle(md, ct, pos[0]), in)
		if err != nil {
			return err
		}
		out, headings = page.HTML, page.Headings
	} else {
		res, err := r.Render(ctx, in)
		if err != nil {
			return err
		}
		out, headings = []byte(res.HTML), len(res.Headings)
	}

	if err := writeOutput(f.output, out, env.Stdout); err != nil {
		return err
	}

	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "rendered %s (%s, %d headings) in %v\n",
			pos[0], humanize.Bytes(uint64(len(out))), headings, elapsed(env, start))
	}
	if f.output != "" && !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", f.output)
	}
	return nil
}

// documentTitle is the first level-1 heading, or the input file name.
func documentTitle(md string, ct docview.ContentType, path string) string {
	for _, h := range docview.TOC(md, ct) {
		if h.Level == 1 {
			return h.Text
		}
	}
	if path == "-" {
		return "Document"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// runSections prints the addressable sections of a document.
func runSections(args []string, env *Environment) error {
	f, pos, err := parseOutlineFlags(cmdSections, args, env.Stderr)
	if err != nil {
		return err
	}
	md, ct, err := outlineInput(f, pos, env)
	if err != nil {
		return err
	}

	n := 0
	for s := range docview.Sections(md, ct) {
		fmt.Fprintf(env.Stdout, "%s\t%s\n", s.Param, s.Title)
		n++
	}
	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "%d sections\n", n)
	}
	return nil
}

// runTOC prints the table of contents of a document, indented by level.
func runTOC(args []string, env *Environment) error {
	f, pos, err := parseOutlineFlags(cmdTOC, args, env.Stderr)
	if err != nil {
		return err
	}
	md, ct, err := outlineInput(f, pos, env)
	if err != nil {
		return err
	}

	headings := docview.TOC(md, ct)
	for _, h := range headings {
		indent := strings.Repeat("  ", max(h.Level-1, 0))
		fmt.Fprintf(env.Stdout, "%s- %s (#%s)\n", indent, h.Text, h.ID)
	}
	if f.common.verbose {
		fmt.Fprintf(env.Stderr, "%d headings\n", len(headings))
	}
	return nil
}

// outlineInput reads the document and content type of an outline command.
func outlineInput(f *outlineCmdFlags, pos []string, env *Environment) (string, docview.ContentType, error) {
	if len(pos) != 1 {
		return "", "", fmt.Errorf("%w: expected one file (or - for stdin)", ErrNoInput)
	}
	ct, err := parseContentType(f.contentType)
	if err != nil {
		return "", "", err
	}
	md, err := readInput(pos[0], env.Stdin)
	if err != nil {
		return "", "", err
	}
	return md, ct, nil
}
