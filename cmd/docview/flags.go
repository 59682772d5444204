package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderOptionFlags holds flags that configure the renderer and page assembly.
type renderOptionFlags struct {
	theme       string
	engine      string
	style       string
	noHighlight bool
	diagrams    string
	mermaidURL  string
	timeout     string
	assetPath   string
	tocTitle    string
	noTOC       bool
}

// renderCmdFlags holds all flags for the render command.
type renderCmdFlags struct {
	common      commonFlags
	render      renderOptionFlags
	output      string
	contentType string
	baseURL     string
	page        bool
}

// outlineCmdFlags holds flags for the sections and toc commands.
type outlineCmdFlags struct {
	common      commonFlags
	contentType string
}

// storeCmdFlags holds flags for the import, list, export and remove commands.
type storeCmdFlags struct {
	common commonFlags
	store  string
	repo   string // import only: override the summary's repo field
	output string // export only
}

// siteCmdFlags holds all flags for the site command.
type siteCmdFlags struct {
	common  commonFlags
	render  renderOptionFlags
	store   string
	output  string
	workers int
	baseURL string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show sizes and timing")
}

// addRenderOptionFlags adds renderer flags to a FlagSet.
func addRenderOptionFlags(fs *flag.FlagSet, f *renderOptionFlags) {
	fs.StringVar(&f.theme, "theme", "", "class theme: dark, light")
	fs.StringVar(&f.engine, "engine", "", "README engine: builtin, goldmark")
	fs.StringVar(&f.style, "style", "", "chroma highlighting style (default dracula)")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "render code blocks as plain text")
	fs.StringVar(&f.diagrams, "diagrams", "", "mermaid rendering: server, browser, none")
	fs.StringVar(&f.mermaidURL, "mermaid-url", "", "mermaid.js bundle URL")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-diagram timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (templates/, styles/)")
	fs.StringVar(&f.tocTitle, "toc-title", "", "on-page navigator heading")
	fs.BoolVar(&f.noTOC, "no-toc", false, "omit the on-page navigator")
}

// addContentTypeFlag adds the --type flag to a FlagSet.
func addContentTypeFlag(fs *flag.FlagSet, p *string) {
	fs.StringVar(p, "type", "technical", "content type: technical, business, readme")
}

// newFlagSet creates a FlagSet whose usage goes to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseFlagSet parses args, marking failures as usage errors.
// flag.ErrHelp is returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderCmdFlags, []string, error) {
	f := &renderCmdFlags{}
	fs := newFlagSet("render", w, printRenderUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&f.baseURL, "base-url", "", "resolve relative links and images against URL")
	fs.BoolVar(&f.page, "page", false, "wrap the fragment in a standalone HTML page")
	addContentTypeFlag(fs, &f.contentType)
	addCommonFlags(fs, &f.common)
	addRenderOptionFlags(fs, &f.render)

	pos, err := parseFlagSet(fs, args)
	return f, pos, err
}

// parseOutlineFlags parses sections or toc command flags.
func parseOutlineFlags(name string, args []string, w io.Writer) (*outlineCmdFlags, []string, error) {
	f := &outlineCmdFlags{}
	usage := printSectionsUsage
	if name == cmdTOC {
		usage = printTOCUsage
	}
	fs := newFlagSet(name, w, usage)

	addContentTypeFlag(fs, &f.contentType)
	addCommonFlags(fs, &f.common)

	pos, err := parseFlagSet(fs, args)
	return f, pos, err
}

// parseStoreFlags parses flags for the store commands.
func parseStoreFlags(name string, args []string, w io.Writer) (*storeCmdFlags, []string, error) {
	f := &storeCmdFlags{}
	fs := newFlagSet(name, w, storeUsage(name))

	fs.StringVar(&f.store, "store", "", "summary database path")
	switch name {
	case cmdImport:
		fs.StringVar(&f.repo, "repo", "", "store under owner/repo instead of the file's repo field")
	case cmdExport:
		fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	}
	addCommonFlags(fs, &f.common)

	pos, err := parseFlagSet(fs, args)
	return f, pos, err
}

// parseSiteFlags parses site command flags and returns positional args.
func parseSiteFlags(args []string, w io.Writer) (*siteCmdFlags, []string, error) {
	f := &siteCmdFlags{}
	fs := newFlagSet("site", w, printSiteUsage)

	fs.StringVarP(&f.output, "output", "o", "", "output directory (default ./site)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renderers (0 = auto)")
	fs.StringVar(&f.store, "store", "", "summary database path")
	fs.StringVar(&f.baseURL, "base-url", "", "README link base (default raw.githubusercontent.com/<repo>/HEAD)")
	addCommonFlags(fs, &f.common)
	addRenderOptionFlags(fs, &f.render)

	pos, err := parseFlagSet(fs, args)
	return f, pos, err
}
