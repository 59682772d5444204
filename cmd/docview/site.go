package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	docview "github.com/alnah/go-docview"
	"github.com/alnah/go-docview/internal/config"
	"github.com/alnah/go-docview/internal/fileutil"
	"github.com/alnah/go-docview/internal/hints"
)

// defaultSiteDir is the output directory when neither flag nor config names one.
const defaultSiteDir = "site"

// runSite generates one page per catalog document.
func runSite(ctx context.Context, args []string, env *Environment) error {
	f, pos, err := parseSiteFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return fmt.Errorf("%w: site takes one owner/repo or summary file", ErrNoInput)
	}
	if f.workers < 0 || f.workers > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidWorkerCount, f.workers, config.MaxWorkers)
	}

	cfg, err := resolveConfig(f.common, &f.render)
	if err != nil {
		return err
	}
	summary, err := loadSiteSummary(pos[0], f.store, cfg)
	if err != nil {
		return err
	}
	if err := summary.Validate(); err != nil {
		return err
	}

	opts := siteOptions(cfg)
	opts.ReadmeBaseURL = readmeBaseURL(f.baseURL, cfg, summary.Repo)
	site, err := docview.NewSiteBuilder(opts)
	if err != nil {
		return err
	}

	outDir := siteOutputDir(f.output, cfg)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}

	workers := f.workers
	if workers == 0 {
		workers = cfg.Site.Workers
	}
	pool := docview.NewRendererPool(docview.ResolvePoolSize(workers), rendererFactory(ctx, cfg))
	defer func() { _ = pool.Close() }()

	start := env.Now()
	pages, buildErr := site.Build(ctx, pool, docview.NewCatalog(summary))

	var written uint64
	for _, p := range pages {
		path := filepath.Join(outDir, p.File)
		if err := fileutil.WriteFileAtomic(path, p.HTML); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
		written += uint64(len(p.HTML))
		if f.common.verbose {
			fmt.Fprintf(env.Stderr, "  %s (%s, %d headings)\n", path, humanize.Bytes(uint64(len(p.HTML))), p.Headings)
		}
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Generated %d pages for %s in %s (%s, %v)\n",
			len(pages), summary.Repo, outDir, humanize.Bytes(written), elapsed(env, start))
	}
	if buildErr != nil {
		return fmt.Errorf("%d of %d pages failed: %w", countErrors(buildErr), len(pages)+countErrors(buildErr), buildErr)
	}
	return nil
}

// loadSiteSummary reads arg as a summary file when it exists, otherwise
// looks it up in the store as owner/repo.
func loadSiteSummary(arg, flagStore string, cfg *config.Config) (docview.RepoSummary, error) {
	if fileutil.FileExists(arg) {
		return readSummaryFile(arg)
	}
	if err := docview.ValidateRepo(arg); err != nil {
		return docview.RepoSummary{}, fmt.Errorf("%w%s", err, hints.ForSiteArgument())
	}

	st, err := openStore(flagStore, cfg)
	if err != nil {
		return docview.RepoSummary{}, err
	}
	defer func() { _ = st.Close() }()
	return getSummary(st, arg)
}

// readmeBaseURL resolves README links. Priority: --base-url > config >
// the raw GitHub URL of the repository's default branch.
func readmeBaseURL(flagURL string, cfg *config.Config, repo string) string {
	if flagURL != "" {
		return flagURL
	}
	if cfg.Site.BaseURL != "" {
		return cfg.Site.BaseURL
	}
	return "https://raw.githubusercontent.com/" + repo + "/HEAD/"
}

// siteOutputDir resolves the output directory. Priority: -o > config > ./site.
func siteOutputDir(flagDir string, cfg *config.Config) string {
	if flagDir != "" {
		return flagDir
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return defaultSiteDir
}

// countErrors counts the errors joined by errors.Join.
func countErrors(err error) int {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}
