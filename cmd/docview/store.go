package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	docview "github.com/alnah/go-docview"
	"github.com/alnah/go-docview/internal/config"
	"github.com/alnah/go-docview/internal/hints"
	"github.com/alnah/go-docview/internal/store"
	"github.com/alnah/go-docview/internal/yamlutil"
)

// storePath resolves the database path.
// Priority: --store > DOCVIEW_STORE / config file > user cache dir.
func storePath(flagPath string, cfg *config.Config) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, nil
	}
	return store.DefaultPath()
}

// openStore opens the summary database for a store command.
func openStore(flagPath string, cfg *config.Config) (*store.Store, error) {
	path, err := storePath(flagPath, cfg)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForStoreOpen(path))
	}
	return st, nil
}

// getSummary loads repo from st with a hint when it is missing.
func getSummary(st *store.Store, repo string) (docview.RepoSummary, error) {
	s, err := st.Get(repo)
	if errors.Is(err, store.ErrSummaryNotFound) {
		return s, fmt.Errorf("%w%s", err, hints.ForSummaryNotFound(repo))
	}
	return s, err
}

// readSummaryFile decodes a summary YAML file, rejecting unknown fields.
func readSummaryFile(path string) (docview.RepoSummary, error) {
	var s docview.RepoSummary
	if err := yamlutil.ReadFileStrict(path, &s); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return s, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return s, fmt.Errorf("%w: %s: %v", ErrInvalidSummary, path, err)
	}
	return s, nil
}

// storeCommand parses flags, resolves config and opens the store.
// The caller closes the returned store.
func storeCommand(name string, args []string, env *Environment) (*storeCmdFlags, []string, *store.Store, error) {
	f, pos, err := parseStoreFlags(name, args, env.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := resolveConfig(f.common, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(f.store, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return f, pos, st, nil
}

// runImport stores a summary file, replacing any previous version.
func runImport(args []string, env *Environment) error {
	f, pos, st, err := storeCommand(cmdImport, args, env)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(pos) != 1 {
		return fmt.Errorf("%w: import takes one summary file", ErrNoInput)
	}
	s, err := readSummaryFile(pos[0])
	if err != nil {
		return err
	}
	if f.repo != "" {
		s.Repo = f.repo
	}
	if err := st.Put(s); err != nil {
		return err
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Imported %s\n", s.Repo)
	}
	return nil
}

// runList prints the stored summaries with their size and age.
func runList(args []string, env *Environment) error {
	f, _, st, err := storeCommand(cmdList, args, env)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	entries, err := st.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		if !f.common.quiet {
			fmt.Fprintln(env.Stderr, "No summaries stored")
		}
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	now := env.Now()
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Repo, humanize.Bytes(uint64(e.Size)),
			humanize.RelTime(e.UpdatedAt, now, "ago", "from now"))
	}
	return tw.Flush()
}

// runExport writes a stored summary as YAML.
func runExport(args []string, env *Environment) error {
	f, pos, st, err := storeCommand(cmdExport, args, env)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(pos) != 1 {
		return fmt.Errorf("%w: export takes one owner/repo", ErrNoInput)
	}
	s, err := getSummary(st, pos[0])
	if err != nil {
		return err
	}
	data, err := yamlutil.Marshal(s)
	if err != nil {
		return err
	}
	if err := writeOutput(f.output, data, env.Stdout); err != nil {
		return err
	}

	if f.output != "" && !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", f.output)
	}
	return nil
}

// runRemove deletes a stored summary.
func runRemove(args []string, env *Environment) error {
	f, pos, st, err := storeCommand(cmdRemove, args, env)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(pos) != 1 {
		return fmt.Errorf("%w: remove takes one owner/repo", ErrNoInput)
	}
	if err := st.Delete(pos[0]); err != nil {
		if errors.Is(err, store.ErrSummaryNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForSummaryNotFound(pos[0]))
		}
		return err
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Removed %s\n", pos[0])
	}
	return nil
}
