package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Command names.
const (
	cmdRender   = "render"
	cmdSections = "sections"
	cmdTOC      = "toc"
	cmdImport   = "import"
	cmdList     = "list"
	cmdExport   = "export"
	cmdRemove   = "remove"
	cmdSite     = "site"
	cmdVersion  = "version"
	cmdHelp     = "help"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrOutputDir          = errors.New("failed to create output directory")
	ErrInvalidContentType = errors.New("invalid content type")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidSummary     = errors.New("invalid summary file")
)

// File permission constants.
const (
	dirPermissions = 0o750 // rwxr-x---: owner full, group read+execute
)

// runMain dispatches args[1] and returns the process exit code.
// Errors are printed to env.Stderr.
func runMain(ctx context.Context, args []string, env *Environment) int {
	warnUnknownEnvVars(env.Stderr)

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case cmdRender:
		err = runRender(ctx, rest, env)
	case cmdSections:
		err = runSections(rest, env)
	case cmdTOC:
		err = runTOC(rest, env)
	case cmdImport:
		err = runImport(rest, env)
	case cmdList:
		err = runList(rest, env)
	case cmdExport:
		err = runExport(rest, env)
	case cmdRemove:
		err = runRemove(rest, env)
	case cmdSite:
		err = runSite(ctx, rest, env)
	case cmdVersion, "--version":
		fmt.Fprintf(env.Stdout, "go-docview %s\n", Version)
	case cmdHelp, "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}

	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
