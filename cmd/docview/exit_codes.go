package main

import (
	"errors"
	"os"

	docview "github.com/alnah/go-docview"
	"github.com/alnah/go-docview/internal/assets"
	"github.com/alnah/go-docview/internal/config"
	"github.com/alnah/go-docview/internal/store"
)

// Exit codes for the docview CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, store unavailable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, docview.ErrBrowserConnect) ||
		errors.Is(err, docview.ErrPageCreate) ||
		errors.Is(err, docview.ErrPageLoad) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, store.ErrStoreOpen) ||
		errors.Is(err, store.ErrSummaryNotFound) ||
		errors.Is(err, store.ErrCorruptSummary) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidContentType) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidSummary) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, docview.ErrInvalidTheme) ||
		errors.Is(err, docview.ErrInvalidEngine) ||
		errors.Is(err, docview.ErrInvalidRepo) ||
		errors.Is(err, docview.ErrInvalidBaseURL) ||
		errors.Is(err, docview.ErrPageTemplate) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitUsage
	}

	return ExitGeneral
}
