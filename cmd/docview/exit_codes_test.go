package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	docview "github.com/alnah/go-docview"
	"github.com/alnah/go-docview/internal/assets"
	"github.com/alnah/go-docview/internal/config"
	"github.com/alnah/go-docview/internal/store"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", docview.ErrBrowserConnect, ExitBrowser},
		{"page create", docview.ErrPageCreate, ExitBrowser},
		{"page load", docview.ErrPageLoad, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("starting diagram renderer: %w", docview.ErrBrowserConnect), ExitBrowser},
		{"joined page errors", errors.Join(fmt.Errorf("overview: %w", docview.ErrPageLoad)), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"output dir", ErrOutputDir, ExitIO},
		{"store open", store.ErrStoreOpen, ExitIO},
		{"summary not found", fmt.Errorf("%w: octo/hello", store.ErrSummaryNotFound), ExitIO},
		{"corrupt summary", store.ErrCorruptSummary, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"invalid content type", ErrInvalidContentType, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"invalid summary", ErrInvalidSummary, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"invalid theme", docview.ErrInvalidTheme, ExitUsage},
		{"invalid engine", docview.ErrInvalidEngine, ExitUsage},
		{"invalid repo", docview.ErrInvalidRepo, ExitUsage},
		{"invalid base URL", docview.ErrInvalidBaseURL, ExitUsage},
		{"page template", docview.ErrPageTemplate, ExitUsage},
		{"invalid asset path", assets.ErrInvalidBasePath, ExitUsage},
		{"path traversal", assets.ErrPathTraversal, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something unexpected"), ExitGeneral},
		{"pool closed", docview.ErrPoolClosed, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	codes := map[string]int{
		"ExitSuccess": ExitSuccess,
		"ExitGeneral": ExitGeneral,
		"ExitUsage":   ExitUsage,
		"ExitIO":      ExitIO,
		"ExitBrowser": ExitBrowser,
	}
	seen := map[int]string{}
	for name, code := range codes {
		if code < 0 || code >= 126 {
			t.Errorf("%s = %d, want 0-125", name, code)
		}
		if other, ok := seen[code]; ok {
			t.Errorf("%s and %s share exit code %d", name, other, code)
		}
		seen[code] = name
	}
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("success, general and usage codes must follow Unix conventions")
	}
}
