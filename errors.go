package docview

import (
	"errors"

	"github.com/alnah/go-docview/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidTheme   = errors.New("invalid theme")
	ErrInvalidEngine  = errors.New("invalid engine")
	ErrInvalidRepo    = errors.New("invalid repository name")
	ErrInvalidBaseURL = pipeline.ErrInvalidBaseURL

	// Diagram rendering errors.
	ErrDiagramRender  = errors.New("diagram rendering failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Site generation errors.
	ErrPageTemplate = errors.New("page template unavailable")
	ErrPoolClosed   = errors.New("renderer pool closed")
)
