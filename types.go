package docview

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-docview/internal/pipeline"
)

// ContentType selects how a document is split and rendered.
type ContentType string

// Content types. Anything else renders like TechnicalDocumentation.
const (
	BusinessSummary        ContentType = pipeline.ContentBusinessSummary
	TechnicalDocumentation ContentType = pipeline.ContentTechnicalDocumentation
	Readme                 ContentType = pipeline.ContentReadme
)

// Theme constants.
const (
	ThemeDark  = pipeline.ThemeDark
	ThemeLight = pipeline.ThemeLight
)

// Engine selects the README renderer.
type Engine string

// Engines. EngineGoldmark applies to Readme content only; the other content
// types always use the built-in formatters.
const (
	EngineBuiltin  Engine = "builtin"
	EngineGoldmark Engine = "goldmark"
)

// isValidEngine checks if e is a known engine (case-insensitive).
func isValidEngine(e Engine) bool {
	switch Engine(strings.ToLower(string(e))) {
	case EngineBuiltin, EngineGoldmark:
		return true
	}
	return false
}

// Re-exported pipeline types.
type (
	// Heading is one entry of a document's table of contents.
	Heading = pipeline.Heading
	// Section is an addressable level-2 slice of a document.
	Section = pipeline.DocumentSection
	// Span is a text, code or diagram region of a document.
	Span = pipeline.Span
	// Block is one classified line of a business summary.
	Block = pipeline.Block
)

// Input contains rendering parameters.
type Input struct {
	Markdown    string      // Markdown content, may be empty
	ContentType ContentType // Selects the rendering strategy
	BaseURL     string      // Optional, relative src/href are resolved against it
}

// Result holds a rendered document.
type Result struct {
	HTML     string
	Headings []Heading // Table of contents, never nil
	Spans    []Span    // Span path: the ordered regions that were rendered
	Blocks   []Block   // Business summaries: the classified lines
}

// repoPattern matches owner/repo as GitHub allows it.
var repoPattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})/[A-Za-z0-9._-]{1,100}$`)

// RepoSummary is the documentation set generated for one repository.
type RepoSummary struct {
	Repo                   string    `yaml:"repo"` // owner/repo
	TechnicalDocumentation string    `yaml:"technicalDocumentation,omitempty"`
	BusinessSummary        string    `yaml:"businessSummary,omitempty"`
	Readme                 string    `yaml:"readme,omitempty"`
	UpdatedAt              time.Time `yaml:"updatedAt,omitempty"`
}

// Validate checks that Repo is a well-formed owner/repo name.
func (s *RepoSummary) Validate() error {
	return ValidateRepo(s.Repo)
}

// ValidateRepo checks that repo is a well-formed owner/repo name.
func ValidateRepo(repo string) error {
	if !repoPattern.MatchString(repo) || strings.HasSuffix(repo, "/.") || strings.HasSuffix(repo, "/..") {
		return fmt.Errorf("%w: %q (want owner/repo)", ErrInvalidRepo, repo)
	}
	return nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	theme     string
	engine    Engine
	highlight bool
	style     string
	timeout   time.Duration
}

// defaultTimeout bounds a single diagram render when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTheme selects the dark or light class set.
func WithTheme(theme string) Option {
	return func(r *Renderer) {
		r.cfg.theme = theme
	}
}

// WithEngine selects the README renderer.
func WithEngine(e Engine) Option {
	return func(r *Renderer) {
		r.cfg.engine = e
	}
}

// WithHighlighting enables syntax highlighting with a chroma style.
// An empty style selects dracula.
func WithHighlighting(style string) Option {
	return func(r *Renderer) {
		r.cfg.highlight = true
		r.cfg.style = style
	}
}

// WithoutHighlighting renders code blocks as escaped plain text.
func WithoutHighlighting() Option {
	return func(r *Renderer) {
		r.cfg.highlight = false
	}
}

// WithDiagramRenderer renders mermaid diagrams server-side.
// Without it, diagrams are emitted as source for client-side rendering.
func WithDiagramRenderer(d DiagramRenderer) Option {
	return func(r *Renderer) {
		r.diagrams = d
	}
}

// WithTimeout sets the per-diagram rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("docview: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}
