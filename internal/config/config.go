package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docview/internal/fileutil"
	"github.com/alnah/go-docview/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxURLLength      = 2048 // Browser limit
	MaxStyleLength    = 50   // chroma style name
	MaxTOCTitleLength = 100
	MaxWorkers        = 32
)

// Accepted enumerated values.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"

	EngineBuiltin  = "builtin"
	EngineGoldmark = "goldmark"

	DiagramsServer  = "server"  // rendered to SVG in headless Chrome
	DiagramsBrowser = "browser" // hydrated client-side by mermaid.js
	DiagramsNone    = "none"    // source shown as-is
)

// DefaultMermaidURL is the mermaid.js bundle used by both diagram modes.
const DefaultMermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// DefaultDiagramTimeout bounds a single server-side diagram render.
const DefaultDiagramTimeout = 30 * time.Second

// Config holds all configuration for rendering and site generation.
type Config struct {
	Theme     string          `yaml:"theme"`  // dark (default) or light
	Engine    string          `yaml:"engine"` // builtin (default) or goldmark, README only
	Highlight HighlightConfig `yaml:"highlight"`
	Diagrams  DiagramsConfig  `yaml:"diagrams"`
	TOC       TOCConfig       `yaml:"toc"`
	Output    OutputConfig    `yaml:"output"`
	Store     StoreConfig     `yaml:"store"`
	Assets    AssetsConfig    `yaml:"assets"`
	Site      SiteConfig      `yaml:"site"`
}

// HighlightConfig controls syntax highlighting of fenced code.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style, empty = dracula
}

// DiagramsConfig controls mermaid rendering.
type DiagramsConfig struct {
	Mode       string `yaml:"mode"`       // server, browser (default) or none
	MermaidURL string `yaml:"mermaidURL"` // empty = DefaultMermaidURL
	Timeout    string `yaml:"timeout"`    // Go duration, empty = DefaultDiagramTimeout
}

// TOCConfig controls the on-page navigator.
type TOCConfig struct {
	Enabled bool   `yaml:"enabled"`
	Title   string `yaml:"title"` // empty = "On this page"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = stdout or cwd)
}

// StoreConfig locates the summary database.
type StoreConfig struct {
	Path string `yaml:"path"` // empty = user cache dir
}

// AssetsConfig overrides the embedded page template and stylesheet.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// SiteConfig controls static site generation.
type SiteConfig struct {
	Workers int    `yaml:"workers"` // 0 = auto
	BaseURL string `yaml:"baseURL"` // raw content URL for README links
}

// Validate checks enumerated values, lengths and ranges.
func (c *Config) Validate() error {
	if err := validateChoice("theme", c.Theme, ThemeDark, ThemeLight); err != nil {
		return err
	}
	if err := validateChoice("engine", c.Engine, EngineBuiltin, EngineGoldmark); err != nil {
		return err
	}
	if err := validateChoice("diagrams.mode", c.Diagrams.Mode, DiagramsServer, DiagramsBrowser, DiagramsNone); err != nil {
		return err
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"highlight.style", c.Highlight.Style, MaxStyleLength},
		{"diagrams.mermaidURL", c.Diagrams.MermaidURL, MaxURLLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"store.path", c.Store.Path, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"site.baseURL", c.Site.BaseURL, MaxURLLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Diagrams.Timeout != "" {
		d, err := time.ParseDuration(c.Diagrams.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: diagrams.timeout %q must be a positive duration", ErrInvalidValue, c.Diagrams.Timeout)
		}
	}
	if c.Site.Workers < 0 || c.Site.Workers > MaxWorkers {
		return fmt.Errorf("%w: site.workers %d (must be 0-%d)", ErrInvalidValue, c.Site.Workers, MaxWorkers)
	}
	return nil
}

// DiagramTimeout returns the configured timeout or the default.
// Call after Validate.
func (c *Config) DiagramTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Diagrams.Timeout); err == nil && d > 0 {
		return d
	}
	return DefaultDiagramTimeout
}

// validateChoice accepts the empty string or one of allowed.
func validateChoice(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q (allowed: %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

// validateFieldLength checks if a field value exceeds its maximum length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s is %d characters (max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Theme:     ThemeDark,
		Engine:    EngineBuiltin,
		Highlight: HighlightConfig{Enabled: true},
		Diagrams:  DiagramsConfig{Mode: DiagramsBrowser},
		TOC:       TOCConfig{Enabled: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A name without path separators is searched in standard locations.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFileStrict(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// .yaml then .yml, in the current directory then ~/.config/go-docview/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-docview", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
