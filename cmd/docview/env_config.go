package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docview/internal/config"
)

// envPrefix namespaces the environment overrides.
const envPrefix = "DOCVIEW_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DOCVIEW_CONFIG: config file name or path
	Theme      string        // DOCVIEW_THEME: dark, light
	Engine     string        // DOCVIEW_ENGINE: builtin, goldmark
	Style      string        // DOCVIEW_STYLE: chroma style
	Diagrams   string        // DOCVIEW_DIAGRAMS: server, browser, none
	MermaidURL string        // DOCVIEW_MERMAID_URL: mermaid.js bundle
	Timeout    time.Duration // DOCVIEW_TIMEOUT: per-diagram timeout
	OutputDir  string        // DOCVIEW_OUTPUT_DIR: site output directory
	StorePath  string        // DOCVIEW_STORE: summary database
	AssetPath  string        // DOCVIEW_ASSET_PATH: custom template and styles
	BaseURL    string        // DOCVIEW_BASE_URL: README link base
	Workers    int           // DOCVIEW_WORKERS: parallel page renderers
}

// knownEnvVars lists valid DOCVIEW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCVIEW_CONFIG":      true,
	"DOCVIEW_THEME":       true,
	"DOCVIEW_ENGINE":      true,
	"DOCVIEW_STYLE":       true,
	"DOCVIEW_DIAGRAMS":    true,
	"DOCVIEW_MERMAID_URL": true,
	"DOCVIEW_TIMEOUT":     true,
	"DOCVIEW_OUTPUT_DIR":  true,
	"DOCVIEW_STORE":       true,
	"DOCVIEW_ASSET_PATH":  true,
	"DOCVIEW_BASE_URL":    true,
	"DOCVIEW_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("DOCVIEW_CONFIG"),
		Theme:      os.Getenv("DOCVIEW_THEME"),
		Engine:     os.Getenv("DOCVIEW_ENGINE"),
		Style:      os.Getenv("DOCVIEW_STYLE"),
		Diagrams:   os.Getenv("DOCVIEW_DIAGRAMS"),
		MermaidURL: os.Getenv("DOCVIEW_MERMAID_URL"),
		OutputDir:  os.Getenv("DOCVIEW_OUTPUT_DIR"),
		StorePath:  os.Getenv("DOCVIEW_STORE"),
		AssetPath:  os.Getenv("DOCVIEW_ASSET_PATH"),
		BaseURL:    os.Getenv("DOCVIEW_BASE_URL"),
	}

	if timeout := os.Getenv("DOCVIEW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("DOCVIEW_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCVIEW_* variables.
// Helps catch typos like DOCVIEW_THEMES instead of DOCVIEW_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the variables that are set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeRenderFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Style != "" {
		cfg.Highlight.Style = env.Style
	}
	if env.Diagrams != "" {
		cfg.Diagrams.Mode = env.Diagrams
	}
	if env.MermaidURL != "" {
		cfg.Diagrams.MermaidURL = env.MermaidURL
	}
	if env.Timeout > 0 {
		cfg.Diagrams.Timeout = env.Timeout.String()
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.StorePath != "" {
		cfg.Store.Path = env.StorePath
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.BaseURL != "" {
		cfg.Site.BaseURL = env.BaseURL
	}
	if env.Workers > 0 {
		cfg.Site.Workers = env.Workers
	}
}
