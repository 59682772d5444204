package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	docview "github.com/alnah/go-docview"
	"github.com/alnah/go-docview/internal/config"
	"github.com/alnah/go-docview/internal/fileutil"
	"github.com/alnah/go-docview/internal/hints"
)

// resolveConfig loads the config file, applies DOCVIEW_* overrides, then
// render flags when given, and validates the result.
func resolveConfig(common commonFlags, render *renderOptionFlags) (*config.Config, error) {
	env := loadEnvConfig()

	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if !strings.ContainsAny(name, "/\\") {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if render != nil {
		mergeRenderFlags(render, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeRenderFlags applies explicitly set render flags to cfg (CLI wins).
func mergeRenderFlags(f *renderOptionFlags, cfg *config.Config) {
	if f.theme != "" {
		cfg.Theme = strings.ToLower(f.theme)
	}
	if f.engine != "" {
		cfg.Engine = strings.ToLower(f.engine)
	}
	if f.style != "" {
		cfg.Highlight.Style = f.style
		cfg.Highlight.Enabled = true
	}
	if f.noHighlight {
		cfg.Highlight.Enabled = false
	}
	if f.diagrams != "" {
		cfg.Diagrams.Mode = strings.ToLower(f.diagrams)
	}
	if f.mermaidURL != "" {
		cfg.Diagrams.MermaidURL = f.mermaidURL
	}
	if f.timeout != "" {
		cfg.Diagrams.Timeout = f.timeout
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.tocTitle != "" {
		cfg.TOC.Title = f.tocTitle
	}
	if f.noTOC {
		cfg.TOC.Enabled = false
	}
}

// rendererOptions translates cfg into renderer options, diagrams excluded.
func rendererOptions(cfg *config.Config) []docview.Option {
	opts := []docview.Option{
		docview.WithTheme(cfg.Theme),
		docview.WithEngine(docview.Engine(cfg.Engine)),
		docview.WithTimeout(cfg.DiagramTimeout()),
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, docview.WithHighlighting(cfg.Highlight.Style))
	} else {
		opts = append(opts, docview.WithoutHighlighting())
	}
	return opts
}

// rendererFactory builds renderers for cfg. In server diagram mode each
// renderer owns a browser that is started eagerly, so connection failures
// are reported before rendering instead of as inline error panels.
func rendererFactory(ctx context.Context, cfg *config.Config) docview.RendererFactory {
	return func() (*docview.Renderer, error) {
		opts := rendererOptions(cfg)

		var mermaid *docview.MermaidRenderer
		if cfg.Diagrams.Mode == config.DiagramsServer {
			mermaid = docview.NewMermaidRenderer(docview.MermaidConfig{
				ScriptURL: cfg.Diagrams.MermaidURL,
				Theme:     mermaidTheme(cfg.Theme),
				Timeout:   cfg.DiagramTimeout(),
			})
			if err := mermaid.Start(ctx); err != nil {
				_ = mermaid.Close()
				return nil, fmt.Errorf("starting diagram renderer: %w%s", err, browserHint(err))
			}
			opts = append(opts, docview.WithDiagramRenderer(mermaid))
		}

		r, err := docview.NewRenderer(opts...)
		if err != nil && mermaid != nil {
			_ = mermaid.Close()
		}
		return r, err
	}
}

// browserHint picks the hint for a diagram renderer startup failure.
func browserHint(err error) string {
	if strings.Contains(err.Error(), "deadline") {
		return hints.ForTimeout()
	}
	return hints.ForBrowserConnect()
}

// mermaidTheme maps a page theme to the mermaid theme name.
func mermaidTheme(theme string) string {
	if theme == config.ThemeLight {
		return "default"
	}
	return "dark"
}

// siteOptions translates cfg into page assembly options.
func siteOptions(cfg *config.Config) docview.SiteOptions {
	return docview.SiteOptions{
		AssetPath:  cfg.Assets.BasePath,
		TOC:        cfg.TOC.Enabled,
		TOCTitle:   cfg.TOC.Title,
		MermaidURL: cfg.Diagrams.MermaidURL,
		NoMermaid:  cfg.Diagrams.Mode == config.DiagramsNone,
	}
}

// parseContentType maps a --type value to a content type.
func parseContentType(s string) (docview.ContentType, error) {
	switch strings.ToLower(s) {
	case "", "technical", string(docview.TechnicalDocumentation):
		return docview.TechnicalDocumentation, nil
	case "business", string(docview.BusinessSummary):
		return docview.BusinessSummary, nil
	case "readme":
		return docview.Readme, nil
	}
	return "", fmt.Errorf("%w: %q (must be technical, business or readme)", ErrInvalidContentType, s)
}

// readInput reads a markdown document from path, or from stdin for "-".
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is a user-provided CLI argument
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// elapsed formats the time since start for verbose output.
func elapsed(env *Environment, start time.Time) time.Duration {
	return env.Now().Sub(start).Round(time.Millisecond)
}
