package docview

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DiagramRenderer renders mermaid source to an SVG document.
type DiagramRenderer interface {
	RenderDiagram(ctx context.Context, source string) (string, error)
}

// DefaultMermaidURL is the mermaid.js bundle loaded by MermaidRenderer.
const DefaultMermaidURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// mermaidThemeVariables matches the accent palette of the rendered pages.
const mermaidThemeVariables = `{
	primaryColor: "#22c55e",
	primaryTextColor: "#f9fafb",
	primaryBorderColor: "#16a34a",
	lineColor: "#94a3b8",
	secondaryColor: "#334155",
	tertiaryColor: "#1e293b",
	background: "#18181b",
	mainBkg: "#27272a",
	secondaryBorderColor: "#475569",
	textColor: "#e2e8f0"
}`

// Scripts evaluated on the diagram page.
const (
	mermaidInitJS   = `(theme) => mermaid.initialize({startOnLoad: false, securityLevel: "loose", theme: theme, themeVariables: ` + mermaidThemeVariables + `})`
	mermaidRenderJS = `(id, source) => mermaid.render(id, source).then((r) => r.svg)`
)

// MermaidConfig configures a MermaidRenderer.
type MermaidConfig struct {
	ScriptURL string        // mermaid.js bundle, empty = DefaultMermaidURL
	Theme     string        // mermaid theme, empty = "dark"
	Timeout   time.Duration // page load and per-diagram bound, zero = 30s
}

// MermaidRenderer renders diagrams with mermaid.js in headless Chrome.
// The browser is launched on first use and one page is shared by all
// diagrams, so renders are serialized. Rod downloads Chromium on first run
// if no browser is found.
type MermaidRenderer struct {
	cfg     MermaidConfig
	mu      sync.Mutex
	browser *rod.Browser
	page    *rod.Page
	seq     int
}

// NewMermaidRenderer creates a MermaidRenderer. No browser is started until
// the first RenderDiagram call.
func NewMermaidRenderer(cfg MermaidConfig) *MermaidRenderer {
	if cfg.ScriptURL == "" {
		cfg.ScriptURL = DefaultMermaidURL
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &MermaidRenderer{cfg: cfg}
}

// Start launches the browser and loads mermaid.js ahead of the first
// diagram, so connection failures surface before rendering begins.
func (m *MermaidRenderer) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensurePage()
}

// RenderDiagram evaluates mermaid.render for source and returns the SVG.
// Mermaid syntax errors are returned wrapped in ErrDiagramRender.
func (m *MermaidRenderer) RenderDiagram(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensurePage(); err != nil {
		return "", err
	}

	timeout := m.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return "", context.DeadlineExceeded
		}
	}

	m.seq++
	id := fmt.Sprintf("docview-diagram-%d", m.seq)

	res, err := m.page.Context(ctx).Timeout(timeout).Eval(mermaidRenderJS, id, source)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %v", ErrDiagramRender, err)
	}
	return res.Value.Str(), nil
}

// ensurePage lazily launches the browser and prepares a page with mermaid.js
// loaded and initialized. Callers hold m.mu.
func (m *MermaidRenderer) ensurePage() error {
	if m.page != nil {
		return nil
	}
	if err := m.ensureBrowser(); err != nil {
		return err
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	p := page.Timeout(m.cfg.Timeout)
	if err := p.AddScriptTag(m.cfg.ScriptURL, ""); err != nil {
		_ = page.Close()
		return fmt.Errorf("%w: loading %s: %v", ErrPageLoad, m.cfg.ScriptURL, err)
	}
	if _, err := p.Eval(mermaidInitJS, m.cfg.Theme); err != nil {
		_ = page.Close()
		return fmt.Errorf("%w: initializing mermaid: %v", ErrPageLoad, err)
	}

	m.page = page
	return nil
}

// ensureBrowser lazily connects to the browser.
func (m *MermaidRenderer) ensureBrowser() error {
	if m.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser for containerized environments.
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	m.browser = rod.New().ControlURL(u)
	if err := m.browser.Connect(); err != nil {
		m.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (m *MermaidRenderer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.page = nil
	if m.browser != nil {
		err := m.browser.Close()
		m.browser = nil
		return err
	}
	return nil
}
