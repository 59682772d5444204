package docview

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestNewMermaidRenderer_Defaults(t *testing.T) {
	t.Parallel()

	m := NewMermaidRenderer(MermaidConfig{})
	if m.cfg.ScriptURL != DefaultMermaidURL {
		t.Errorf("ScriptURL = %q, want %q", m.cfg.ScriptURL, DefaultMermaidURL)
	}
	if m.cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", m.cfg.Theme)
	}
	if m.cfg.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", m.cfg.Timeout, defaultTimeout)
	}

	custom := NewMermaidRenderer(MermaidConfig{ScriptURL: "https://x/m.js", Theme: "default", Timeout: time.Second})
	if custom.cfg.ScriptURL != "https://x/m.js" || custom.cfg.Theme != "default" || custom.cfg.Timeout != time.Second {
		t.Errorf("custom config overridden: %+v", custom.cfg)
	}
}

func TestMermaidRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMermaidRenderer(MermaidConfig{})
	_, err := m.RenderDiagram(ctx, "graph TD; A-->B")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderDiagram() error = %v, want context.Canceled", err)
	}
	if m.browser != nil {
		t.Error("browser launched for a canceled context")
	}
}

func TestMermaidRenderer_StartCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMermaidRenderer(MermaidConfig{})
	if err := m.Start(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
}

func TestMermaidRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	m := NewMermaidRenderer(MermaidConfig{})
	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDiagramMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "bare sentinel kept", err: ErrDiagramRender, want: ErrDiagramRender.Error()},
		{name: "sentinel prefix stripped", err: fmt.Errorf("%w: Parse error on line 2", ErrDiagramRender), want: "Parse error on line 2"},
		{name: "other error kept", err: context.DeadlineExceeded, want: "context deadline exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := diagramMessage(tt.err); got != tt.want {
				t.Errorf("diagramMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
