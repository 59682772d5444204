package pipeline

import (
	"errors"
	"strings"
	"testing"
)

func TestRewriteRelativeURLs(t *testing.T) {
	t.Parallel()

	const base = "https://raw.githubusercontent.com/octo/widgets/main"

	tests := []struct {
		name         string
		html         string
		baseURL      string
		wantContains []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<img src="./docs/logo.png">`,
			baseURL:      base,
			wantContains: []string{`src="https://raw.githubusercontent.com/octo/widgets/main/docs/logo.png"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="logo.png">`,
			baseURL:      base + "/",
			wantContains: []string{`src="https://raw.githubusercontent.com/octo/widgets/main/logo.png"`},
		},
		{
			name:         "relative link",
			html:         `<a href="CONTRIBUTING.md">guide</a>`,
			baseURL:      base,
			wantContains: []string{`href="https://raw.githubusercontent.com/octo/widgets/main/CONTRIBUTING.md"`},
		},
		{
			name:         "absolute URL unchanged",
			html:         `<img src="https://img.shields.io/badge.svg">`,
			baseURL:      base,
			wantContains: []string{`src="https://img.shields.io/badge.svg"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#install">x</a>`,
			baseURL:      base,
			wantContains: []string{`href="#install"`},
		},
		{
			name:         "root path unchanged",
			html:         `<img src="/logo.png">`,
			baseURL:      base,
			wantContains: []string{`src="/logo.png"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:a@b.c">mail</a>`,
			baseURL:      base,
			wantContains: []string{`href="mailto:a@b.c"`},
		},
		{
			name:         "empty base URL returns input",
			html:         `<img src="logo.png">`,
			baseURL:      "",
			wantContains: []string{`<img src="logo.png">`},
		},
		{
			name:         "nested elements",
			html:         `<ul><li><a href="docs/a.md"><img src="b.png"></a></li></ul>`,
			baseURL:      base,
			wantContains: []string{`href="https://raw.githubusercontent.com/octo/widgets/main/docs/a.md"`, `src="https://raw.githubusercontent.com/octo/widgets/main/b.png"`},
		},
		{
			name:         "text mentioning a path unchanged",
			html:         `<p>see src="a.png"</p>`,
			baseURL:      base,
			wantContains: []string{`<p>see src=&#34;a.png&#34;</p>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativeURLs(tt.html, tt.baseURL)
			if err != nil {
				t.Fatalf("RewriteRelativeURLs() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativeURLs() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestRewriteRelativeURLs_FragmentNotWrapped(t *testing.T) {
	t.Parallel()

	got, err := RewriteRelativeURLs(`<p>hi</p>`, "https://example.com/")
	if err != nil {
		t.Fatalf("RewriteRelativeURLs() error = %v", err)
	}
	if got != `<p>hi</p>` {
		t.Errorf("RewriteRelativeURLs() = %q, want %q", got, `<p>hi</p>`)
	}
}

func TestRewriteRelativeURLs_InvalidBase(t *testing.T) {
	t.Parallel()

	for _, base := range []string{"docs/", "ftp://example.com/", "https://"} {
		if _, err := RewriteRelativeURLs(`<img src="a.png">`, base); !errors.Is(err, ErrInvalidBaseURL) {
			t.Errorf("RewriteRelativeURLs(base=%q) error = %v, want ErrInvalidBaseURL", base, err)
		}
	}
}
