package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTechnicalSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []DocumentSection
	}{
		{
			name: "single section",
			doc:  "## Getting Started\ntext",
			want: []DocumentSection{
				{Title: "Getting Started", Content: "## Getting Started\ntext", Param: "getting-started"},
			},
		},
		{
			name: "preamble is not a section",
			doc:  "# Project\nintro\n\n## Install\nrun it\n\n## Usage\ncall it\n",
			want: []DocumentSection{
				{Title: "Install", Content: "## Install\nrun it", Param: "install"},
				{Title: "Usage", Content: "## Usage\ncall it", Param: "usage"},
			},
		},
		{
			name: "deeper headings stay inside the section",
			doc:  "## API\n### Auth\ndetails",
			want: []DocumentSection{
				{Title: "API", Content: "## API\n### Auth\ndetails", Param: "api"},
			},
		},
		{
			name: "title kept verbatim",
			doc:  "## **Core** [Module](core.md)  \nbody",
			want: []DocumentSection{
				{Title: "**Core** [Module](core.md)", Content: "## **Core** [Module](core.md)  \nbody", Param: "core-module"},
			},
		},
		{
			name: "headings inside fences are ignored",
			doc:  "## Shell\n```sh\n## comment\necho hi\n```\n## Next\nx",
			want: []DocumentSection{
				{Title: "Shell", Content: "## Shell\n```sh\n## comment\necho hi\n```", Param: "shell"},
				{Title: "Next", Content: "## Next\nx", Param: "next"},
			},
		},
		{
			name: "trailing heading without newline",
			doc:  "## A\nx\n## B",
			want: []DocumentSection{
				{Title: "A", Content: "## A\nx", Param: "a"},
				{Title: "B", Content: "## B", Param: "b"},
			},
		},
		{
			name: "no headings",
			doc:  "just text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitSections(tt.doc, ContentTechnicalDocumentation)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TechnicalSections(%q) mismatch (-want +got):\n%s", tt.doc, diff)
			}
		})
	}
}

func TestBusinessSections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []DocumentSection
	}{
		{
			name: "preamble skipped and prefix restored",
			doc:  "Summary text\n\n## Orders\n1. Place order\n\n## Refunds\nRequest refund\n",
			want: []DocumentSection{
				{Title: "Orders", Content: "## Orders\n1. Place order", Param: "orders"},
				{Title: "Refunds", Content: "## Refunds\nRequest refund", Param: "refunds"},
			},
		},
		{
			name: "extra spaces after marker are normalized",
			doc:  "##   Spaced Title\nbody",
			want: []DocumentSection{
				{Title: "Spaced Title", Content: "## Spaced Title\nbody", Param: "spaced-title"},
			},
		},
		{
			name: "title-only last line is dropped",
			doc:  "## A\nx\n## B",
			want: []DocumentSection{
				{Title: "A", Content: "## A\nx", Param: "a"},
			},
		},
		{
			name: "only preamble",
			doc:  "no headings here",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SplitSections(tt.doc, ContentBusinessSummary)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BusinessSections(%q) mismatch (-want +got):\n%s", tt.doc, diff)
			}
		})
	}
}

func TestSections_Restartable(t *testing.T) {
	t.Parallel()

	seq := TechnicalSections("## One\na\n## Two\nb\n## Three\nc")

	var first []string
	for s := range seq {
		first = append(first, s.Param)
		if len(first) == 2 {
			break
		}
	}

	var second []string
	for s := range seq {
		second = append(second, s.Param)
	}

	if diff := cmp.Diff([]string{"one", "two"}, first); diff != "" {
		t.Errorf("first pass mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"one", "two", "three"}, second); diff != "" {
		t.Errorf("second pass mismatch (-want +got):\n%s", diff)
	}
}

func TestSections_ParamMatchesTOC(t *testing.T) {
	t.Parallel()

	doc := "## Data **Flow**\nx\n## Error & Retry\ny\n"
	ids := make(map[string]bool)
	for _, h := range ExtractTOC(doc, ContentTechnicalDocumentation) {
		ids[h.ID] = true
	}
	for s := range Sections(doc, ContentTechnicalDocumentation) {
		if !ids[s.Param] {
			t.Errorf("section param %q has no TOC entry", s.Param)
		}
	}
}
