package pipeline

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
)

func TestBlockFormatter_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want []Block
	}{
		{
			name: "continuation merges into promoted item",
			doc:  "1. First step\n   continues here\n2. Second step",
			want: []Block{
				{Kind: BlockSection, Marker: "1.", ID: "first-step", Content: "First step continues here"},
				{Kind: BlockSection, Marker: "2.", ID: "second-step", Content: "Second step"},
			},
		},
		{
			name: "multi-digit numbers are one token",
			doc:  "12. Twelfth",
			want: []Block{
				{Kind: BlockSection, Marker: "12.", ID: "twelfth", Content: "Twelfth"},
			},
		},
		{
			name: "nesting levels floor two-space units",
			doc:  "1. Top\n  1. Nested\n     - deep\n  - shallow",
			want: []Block{
				{Kind: BlockSection, Marker: "1.", ID: "top", Content: "Top"},
				{Kind: BlockOrdered, Level: 1, Marker: "1.", Content: "Nested"},
				{Kind: BlockBullet, Level: 2, Marker: "◦", Content: "deep"},
				{Kind: BlockBullet, Level: 1, Marker: "◦", Content: "shallow"},
			},
		},
		{
			name: "labeled section styles following text",
			doc:  "Steps:\nValidate input\n- check\n\nAfter",
			want: []Block{
				{Kind: BlockLabel, Content: "Steps:"},
				{Kind: BlockStepText, Content: "Validate input"},
				{Kind: BlockBullet, Marker: "•", Content: "check"},
				{Kind: BlockParagraph, Content: "After"},
			},
		},
		{
			name: "blank line ends the list",
			doc:  "- item\n\ntrailing text",
			want: []Block{
				{Kind: BlockBullet, Marker: "•", Content: "item"},
				{Kind: BlockParagraph, Content: "trailing text"},
			},
		},
		{
			name: "continuation without a list item becomes its own block",
			doc:  "- item\n```js\nx\n```\ncont",
			want: []Block{
				{Kind: BlockBullet, Marker: "•", Content: "item"},
				{Kind: BlockRaw, Content: `<div id="CODE_BLOCK_0"></div>`},
				{Kind: BlockParagraph, Content: "cont"},
			},
		},
		{
			name: "fence indented under a top-level item stays out of the heading",
			doc:  "1. Install it\n   ```sh\n   go get x\n   ```\n   then run it\n2. Next",
			want: []Block{
				{Kind: BlockSection, Marker: "1.", ID: "install-it", Content: "Install it"},
				{Kind: BlockRaw, Content: `<div id="CODE_BLOCK_0"></div>`},
				{Kind: BlockParagraph, Content: "   then run it"},
				{Kind: BlockSection, Marker: "2.", ID: "next", Content: "Next"},
			},
		},
		{
			name: "fence indented under a nested item stays out of the item",
			doc:  "1. Top\n  1. Install it\n     ```sh\n     go get x\n     ```\n  2. Next",
			want: []Block{
				{Kind: BlockSection, Marker: "1.", ID: "top", Content: "Top"},
				{Kind: BlockOrdered, Level: 1, Marker: "1.", Content: "Install it"},
				{Kind: BlockRaw, Content: `<div id="CODE_BLOCK_0"></div>`},
				{Kind: BlockOrdered, Level: 1, Marker: "2.", Content: "Next"},
			},
		},
		{
			name: "fence opening mid-line gets its own line",
			doc:  "Run this ```sh\nmake\n``` then stop",
			want: []Block{
				{Kind: BlockParagraph, Content: "Run this"},
				{Kind: BlockRaw, Content: `<div id="CODE_BLOCK_0"></div>`},
				{Kind: BlockParagraph, Content: " then stop"},
			},
		},
		{
			name: "adjacent fences get one line each",
			doc:  "```sh\na\n``````go\nb\n```",
			want: []Block{
				{Kind: BlockRaw, Content: `<div id="CODE_BLOCK_0"></div>`},
				{Kind: BlockRaw, Content: `<div id="CODE_BLOCK_1"></div>`},
			},
		},
		{
			name: "headings get slug ids",
			doc:  "## User **Login**\n### Details",
			want: []Block{
				{Kind: BlockHeading, Level: 2, ID: "user-login", Content: `User <strong class="font-semibold text-white">Login</strong>`},
				{Kind: BlockHeading, Level: 3, ID: "details", Content: "Details"},
			},
		},
		{
			name: "markup lines pass through",
			doc:  "<section>\n<code>x</code> stays a paragraph",
			want: []Block{
				{Kind: BlockRaw, Content: "<section>"},
				{Kind: BlockParagraph, Content: "<code>x</code> stays a paragraph"},
			},
		},
		{
			name: "inline code in list items",
			doc:  "- uses `useState`",
			want: []Block{
				{Kind: BlockBullet, Marker: "•", Content: "uses " + CodeSpanHTML("useState", dark)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewBlockFormatter(dark, nil)
			got, _ := f.Blocks(tt.doc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Blocks(%q) mismatch (-want +got):\n%s", tt.doc, diff)
			}
		})
	}
}

func TestBlockFormatter_Format(t *testing.T) {
	t.Parallel()

	doc := "## Checkout\n\n1. Place **order**\n   with payment\n  1. Reserve stock\n\nTrigger: user clicks buy\n"
	out := NewBlockFormatter(dark, nil).Format(doc)

	q, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	if got := q.Find("h2#checkout").Length(); got != 1 {
		t.Errorf("h2#checkout count = %d, want 1", got)
	}
	promoted := q.Find("h2#place-order")
	if promoted.Length() != 1 {
		t.Fatalf("promoted heading missing:\n%s", out)
	}
	if got := promoted.Find("span.text-green-500").Text(); got != "1." {
		t.Errorf("promoted marker = %q, want %q", got, "1.")
	}
	if got := promoted.Text(); !strings.Contains(got, "order with payment") {
		t.Errorf("promoted text = %q, want continuation merged", got)
	}
	nested := q.Find(`div[style="margin-left: 1.5rem"]`)
	if nested.Length() != 1 {
		t.Errorf("nested item count = %d, want 1", nested.Length())
	}
	if got := q.Find("div.font-semibold").Text(); got != "Trigger: user clicks buy" {
		t.Errorf("label = %q", got)
	}
}

func TestBlockFormatter_CodeBlockSubstitution(t *testing.T) {
	t.Parallel()

	doc := "text\n```python\nif a < b:\n    print(1)\n```\nmore"
	out := NewBlockFormatter(dark, nil).Format(doc)

	if strings.Contains(out, "CODE_BLOCK_") {
		t.Errorf("placeholder left in output:\n%s", out)
	}
	if got := strings.Count(out, "if a &lt; b:"); got != 1 {
		t.Errorf("escaped code count = %d, want 1:\n%s", got, out)
	}
	if !strings.Contains(out, `<span class="text-[#F8F8F2] text-sm font-medium">python</span>`) {
		t.Errorf("language label missing:\n%s", out)
	}
	if !strings.Contains(out, `<p class="text-zinc-300 mb-4">more</p>`) {
		t.Errorf("trailing paragraph missing:\n%s", out)
	}
}

func TestBlockFormatter_IndentedFenceNesting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "under top-level item", doc: "1. Install it\n   ```sh\n   go get x\n   ```\n   then run it\n2. Next"},
		{name: "under nested item", doc: "1. Top\n  1. Install it\n     ```sh\n     go get x\n     ```\n  2. Next"},
		{name: "mid-line fence", doc: "Run this ```sh\ngo get x\n``` then stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := NewBlockFormatter(dark, nil).Format(tt.doc)
			q, err := goquery.NewDocumentFromReader(strings.NewReader(out))
			if err != nil {
				t.Fatalf("parsing output: %v", err)
			}

			if got := q.Find("pre").Length(); got != 1 {
				t.Fatalf("pre count = %d, want 1:\n%s", got, out)
			}
			if got := q.Find("h2 pre, p pre").Length(); got != 0 {
				t.Errorf("code block nested in a heading or paragraph:\n%s", out)
			}
			if !strings.Contains(q.Find("pre").Text(), "go get x") {
				t.Errorf("code body missing:\n%s", out)
			}
		})
	}
}

func TestBlockFormatter_DiagramsUseFences(t *testing.T) {
	t.Parallel()

	doc := "```mermaid\ngraph TD\n```\n```mermaid\ngraph LR\n```"
	fences := &Fences{Diagrams: map[int]string{1: "<svg>second</svg>"}}
	out := NewBlockFormatter(dark, fences).Format(doc)

	if !strings.Contains(out, `<pre class="mermaid">graph TD`) {
		t.Errorf("first diagram should fall back to source:\n%s", out)
	}
	if !strings.Contains(out, "<svg>second</svg>") {
		t.Errorf("second diagram should use rendered body:\n%s", out)
	}
}

func TestBlockFormatter_IDsMatchTOC(t *testing.T) {
	t.Parallel()

	doc := "## Overview\n\n1. **Create** account\n2. Verify [email](mail.md) &amp; phone\n\n## Billing\n1. Charge card\n"
	blocks, _ := NewBlockFormatter(dark, nil).Blocks(doc)

	tocIDs := make(map[string]bool)
	for _, h := range ExtractTOC(doc, ContentBusinessSummary) {
		tocIDs[h.ID] = true
	}

	for _, b := range blocks {
		if b.Kind != BlockSection && b.Kind != BlockHeading {
			continue
		}
		if !tocIDs[b.ID] {
			t.Errorf("block id %q missing from TOC ids %v", b.ID, tocIDs)
		}
	}
}

func TestBlockKind_String(t *testing.T) {
	t.Parallel()

	if got := BlockSection.String(); got != "section" {
		t.Errorf("BlockSection.String() = %q, want %q", got, "section")
	}
	if got := BlockRaw.String(); got != "raw" {
		t.Errorf("BlockRaw.String() = %q, want %q", got, "raw")
	}
}
